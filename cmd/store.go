package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/driveline-group/showroom-cli/internal/catalog"
)

func initStore(ctx context.Context) (catalog.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return catalog.NewSQLite(cfg.Store.Path)
	case "postgres":
		return catalog.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// loadVehicles opens the store and returns the normalized catalog view.
func loadVehicles(ctx context.Context, filter catalog.Filter) ([]catalog.Vehicle, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return nil, eris.Wrap(err, "migrate store")
	}

	vehicles, dropped, err := catalog.Snapshot(ctx, st, filter)
	if err != nil {
		return nil, err
	}
	for _, derr := range dropped {
		zap.L().Warn("catalog record dropped", zap.Error(derr))
	}
	return vehicles, nil
}

// usd renders a dollar amount with thousands separators ("$30,575.40").
var usd = message.NewPrinter(language.AmericanEnglish)

func dollars(v float64) string {
	return usd.Sprintf("$%.2f", v)
}
