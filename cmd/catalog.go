package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/driveline-group/showroom-cli/internal/advisor"
	"github.com/driveline-group/showroom-cli/internal/catalog"
	"github.com/driveline-group/showroom-cli/internal/importer"
	"github.com/driveline-group/showroom-cli/pkg/anthropic"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the vehicle catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import FILE...",
	Short: "Import vehicles from JSON or XLSX files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		res, err := importer.Import(ctx, st, args...)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d vehicles from %d files (%d read)\n", res.Stored, res.Files, res.Read)
		return nil
	},
}

var catalogGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate catalog entries for every category via Claude",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("generate"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		gen := advisor.NewGenerator(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model)
		raws, err := gen.Generate(ctx, catalog.Types(), cfg.Advisor.PerCategory)
		if err != nil {
			return err
		}

		stored, err := st.Put(ctx, raws)
		if err != nil {
			return eris.Wrap(err, "store generated vehicles")
		}
		fmt.Printf("Generated and stored %d vehicles\n", stored)
		return nil
	},
}

var catalogListFilter catalog.Filter

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog vehicles",
	RunE: func(cmd *cobra.Command, args []string) error {
		minPrice := cmd.Flags().Lookup("min-price")
		maxPrice := cmd.Flags().Lookup("max-price")
		if minPrice.Changed {
			v, _ := cmd.Flags().GetFloat64("min-price")
			catalogListFilter.MinPrice = &v
		}
		if maxPrice.Changed {
			v, _ := cmd.Flags().GetFloat64("max-price")
			catalogListFilter.MaxPrice = &v
		}

		vehicles, err := loadVehicles(cmd.Context(), catalogListFilter)
		if err != nil {
			return err
		}
		if len(vehicles) == 0 {
			fmt.Println("No vehicles in the catalog.")
			return nil
		}

		for _, v := range vehicles {
			fmt.Printf("%-24s %d %s %s (%s) - %s\n",
				v.ID, v.Year, v.Make, v.Model, v.Type, dollars(v.Price.BaseMSRP))
		}
		return nil
	},
}

var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog record counts and normalization health",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		total, err := st.Count(ctx)
		if err != nil {
			return err
		}

		vehicles, dropped, err := catalog.Snapshot(ctx, st, catalog.Filter{})
		if err != nil {
			return err
		}
		for _, derr := range dropped {
			zap.L().Warn("catalog record dropped", zap.Error(derr))
		}

		fmt.Printf("Records stored:   %d\n", total)
		fmt.Printf("Records usable:   %d\n", len(vehicles))
		fmt.Printf("Records dropped:  %d\n", len(dropped))
		return nil
	},
}

func init() {
	catalogListCmd.Flags().StringVar(&catalogListFilter.Type, "type", "", "vehicle category filter")
	catalogListCmd.Flags().Float64("min-price", 0, "minimum base MSRP")
	catalogListCmd.Flags().Float64("max-price", 0, "maximum base MSRP")
	catalogListCmd.Flags().IntVar(&catalogListFilter.Year, "year", 0, "model year filter")
	catalogListCmd.Flags().IntVar(&catalogListFilter.Limit, "limit", 0, "maximum records to list")

	catalogCmd.AddCommand(catalogImportCmd, catalogGenerateCmd, catalogListCmd, catalogStatusCmd)
	rootCmd.AddCommand(catalogCmd)
}
