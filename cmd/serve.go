package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/driveline-group/showroom-cli/internal/advisor"
	"github.com/driveline-group/showroom-cli/internal/booking"
	"github.com/driveline-group/showroom-cli/internal/catalog"
	"github.com/driveline-group/showroom-cli/internal/finance"
	"github.com/driveline-group/showroom-cli/internal/match"
	"github.com/driveline-group/showroom-cli/pkg/anthropic"
)

// server bundles the dependencies behind the HTTP API.
type server struct {
	store     catalog.Store
	bookings  *booking.Service
	matchCfg  match.Config
	explainer *advisor.Explainer
}

func newRouter(s *server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/vehicles", s.handleListVehicles)
	r.Get("/vehicles/{id}", s.handleGetVehicle)
	r.Post("/finance/loan-calculator", s.handleLoan)
	r.Post("/finance/lease-calculator", s.handleLease)
	r.Post("/finance/affordability", s.handleAffordability)
	r.Post("/finance/depreciation", s.handleDepreciation)
	r.Post("/quiz/find-your-wheel", s.handleQuiz)
	r.Post("/bookings", s.handleCreateBooking)
	r.Get("/bookings/availability/{id}", s.handleAvailability)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto status codes. Validation failures
// surface the offending field and bound; everything else is opaque.
func writeError(w http.ResponseWriter, err error) {
	var verr *finance.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": verr.Error(),
			"field": verr.Field,
			"bound": verr.Bound,
		})
		return
	}
	if errors.Is(err, booking.ErrVehicleNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		return
	}
	zap.L().Error("request failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return eris.Wrap(err, "decode request body")
	}
	return nil
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	var filter catalog.Filter
	q := r.URL.Query()
	filter.Type = q.Get("type")
	if v := q.Get("min_price"); v != "" {
		var f float64
		if _, err := fmt.Sscanf(v, "%g", &f); err != nil {
			badRequest(w, "min_price must be a number")
			return
		}
		filter.MinPrice = &f
	}
	if v := q.Get("max_price"); v != "" {
		var f float64
		if _, err := fmt.Sscanf(v, "%g", &f); err != nil {
			badRequest(w, "max_price must be a number")
			return
		}
		filter.MaxPrice = &f
	}
	if v := q.Get("year"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &filter.Year); err != nil {
			badRequest(w, "year must be an integer")
			return
		}
	}

	vehicles, dropped, err := catalog.Snapshot(r.Context(), s.store, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	for _, derr := range dropped {
		zap.L().Warn("catalog record dropped", zap.Error(derr))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}

func (s *server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	raw, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if raw == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		return
	}
	v, err := catalog.Normalize(*raw)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *server) handleLoan(w http.ResponseWriter, r *http.Request) {
	var req finance.LoanRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	res, err := finance.Loan(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleLease(w http.ResponseWriter, r *http.Request) {
	var req finance.LeaseRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	res, err := finance.Lease(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleAffordability(w http.ResponseWriter, r *http.Request) {
	var req finance.AffordabilityRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	res, err := finance.Affordability(req)
	if err != nil {
		writeError(w, err)
		return
	}

	vehicles, dropped, err := catalog.Snapshot(r.Context(), s.store, catalog.Filter{})
	if err != nil {
		writeError(w, err)
		return
	}
	for _, derr := range dropped {
		zap.L().Warn("catalog record dropped", zap.Error(derr))
	}
	suggestions := match.SuggestByAffordability(vehicles, res.MaxVehiclePrice, s.matchCfg.TopN)

	writeJSON(w, http.StatusOK, map[string]any{
		"maxVehiclePrice":        res.MaxVehiclePrice,
		"monthlyPaymentCapacity": res.MonthlyPaymentCapacity,
		"maxLoanAmount":          res.MaxLoanAmount,
		"suggestedVehicles":      suggestions,
	})
}

func (s *server) handleDepreciation(w http.ResponseWriter, r *http.Request) {
	var req finance.DepreciationRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	res, err := finance.Depreciation(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type quizResponse struct {
	Vehicle     *catalog.Vehicle `json:"vehicle"`
	Score       float64          `json:"matchScore"`
	Reasons     []string         `json:"reasons"`
	Explanation string           `json:"explanation,omitempty"`
}

func (s *server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	var pref match.Preference
	if err := decode(r, &pref); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	vehicles, dropped, err := catalog.Snapshot(r.Context(), s.store, catalog.Filter{})
	if err != nil {
		writeError(w, err)
		return
	}
	for _, derr := range dropped {
		zap.L().Warn("catalog record dropped", zap.Error(derr))
	}

	ranked := match.Run(vehicles, pref, s.matchCfg)
	results := make([]quizResponse, 0, len(ranked))
	for _, out := range ranked {
		qr := quizResponse{Vehicle: out.Vehicle, Score: out.Score, Reasons: out.Reasons}
		if s.explainer != nil {
			if text, err := s.explainer.Explain(r.Context(), out); err == nil {
				qr.Explanation = text
			} else {
				zap.L().Warn("explanation failed", zap.String("vehicle", out.Vehicle.ID), zap.Error(err))
			}
		}
		results = append(results, qr)
	}

	// An empty match list is a valid answer, not an error.
	writeJSON(w, http.StatusOK, map[string]any{
		"recommendations": results,
		"count":           len(results),
	})
}

func (s *server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	if s.bookings == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "bookings require the sqlite store"})
		return
	}

	var req booking.Request
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	conf, err := s.bookings.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, booking.ErrVehicleNotFound) {
			writeError(w, err)
			return
		}
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, conf)
}

func (s *server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	raw, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if raw == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		return
	}
	v, err := catalog.Normalize(*raw)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicleId":   v.ID,
		"dealerships": booking.Availability(time.Now(), v.Dealerships),
	})
}

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators, quiz, and bookings over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
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

		srv := &server{store: st, matchCfg: cfg.Match}

		if sqliteStore, ok := st.(*catalog.SQLiteStore); ok {
			bookings := booking.NewStore(sqliteStore.DB())
			if err := bookings.Migrate(ctx); err != nil {
				return err
			}
			srv.bookings = booking.NewService(st, bookings)
		}

		if cfg.Advisor.Explain {
			srv.explainer = advisor.NewExplainer(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model)
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(srv),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			httpSrv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
