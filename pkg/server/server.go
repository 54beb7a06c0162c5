package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authhandlers "github.com/de-tools/sales-atlas/pkg/handlers/auth"
	handlers "github.com/de-tools/sales-atlas/pkg/handlers/dashboard"

	atlasmiddleware "github.com/de-tools/sales-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Session handlers.Session
	Auth    authhandlers.Gate
	Logger  zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) http.Handler {
	dashboardHandler := handlers.NewHandler(config.Dependencies.Session)
	authHandler := authhandlers.NewHandler(config.Dependencies.Auth)
	logger := config.Dependencies.Logger

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(atlasmiddleware.Logger(&logger))
	router.Use(atlasmiddleware.AccessLog)
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", dashboardHandler.GetStatus)
		r.Get("/dashboard", dashboardHandler.GetDashboard)
		r.Get("/kpis", dashboardHandler.GetKPIs)
		r.Get("/trends/monthly", dashboardHandler.GetMonthlyTrend)
		r.Get("/trends/sales", dashboardHandler.GetSalesTrend)
		r.Get("/trends/categories", dashboardHandler.GetCategoryTrend)
		r.Get("/products/scatter", dashboardHandler.GetScatter)
		r.Get("/products/top", dashboardHandler.GetTopProducts)
		r.Get("/heatmap", dashboardHandler.GetHeatmap)
		r.Get("/orders/volume", dashboardHandler.GetOrderVolume)
		r.Get("/categories/performance", dashboardHandler.GetCategoryPerformance)
		r.Get("/categories/profit", dashboardHandler.GetProfitByCategory)
		r.Get("/categories/profitability", dashboardHandler.GetCategoryProfitability)
		r.Get("/regions/sales", dashboardHandler.GetRegionalSales)

		r.Route("/filters", func(r chi.Router) {
			r.Get("/", dashboardHandler.GetFilters)
			r.Delete("/", dashboardHandler.ClearFilters)
			r.Put("/date", dashboardHandler.SetDateFilter)
			r.Put("/date/{preset}", dashboardHandler.ApplyDatePreset)
			r.Put("/comparison/{mode}", dashboardHandler.SetComparisonMode)
			r.Post("/categories/{category}", dashboardHandler.ToggleCategory)
			r.Post("/regions/{region}", dashboardHandler.ToggleRegion)
		})

		r.Route("/table", func(r chi.Router) {
			r.Get("/", dashboardHandler.GetTable)
			r.Put("/search", dashboardHandler.SetSearch)
			r.Post("/sort/{column}", dashboardHandler.SortBy)
			r.Post("/page/next", dashboardHandler.NextPage)
			r.Post("/page/previous", dashboardHandler.PreviousPage)
			r.Put("/page/{page}", dashboardHandler.SetPage)
		})

		r.Get("/export", dashboardHandler.Export)

		r.Route("/chat", func(r chi.Router) {
			r.Get("/", dashboardHandler.GetConversation)
			r.Post("/", dashboardHandler.SubmitQuery)
			r.Get("/suggestions", dashboardHandler.GetSuggestions)
			r.Post("/suggestions/{index}", dashboardHandler.ClickSuggestion)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Get("/", authHandler.GetSession)
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Post("/logout", authHandler.Logout)
		})
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start serves until the listener fails or the process receives SIGINT or
// SIGTERM, then drains outstanding requests.
func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
