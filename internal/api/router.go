package api

import (
	"net/http"
	"time"

	"github.com/athebyme/googleshopping-feed/internal/api/handlers"
	"github.com/athebyme/googleshopping-feed/internal/api/middleware"
	"github.com/athebyme/googleshopping-feed/internal/domain/services"
	"github.com/athebyme/googleshopping-feed/pkg/interfaces"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter настраивает маршрутизатор сервиса экспорта
func SetupRouter(
	exportService *services.ExportService,
	exportDefaults map[string]string,
	logger interfaces.LoggerPort,
	metricsEnabled bool,
	metricsEndpoint string,
) *chi.Mux {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Method(http.MethodGet, "/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))
	r.Method(http.MethodHead, "/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	if metricsEnabled {
		endpoint := metricsEndpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.Handle(endpoint, promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		exportHandler := handlers.NewExportHandler(exportService, exportDefaults, logger)

		// Маршруты для запусков экспорта
		r.Route("/exports", func(r chi.Router) {
			// Список запусков
			r.Get("/", exportHandler.ListExports)

			// Запуск нового экспорта
			r.Post("/", exportHandler.StartExport)

			// Получение запуска по ID
			r.Get("/{id}", exportHandler.GetExport)
		})
	})

	return r
}
