package main

import (
	"context"
	"encoding/json"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/settleadmin/backend/src/config"
	"github.com/username/settleadmin/backend/src/database"
	"github.com/username/settleadmin/backend/src/handlers"
	"github.com/username/settleadmin/backend/src/logger"
	"github.com/username/settleadmin/backend/src/models"
	"github.com/username/settleadmin/backend/src/processors"
	"github.com/username/settleadmin/backend/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == config.Cfg.AllowedOrigin {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "ETag, Content-Disposition")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// startRefreshLoop re-runs the fetch→normalize pipeline for every kind at
// a fixed interval. Deliberately no overlap guard: a slow response may
// overlap the next tick, fetches are idempotent, and the last response
// wins.
func startRefreshLoop(viewService services.ViewService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			for _, kind := range models.AllKinds {
				ctx, cancel := context.WithTimeout(context.Background(), config.Cfg.RequestTimeout)
				if _, err := viewService.Refresh(ctx, kind); err != nil {
					logger.L.Warn("Scheduled refresh failed", "kind", kind, "error", err)
				}
				cancel()
			}
		}
	}()
	logger.L.Info("Periodic refresh enabled", "interval", interval)
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Settleadmin backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)

	logger.L.Info("Initializing snapshot cache...")
	snapshotCache := cache.New(services.DefaultSnapshotExpiration, services.SnapshotCleanupInterval)

	logger.L.Info("Initializing services and handlers...")
	client := services.NewCommerceClient(config.Cfg)
	alertService := services.NewAlertService()

	filterProcessor := processors.NewFilterProcessor()
	sortProcessor := processors.NewSortProcessor()
	statsProcessor := processors.NewStatsProcessor()

	viewService := services.NewViewService(client, filterProcessor, sortProcessor, snapshotCache)
	bulkService := services.NewBulkService(client, viewService, alertService, config.Cfg.BulkConcurrency)
	exportService := services.NewExportService()

	viewHandler := handlers.NewViewHandler(viewService)
	statsHandler := handlers.NewStatsHandler(viewService, statsProcessor)
	bulkHandler := handlers.NewBulkHandler(bulkService)
	exportHandler := handlers.NewExportHandler(viewService, sortProcessor, exportService)
	healthHandler := handlers.NewHealthHandler(client)

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := http.NewServeMux()

	apiRouter.HandleFunc("GET /api/health", healthHandler.HandleHealth)
	apiRouter.HandleFunc("GET /api/view/{kind}", viewHandler.HandleGetView)
	apiRouter.HandleFunc("POST /api/view/{kind}/refresh", viewHandler.HandleRefresh)
	apiRouter.HandleFunc("GET /api/stats/{kind}", statsHandler.HandleGetStats)
	apiRouter.HandleFunc("POST /api/bulk/{kind}/status", bulkHandler.HandleBulkTransition)
	apiRouter.HandleFunc("GET /api/bulk/history", bulkHandler.HandleGetBulkHistory)
	apiRouter.HandleFunc("GET /api/export/{kind}", exportHandler.HandleExport)

	rootMux.Handle("/api/", apiRouter)

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "Settleadmin backend is running"})
		} else {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
				http.NotFound(w, r)
			}
		}
	})

	if config.Cfg.RefreshInterval > 0 {
		startRefreshLoop(viewService, config.Cfg.RefreshInterval)
	}

	logger.L.Info("Applying global middleware...")
	finalHandler := enableCORS(rateLimitMiddleware(rootMux))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
