package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/mkopodev/schedule-service/internal/config"
	"github.com/mkopodev/schedule-service/internal/handler"
	"github.com/mkopodev/schedule-service/internal/integrations/camt"
	"github.com/mkopodev/schedule-service/internal/ledger"
	"github.com/mkopodev/schedule-service/internal/middleware"
	"github.com/mkopodev/schedule-service/internal/service"
	emailsender "github.com/mkopodev/schedule-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize layers
	parser := camt.NewParser(logger)
	ledgerStore := ledger.NewStore()
	mailer := emailsender.NewSender(cfg, logger)
	svc := service.NewService(ledgerStore, parser, mailer, logger, cfg)
	h := handler.NewHandler(svc)

	// Statement inbox poller, when an inbox is configured
	if cfg.StatementInboxDir != "" {
		poller := ledger.NewPoller(cfg.StatementInboxDir, ledgerStore, parser, logger)
		if err := poller.Start(cfg.InboxPollSchedule); err != nil {
			logger.Fatalf("Failed to start statement inbox poller: %v", err)
		}
		defer poller.Stop()
	}

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware)
	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	// Protected routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.AuthMiddleware(cfg))
	api.HandleFunc("/schedule/reconcile", h.Reconcile).Methods("POST")
	api.HandleFunc("/schedule/summary", h.Summary).Methods("POST")
	api.HandleFunc("/schedule/remind", h.Remind).Methods("POST")
	api.HandleFunc("/statements/import", h.ImportStatement).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
