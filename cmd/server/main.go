package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/OkuOrgil3757/business-calculator/internal/config"
	"github.com/OkuOrgil3757/business-calculator/internal/db"
	"github.com/OkuOrgil3757/business-calculator/internal/logger"
	"github.com/OkuOrgil3757/business-calculator/internal/migrations"
	"github.com/OkuOrgil3757/business-calculator/internal/seed"
	"github.com/OkuOrgil3757/business-calculator/internal/store"
)

type server struct {
	auth         *authService
	calculations store.Store
	templatesDir string
	log          *zap.Logger
}

func main() {
	cfg := config.Load()

	baseLogger := logger.Must(logger.New(cfg.IsDev()))
	defer func() { _ = baseLogger.Sync() }()

	for _, warning := range cfg.Warnings() {
		baseLogger.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		baseLogger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if err := migrations.Up(ctx, database, cfg.MigrationsDir, logger.Named(baseLogger, "migrations")); err != nil {
		baseLogger.Fatal("failed to run database migrations", zap.Error(err))
	}

	var calculations store.Store
	switch cfg.StoreBackend {
	case config.StoreFile:
		calculations = store.NewFileStore(cfg.DataFile)
		baseLogger.Info("using json file store", zap.String("path", cfg.DataFile))
	default:
		calculations = store.NewSQLiteStore(database)
		baseLogger.Info("using sqlite store", zap.String("path", cfg.DBPath))
	}

	stats, err := seed.Run(ctx, database, calculations, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		Demo:          cfg.SeedDemo,
	})
	if err != nil {
		baseLogger.Fatal("failed to seed database", zap.Error(err))
	}
	baseLogger.Info("seed completed", zap.Int("inserts", stats.Inserts), zap.Int("updates", stats.Updates))

	srv := &server{
		calculations: calculations,
		templatesDir: cfg.TemplatesDir,
		log:          logger.Named(baseLogger, "http"),
	}
	if cfg.AuthEnabled() {
		srv.auth = newAuthService(database, cfg.SessionSecret)
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.authMiddleware)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.Get("/healthz", s.handleHealth)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)

	r.Get("/", s.handleIndex)
	r.Post("/calculate", s.handleCalculate)
	r.Post("/save", s.handleSave)
	r.Post("/delete/{index}", s.handleDelete)
	r.Post("/compare", s.handleCompare)
	r.Get("/calculations/{index}", s.handleCalculationDetail)
	r.Get("/calculations/{index}/text", s.handleCalculationText)

	r.Route("/api", func(r chi.Router) {
		r.Get("/calculations", s.handleAPIList)
		r.Post("/calculate", s.handleAPICalculate)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
