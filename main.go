package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/MiningCadastre/MC-Backend/internal/concessions"
	"github.com/MiningCadastre/MC-Backend/internal/config"
	"github.com/MiningCadastre/MC-Backend/internal/db"
	"github.com/MiningCadastre/MC-Backend/internal/logger"
	"github.com/MiningCadastre/MC-Backend/internal/metrics"
	"github.com/MiningCadastre/MC-Backend/internal/middleware"
	"github.com/MiningCadastre/MC-Backend/internal/query"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer lg.Sync()
	sugar := lg.Sugar()

	if err := db.Connect(cfg.DatabaseURL); err != nil {
		sugar.Fatalw("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := concessions.Init(db.DB); err != nil {
		sugar.Fatalw("Failed to initialize concessions schema", "error", err)
	}

	repo := concessions.NewRepository(db.DB)
	ch := concessions.NewHandler(repo, sugar)
	qh := query.NewHandler(query.NewExecutor(db.DB, query.DefaultPolicy()), sugar)

	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RequestLogger(sugar))
	r.Use(middleware.Metrics)
	r.Get("/", RootHandler)
	r.Handle("/metrics", metrics.Handler())

	r.Mount("/concessions", concessions.SetupRoutes(ch))

	limiter := rate.NewLimiter(rate.Limit(cfg.QueryRatePerSec), cfg.QueryBurst)
	r.With(middleware.RateLimit(limiter)).Mount("/query", query.SetupRoutes(qh))

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.Port,
		Handler: r,
	}

	go func() {
		sugar.Infof("Server listening on port :%s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	sugar.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Shutdown error", "error", err)
	}
}
