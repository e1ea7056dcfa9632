package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/pocketbook/internal/auth"
	"github.com/mmynk/pocketbook/internal/bot"
	"github.com/mmynk/pocketbook/internal/budget"
	"github.com/mmynk/pocketbook/internal/config"
	"github.com/mmynk/pocketbook/internal/events"
	"github.com/mmynk/pocketbook/internal/health"
	"github.com/mmynk/pocketbook/internal/middleware"
	"github.com/mmynk/pocketbook/internal/service"
	"github.com/mmynk/pocketbook/internal/storage"
	"github.com/mmynk/pocketbook/internal/storage/mongodb"
	"github.com/mmynk/pocketbook/internal/storage/sqlite"
	"github.com/mmynk/pocketbook/internal/storage/supabase"
	"github.com/mmynk/pocketbook/internal/symptom"
	"github.com/mmynk/pocketbook/internal/view"
	"github.com/mmynk/pocketbook/pkg/api/apiconnect"
	"github.com/mmynk/pocketbook/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "store", cfg.Store)

	hub := events.NewHub(events.DefaultBuffer)
	defer hub.Close()

	budgetSvc := budget.NewService(store, hub)
	diarySvc := symptom.NewService(store, hub)
	healthSvc := health.NewService(store, hub, budgetSvc.Now)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(events.Collectors()...)
	registry.MustRegister(middleware.Collectors()...)

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)
	protect := func(next http.Handler) http.Handler {
		return middleware.RequireAuthHTTP(jwtManager, next)
	}

	mux := http.NewServeMux()

	budgetPath, budgetHandler := apiconnect.NewBudgetServiceHandler(service.NewBudgetService(budgetSvc), interceptors)
	mux.Handle(budgetPath, budgetHandler)

	symptomPath, symptomHandler := apiconnect.NewSymptomServiceHandler(service.NewSymptomService(diarySvc), interceptors)
	mux.Handle(symptomPath, symptomHandler)

	healthPath, healthHandler := apiconnect.NewHealthServiceHandler(service.NewHealthService(healthSvc), interceptors)
	mux.Handle(healthPath, healthHandler)

	service.NewDownloads(budgetSvc, diarySvc, healthSvc).Register(mux, protect)
	mux.Handle("GET /ws/changes", protect(service.NewChangeFeed(hub)))
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", service.Health)

	if cfg.TelegramToken != "" {
		b, err := bot.New(cfg.TelegramToken, bot.NewCommands(budgetSvc, view.NewSessionsWithClock(budgetSvc.Today)))
		if err != nil {
			return fmt.Errorf("failed to start telegram bot: %w", err)
		}
		go b.Run(ctx)
	}

	// h2c serves HTTP/2 without TLS, which Connect's gRPC protocols need.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(middleware.CORS(middleware.LogRequests(mux)), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	// Hijacked WebSocket connections are not tracked by Shutdown; closing the
	// hub ends their write loops.
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Store {
	case config.StoreMongoDB:
		return mongodb.New(ctx, cfg.MongoURI, cfg.MongoDB)
	case config.StoreSupabase:
		return supabase.New(cfg.SupabaseURL, cfg.SupabaseKey)
	default:
		return sqlite.New(cfg.DBPath)
	}
}
