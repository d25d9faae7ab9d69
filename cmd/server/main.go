package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mindfulai/backend/internal/ai"
	"github.com/mindfulai/backend/internal/analytics"
	"github.com/mindfulai/backend/internal/assessment"
	"github.com/mindfulai/backend/internal/chat"
	"github.com/mindfulai/backend/internal/config"
	"github.com/mindfulai/backend/internal/db"
	"github.com/mindfulai/backend/internal/httpapi"
	"github.com/mindfulai/backend/internal/safety"
	"github.com/mindfulai/backend/internal/sentiment"
	"github.com/mindfulai/backend/internal/store/rabbitmq"
	"github.com/mindfulai/backend/internal/store/redisstore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: no .env file loaded: %v", err)
	}

	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN, cfg.SQLitePath)
	if err := gdb.AutoMigrate(&chat.Exchange{}, &assessment.Assessment{}); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	// Model capability is constructed once here; misconfiguration is fatal
	// at boot, never a per-request surprise.
	provider, err := buildProvider(ctx, cfg)
	if err != nil {
		log.Fatalf("ai provider: %v", err)
	}

	chatSvc := chat.NewService(
		chat.NewRepo(gdb),
		provider,
		safety.NewDetector(nil),
		sentiment.NewLexiconAnalyzer(),
		cfg.ChatHistoryWindow,
	)

	if cfg.RabbitURL != "" {
		alerts, err := rabbitmq.NewAlertPublisher(cfg.RabbitURL, cfg.RabbitAlertQueue)
		if err != nil {
			log.Printf("warning: alert publisher unavailable: %v", err)
		} else {
			defer alerts.Close()
			chatSvc.SetAlertSink(alerts)
			log.Printf("safety alerts -> rabbitmq queue %s", cfg.RabbitAlertQueue)
		}
	}

	assessSvc := assessment.NewService(assessment.NewRepo(gdb))
	analyticsSvc := analytics.NewService(gdb)

	var cache *redisstore.Store
	if cfg.RedisAddr != "" {
		cache = redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer cache.Close()
		log.Printf("analytics cache -> redis %s", cfg.RedisAddr)
	}

	router := httpapi.NewRouter(chatSvc, assessSvc, analyticsSvc, cache)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("mindfulai backend listening on %s", cfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func buildProvider(ctx context.Context, cfg config.Config) (ai.Provider, error) {
	reg := ai.NewRegistry()

	reg.Register("gemini", func(ctx context.Context) (ai.Provider, error) {
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			return nil, errors.New("GEMINI_API_KEY is required when AI_PROVIDER=gemini")
		}
		return ai.NewGeminiFallback(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModels)
	})

	reg.Register("ollama", func(ctx context.Context) (ai.Provider, error) {
		return ai.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel), nil
	})

	return reg.Get(ctx, cfg.AIProvider)
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
