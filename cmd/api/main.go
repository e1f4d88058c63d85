package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ryuujih/voice-diary-hackathon/internal/config"
	"github.com/ryuujih/voice-diary-hackathon/internal/handler"
	aiservice "github.com/ryuujih/voice-diary-hackathon/internal/service/ai"
	diaryservice "github.com/ryuujih/voice-diary-hackathon/internal/service/diary"
	"github.com/ryuujih/voice-diary-hackathon/internal/service/session"
	speechservice "github.com/ryuujih/voice-diary-hackathon/internal/service/speech"
	"github.com/ryuujih/voice-diary-hackathon/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapLogger := logger.New(cfg.Log.FilePath, cfg.Log.Prod)
	defer zapLogger.Sync()

	store := session.NewMemoryStore(cfg.Store.SessionTTL, cfg.Store.PurgeInterval)

	// 生成モデルの資格情報が無ければ nil のまま渡し、会話は全てデモモードになる。
	var generator aiservice.Generator
	if cfg.AI.Enabled() {
		svc, err := aiservice.NewService(ctx, cfg.AI, zapLogger)
		if err != nil {
			zapLogger.Warn("failed to initialize generation service, running in demo mode", zap.Error(err))
		} else {
			generator = svc
			zapLogger.Info("generation service initialized", zap.String("model", cfg.AI.Model))
		}
	} else {
		zapLogger.Info("OPENAI_API_KEY not configured, conversation runs in demo mode")
	}

	speechSvc := speechservice.NewService(cfg.Speech, zapLogger)
	if speechSvc.Enabled() {
		zapLogger.Info("speech service initialized", zap.String("model", cfg.Speech.Model))
	} else {
		zapLogger.Info("speech credentials not configured, transcription runs in demo mode")
	}

	diarySvc := diaryservice.NewService(store, generator, zapLogger)

	router := handler.NewRouter(diarySvc, speechSvc, zapLogger)

	startServer(ctx, cfg.Server, router, zapLogger)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, zapLogger *zap.Logger) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	zapLogger.Info("voice diary backend listening", zap.String("addr", serverCfg.Addr))
	if err := runServer(ctx, srv); err != nil {
		zapLogger.Fatal("server error", zap.Error(err))
	}
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
