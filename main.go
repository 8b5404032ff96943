package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrsingh-rishi/bill-diff/comparison"
	"github.com/mrsingh-rishi/bill-diff/config"
	"github.com/mrsingh-rishi/bill-diff/llm"
	"github.com/mrsingh-rishi/bill-diff/logger"
	"github.com/mrsingh-rishi/bill-diff/server"
	"github.com/mrsingh-rishi/bill-diff/tts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Setup(cfg.LogLevel, cfg.IsDevelopment())

	if !cfg.DotEnv {
		logger.Debug().Msg("no .env file found, falling back to environment variables")
	}
	if cfg.LLM.APIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY not found, LLM calls will fail")
	} else {
		logger.Info().Str("source", cfg.LLM.KeySource).Msg("LLM API key configured")
	}

	ctx := context.Background()

	summarizer, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.LLM.Provider).Msg("failed to create LLM client")
	}
	logger.Info().Str("provider", cfg.LLM.Provider).Str("model", cfg.LLM.Model).Msg("LLM client ready")

	// Speech is optional: without it /compare-and-speak still returns the summary.
	var synthesizer comparison.Synthesizer
	if s, err := tts.New(ctx, cfg.TTS); err != nil {
		logger.Warn().Err(err).Str("provider", cfg.TTS.Provider).Msg("speech synthesis unavailable, audio disabled")
	} else if s != nil {
		synthesizer = s
		logger.Info().Str("provider", cfg.TTS.Provider).Str("voice", cfg.TTS.Voice).Msg("speech synthesis ready")
	}

	svc := comparison.NewService(summarizer, synthesizer)
	srv := server.New(svc, cfg.StaticDir)

	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("server listening")
		if err := srv.Listen(cfg.Addr()); err != nil {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	if err := srv.Shutdown(10 * time.Second); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
	}
}
