package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/PabloGalante/neogiator-agent/internal/adapters/events/rabbitmq"
	httpadapter "github.com/PabloGalante/neogiator-agent/internal/adapters/http"
	"github.com/PabloGalante/neogiator-agent/internal/adapters/llm"
	"github.com/PabloGalante/neogiator-agent/internal/adapters/resumes/r2"
	memstore "github.com/PabloGalante/neogiator-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/neogiator-agent/internal/app/negotiation"
	"github.com/PabloGalante/neogiator-agent/internal/config"
	"github.com/PabloGalante/neogiator-agent/internal/domain"
	"github.com/PabloGalante/neogiator-agent/internal/observability"
)

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		observability.Logger().Error("neogiator api stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := observability.Init(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := newGenerator(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("init llm: %w", err)
	}
	gen = llm.WithRetry(gen, cfg.LLM.Attempts, 0)
	log.Info("llm configured", "provider", cfg.LLM.Provider, "attempts", cfg.LLM.Attempts)

	deps := negotiation.Deps{
		Store:     memstore.NewContextStore(),
		Generator: gen,
	}

	if cfg.AMQP.Enabled() {
		pub, err := rabbitmq.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return fmt.Errorf("init event publisher: %w", err)
		}
		deps.Publisher = pub
		log.Info("publishing negotiation updates", "exchange", cfg.AMQP.Exchange)
	}

	if cfg.R2.Enabled() {
		src, err := r2.New(ctx, r2.Config{
			AccountID: cfg.R2.AccountID,
			AccessKey: cfg.R2.AccessKey,
			SecretKey: cfg.R2.SecretKey,
			Bucket:    cfg.R2.Bucket,
		})
		if err != nil {
			return fmt.Errorf("init resume storage: %w", err)
		}
		deps.Resumes = src
		log.Info("reading stored resumes", "bucket", cfg.R2.Bucket)
	}

	svc := negotiation.NewService(deps, negotiation.Options{
		GenerationTimeout: cfg.LLM.Timeout,
		MaxReplyChars:     cfg.LLM.MaxReplyChars,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpadapter.NewServer(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("neogiator api listening", "port", cfg.Port, "mode", cfg.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return errors.Join(srv.Shutdown(shutdownCtx), svc.Shutdown(shutdownCtx))
}

// newGenerator builds the text generator named by the config. "none" yields
// nil, which makes every reply and profile take the deterministic path.
func newGenerator(ctx context.Context, cfg config.LLMConfig) (domain.TextGenerator, error) {
	switch cfg.Provider {
	case config.ProviderMock:
		return llm.NewMockLLM(), nil
	case config.ProviderVertex:
		return llm.NewVertexClient(ctx, llm.VertexOptions{
			Project:  cfg.GCPProjectID,
			Location: cfg.GCPLocation,
			Model:    cfg.ModelName,
		})
	case config.ProviderGemini:
		return llm.NewVertexClient(ctx, llm.VertexOptions{
			APIKey: cfg.GoogleAPIKey,
			Model:  cfg.ModelName,
		})
	case config.ProviderOpenAI:
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case config.ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
