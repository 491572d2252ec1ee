package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/docsage/docsage/internal/assist"
	"github.com/docsage/docsage/internal/store"
	"github.com/docsage/docsage/pkg/gemini"
)

// appEnv holds the initialized store, Gemini client, and assistant
// needed by the serve/ask/challenge/evaluate commands.
type appEnv struct {
	Store  store.Store
	LLM    gemini.Client
	Assist assist.Service
}

// Close releases resources held by the environment.
func (ae *appEnv) Close() {
	if ae.LLM != nil {
		_ = ae.LLM.Close()
	}
	if ae.Store != nil {
		_ = ae.Store.Close()
	}
}

func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "docsage.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &cfg.Store.Pool)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initEnv validates config for the given mode, opens and migrates the
// store, and wires the Gemini-backed assistant. Callers should defer
// env.Close().
func initEnv(ctx context.Context, mode string) (*appEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	llm, err := gemini.NewClient(ctx, cfg.Gemini.Key,
		gemini.WithRateLimit(cfg.Gemini.RequestsPerSecond))
	if err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "init gemini client")
	}

	svc := assist.New(llm, assist.Options{
		Model:                cfg.Gemini.Model,
		Temperature:          cfg.Gemini.Temperature,
		ChallengeTemperature: cfg.Gemini.ChallengeTemperature,
		MaxOutputTokens:      cfg.Gemini.MaxOutputTokens,
		SnippetMaxLength:     cfg.Assist.SnippetMaxLength,
	})

	return &appEnv{Store: st, LLM: llm, Assist: svc}, nil
}
