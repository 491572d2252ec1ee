package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docsage/docsage/internal/assist"
	"github.com/docsage/docsage/internal/watch"
	"github.com/docsage/docsage/pkg/gemini"
)

var watchDir string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Auto-ingest documents dropped into a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if watchDir != "" {
			cfg.Watch.Dir = watchDir
		}
		if err := cfg.Validate("watch"); err != nil {
			return err
		}
		dir := cfg.Watch.Dir

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		// Summaries are generated only when a Gemini key is configured.
		var svc assist.Service
		if cfg.Gemini.Key != "" {
			llm, err := gemini.NewClient(ctx, cfg.Gemini.Key,
				gemini.WithRateLimit(cfg.Gemini.RequestsPerSecond))
			if err != nil {
				return eris.Wrap(err, "init gemini client")
			}
			defer llm.Close()
			svc = assist.New(llm, assist.Options{
				Model:                cfg.Gemini.Model,
				Temperature:          cfg.Gemini.Temperature,
				ChallengeTemperature: cfg.Gemini.ChallengeTemperature,
				MaxOutputTokens:      cfg.Gemini.MaxOutputTokens,
				SnippetMaxLength:     cfg.Assist.SnippetMaxLength,
			})
		} else {
			zap.L().Info("DOCSAGE_GEMINI_KEY not set, ingesting without summaries")
		}

		w, err := watch.New(st, svc)
		if err != nil {
			return err
		}
		defer w.Close()

		return w.Run(ctx, dir)
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", "", "directory to watch (default from config)")
	rootCmd.AddCommand(watchCmd)
}
