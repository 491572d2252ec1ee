package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docsage/docsage/internal/ingest"
	"github.com/docsage/docsage/internal/model"
)

var summarizeWords int

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Ingest a document and print its summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "generate")
		if err != nil {
			return err
		}
		defer env.Close()

		doc, err := ingestPath(args[0])
		if err != nil {
			return err
		}

		words := summarizeWords
		if words == 0 {
			words = cfg.Assist.SummaryMaxWords
		}

		res := env.Assist.Summarize(ctx, doc.Text, words)
		if res.Status == model.StatusError {
			return eris.Errorf("summarize: %s", res.Error)
		}
		doc.Summary = res.Summary

		if err := env.Store.PutDocument(ctx, doc); err != nil {
			return eris.Wrap(err, "store document")
		}
		zap.L().Info("document stored",
			zap.String("id", doc.ID),
			zap.String("filename", doc.Filename),
			zap.Int("words", doc.WordCount),
		)

		fmt.Printf("Document: %s\n\n%s\n", doc.ID, res.Summary)
		return nil
	},
}

// ingestPath reads and processes a local file into a document.
func ingestPath(path string) (*model.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	doc, err := ingest.Process(content, path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest %s", path)
	}
	return doc, nil
}

func init() {
	summarizeCmd.Flags().IntVar(&summarizeWords, "words", 0, "summary word limit (default from config)")
	rootCmd.AddCommand(summarizeCmd)
}
