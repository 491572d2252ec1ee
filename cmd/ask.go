package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docsage/docsage/internal/model"
)

var askDocID string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question grounded in a stored document",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		question := strings.Join(args, " ")

		env, err := initEnv(ctx, "generate")
		if err != nil {
			return err
		}
		defer env.Close()

		doc, err := env.Store.GetDocument(ctx, askDocID)
		if err != nil {
			return eris.Wrapf(err, "get document %s", askDocID)
		}

		history, err := env.Store.RecentTurns(ctx, doc.ID, historyWindow)
		if err != nil {
			return eris.Wrap(err, "load conversation history")
		}

		res := env.Assist.Answer(ctx, question, doc.Text, history)
		if res.Status == model.StatusError {
			return eris.Errorf("answer: %s", res.Error)
		}

		turn := model.ConversationTurn{
			DocumentID:    doc.ID,
			Question:      question,
			Answer:        res.Answer,
			Justification: res.Justification,
			CreatedAt:     time.Now().UTC(),
		}
		if err := env.Store.AppendTurn(ctx, turn); err != nil {
			zap.L().Warn("record conversation turn failed", zap.Error(err))
		}

		fmt.Printf("Answer: %s\n\nJustification: %s\n", res.Answer, res.Justification)
		if res.Snippet != "" {
			fmt.Printf("\nEvidence: %s\n", res.Snippet)
		}
		return nil
	},
}

// historyWindow bounds how much prior conversation feeds the prompt.
const historyWindow = 10

func init() {
	askCmd.Flags().StringVar(&askDocID, "doc", "", "document id (required)")
	_ = askCmd.MarkFlagRequired("doc")
	rootCmd.AddCommand(askCmd)
}
