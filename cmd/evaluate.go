package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/model"
)

var (
	evaluateDocID    string
	evaluateSetPath  string
	evaluateQuestion int
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <answer>",
	Short: "Score an answer against a saved challenge set",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		userAnswer := strings.Join(args, " ")

		set, err := readChallengeSet(evaluateSetPath)
		if err != nil {
			return err
		}
		if evaluateQuestion < 1 || evaluateQuestion > len(set.Questions) {
			return eris.Errorf("question %d out of range, set has %d questions", evaluateQuestion, len(set.Questions))
		}
		q := set.Questions[evaluateQuestion-1]

		docID := evaluateDocID
		if docID == "" {
			docID = set.DocumentID
		}
		if docID == "" {
			return eris.New("document id missing, pass --doc or use a set with a document_id")
		}

		env, err := initEnv(ctx, "generate")
		if err != nil {
			return err
		}
		defer env.Close()

		doc, err := env.Store.GetDocument(ctx, docID)
		if err != nil {
			return eris.Wrapf(err, "get document %s", docID)
		}

		res := env.Assist.Evaluate(ctx, q.Question, userAnswer, q.CorrectAnswer, doc.Text)
		if res.Status == model.StatusError {
			return eris.Errorf("evaluate: %s", res.Error)
		}

		fmt.Printf("Score: %d/100\n\nFeedback: %s\n\nReference: %s\n", res.Score, res.Feedback, res.Reference)
		return nil
	},
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateDocID, "doc", "", "document id (default from the set file)")
	evaluateCmd.Flags().StringVar(&evaluateSetPath, "set", "", "challenge set YAML file (required)")
	evaluateCmd.Flags().IntVar(&evaluateQuestion, "question", 1, "1-based question number in the set")
	_ = evaluateCmd.MarkFlagRequired("set")
	rootCmd.AddCommand(evaluateCmd)
}
