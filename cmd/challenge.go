package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/docsage/docsage/internal/model"
)

var (
	challengeDocID string
	challengeCount int
	challengeOut   string
)

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Generate comprehension questions for a stored document",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "generate")
		if err != nil {
			return err
		}
		defer env.Close()

		doc, err := env.Store.GetDocument(ctx, challengeDocID)
		if err != nil {
			return eris.Wrapf(err, "get document %s", challengeDocID)
		}

		count := challengeCount
		if count == 0 {
			count = cfg.Assist.ChallengeCount
		}

		res := env.Assist.GenerateChallenge(ctx, doc.Text, count)
		if res.Status == model.StatusError {
			return eris.Errorf("challenge: %s", res.Error)
		}

		for i, q := range res.Questions {
			fmt.Printf("%d. [%s] %s\n", i+1, q.Difficulty, q.Question)
		}

		if challengeOut != "" {
			set := model.ChallengeSet{DocumentID: doc.ID, Questions: res.Questions}
			if err := writeChallengeSet(challengeOut, set); err != nil {
				return err
			}
			fmt.Printf("\nSaved %d questions to %s\n", len(res.Questions), challengeOut)
		}
		return nil
	},
}

func writeChallengeSet(path string, set model.ChallengeSet) error {
	data, err := yaml.Marshal(set)
	if err != nil {
		return eris.Wrap(err, "marshal challenge set")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	return nil
}

func readChallengeSet(path string) (model.ChallengeSet, error) {
	var set model.ChallengeSet
	data, err := os.ReadFile(path)
	if err != nil {
		return set, eris.Wrapf(err, "read %s", path)
	}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return set, eris.Wrapf(err, "parse challenge set %s", path)
	}
	return set, nil
}

func init() {
	challengeCmd.Flags().StringVar(&challengeDocID, "doc", "", "document id (required)")
	challengeCmd.Flags().IntVar(&challengeCount, "count", 0, "number of questions (default from config)")
	challengeCmd.Flags().StringVar(&challengeOut, "out", "", "write the question set to a YAML file")
	_ = challengeCmd.MarkFlagRequired("doc")
	rootCmd.AddCommand(challengeCmd)
}
