package main

import (
	"encoding/json"
	"fmt"
	"os"
	"wellcheck/internal/model"
	"wellcheck/internal/scoring"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	scoreFillDefaults bool
	scoreJSON         bool
)

var scoreCmd = &cobra.Command{
	Use:   "score FILE",
	Short: "Score a YAML answer file",
	Long: `Scores every category of the catalog from a YAML answer file and prints
each category score with its classification, followed by the overall score.

The file lists one entry per question:

  answers:
    - category: body
      question: 0
      value: 7`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreFillDefaults, "fill-defaults", false, "Answer unlisted questions with the neutral default")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the report as JSON")
}

// answerFile is the on-disk form of a respondent's answers
type answerFile struct {
	Answers []model.Answer `yaml:"answers"`
}

func readAnswers(path string) (model.AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	var f answerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	return model.NewAnswerSet(f.Answers)
}

func runScore(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	answers, err := readAnswers(args[0])
	if err != nil {
		return err
	}

	if scoreFillDefaults {
		filled := model.DefaultAnswerSet(cat)
		for k, v := range answers {
			filled.Set(k, v)
		}
		answers = filled
	}
	logger.Debug("scoring answers", zap.String("file", args[0]), zap.Int("answers", len(answers)))

	report, err := scoring.Evaluate(cat, answers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scoreJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	for i, sc := range report.Categories {
		fmt.Fprintf(out, "%s %-24s %5.2f  %s\n", sc.Classification.Icon, cat.Categories[i].DisplayName(), sc.Score, sc.Classification.Message)
	}
	o := report.Overall
	fmt.Fprintf(out, "\n%s %-24s %5.2f  %s\n", o.Classification.Icon, "Overall", o.Score, o.Classification.Recommendation)
	return nil
}
