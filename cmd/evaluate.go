package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"hydrorag/src/core/evaluation"
	"hydrorag/src/infrastructure/log"
)

var evaluateEngine string

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate <document>",
	Short: "Evaluate the answering pipeline over a document",
	Long: `The evaluate command indexes a document, runs the built-in question
catalog through the answering workflow and scores the results with the
selected engine (quality, risk or comprehensive)`,
	Args: cobra.ExactArgs(1),
	Run:  RunEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateEngine, "engine", "comprehensive", "evaluation engine: quality, risk or comprehensive")
	rootCmd.AddCommand(evaluateCmd)
}

func RunEvaluate(cmd *cobra.Command, args []string) {
	path := args[0]

	var bar *progressbar.ProgressBar
	var barStage string
	progress := func(stage string, current, total int) {
		if bar == nil || stage != barStage {
			bar = progressbar.Default(int64(total), stage)
			barStage = stage
		}
		bar.Set(current)
	}

	services, err := buildStack(evaluation.WithProgress(progress))
	if err != nil {
		log.Error(err, "Failed to wire services")
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		log.Error(err, "Failed to read document", "path", path)
		return
	}

	ctx := context.Background()
	sess, _, err := services.qaService.UploadDocument(ctx, filepath.Base(path), content)
	if err != nil {
		log.Error(err, "Failed to index document")
		return
	}

	var result interface{}
	switch evaluateEngine {
	case "quality":
		result, err = services.coordinator.RunQuality(ctx, sess.ID)
	case "risk":
		result, err = services.coordinator.RunRisk(ctx, sess.ID)
	case "comprehensive":
		result, err = services.coordinator.RunComprehensive(ctx, sess.ID)
	default:
		log.Info("Unknown engine", "engine", evaluateEngine)
		return
	}
	if err != nil {
		log.Error(err, "Evaluation failed")
		return
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Error(err, "Failed to render report")
		return
	}
	fmt.Println(string(out))

	if report, ok := result.(*evaluation.Report); ok {
		fmt.Printf("\nsystem health: %.2f (%s)\n", report.HealthScore, report.HealthBand)
	}
}
