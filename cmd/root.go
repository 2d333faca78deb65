package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hydrorag",
	Short: "Question answering over uploaded documents with built-in self evaluation",
	Long: `hydrorag answers questions against user supplied documents through a
retrieval pipeline with relevance grading and hallucination checking, and
ships an evaluation harness that scores the pipeline's answer quality and
probes it for robustness, bias, performance and consistency risks.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(settingDefaultConfig)
}
