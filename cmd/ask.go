package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"hydrorag/src/infrastructure/log"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <document> <question>",
	Short: "Ask a single question against a document",
	Long:  `The ask command indexes a document, runs one question through the answering workflow and prints the result`,
	Args:  cobra.ExactArgs(2),
	Run:   RunAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func RunAsk(cmd *cobra.Command, args []string) {
	path, question := args[0], args[1]

	services, err := buildStack()
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

	state, err := services.qaService.Ask(ctx, sess.ID, question)
	if err != nil {
		log.Error(err, "Failed to answer question")
		return
	}

	fmt.Println(state.Solution)
	if state.Verdict != "" {
		fmt.Printf("\nverdict: %s (attempts: %d)\n", state.Verdict, state.RetryCount)
	}
	if state.OnlineSearch {
		fmt.Println("note: some retrieved passages were off topic, an online search may help")
	}
}
