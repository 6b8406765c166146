package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootDir string

var rootCmd = &cobra.Command{
	Use:   "ragsynth",
	Short: "Index local documents and query them with an LLM",
	Long: `ragsynth ingests documents into a local store and answers questions
about them by synthesizing LLM responses over the stored text.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "project directory holding config.ini and the document store")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(queryCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
