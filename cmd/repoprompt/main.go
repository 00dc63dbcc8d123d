// Command repoprompt converts code repositories into LLM-friendly
// prompts with token-bounded chunking.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "repoprompt",
		Short: "Convert code repositories into LLM prompts",
		Long: `Convert code repositories into LLM-friendly prompts with intelligent chunking.

repoprompt scans a directory, filters and token-estimates source files,
packs them into size-bounded chunks, and renders each chunk through a
template. It respects .gitignore patterns and ships presets for common
analysis tasks.

Examples:
  # Scan the current directory
  repoprompt generate

  # Scan a specific project
  repoprompt generate --dir ./my-project --out ./prompts

  # Use a preset for code review
  repoprompt generate --dir ./src --preset code-review

  # JSON output with a custom token limit
  repoprompt generate --dir ./src --format json --max-tokens 150000`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(presetsCmd())
	rootCmd.AddCommand(historyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
