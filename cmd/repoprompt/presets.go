package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"repoprompt/internal/preset"
)

func presetsCmd() *cobra.Command {
	var showPrompts bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in LLM task presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, p := range preset.All() {
				fmt.Fprintf(out, "%-22s %s\n", p.ID, p.Description)
				fmt.Fprintf(out, "%-22s model: %s, max tokens: %d, temperature: %.1f\n",
					"", p.SuggestedModel, p.MaxTokensHint, p.TemperatureHint)
				if showPrompts {
					fmt.Fprintf(out, "\n%s\n\n", p.SystemPrompt)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPrompts, "prompts", false, "Also print each preset's system prompt")

	return cmd
}
