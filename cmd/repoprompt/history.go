package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"repoprompt/internal/history"
)

func historyCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = history.DefaultPath()
			}

			store, err := history.Open(dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.Recent(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			for _, r := range runs {
				preset := r.Preset
				if preset == "" {
					preset = "-"
				}
				fmt.Fprintf(out, "%s  %-8s  %-20s  %3d files  %2d chunks  %8d tokens  %s\n",
					r.StartedAt.Local().Format("2006-01-02 15:04"),
					r.Format, preset, r.FilesScanned, r.Chunks, r.TotalTokens,
					r.RootDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "History database path (default: user config dir)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Max runs to show")

	return cmd
}
