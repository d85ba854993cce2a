package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcastner/duscan/internal/display"
	"github.com/rcastner/duscan/internal/history"
)

// NewHistoryCommand creates the history subcommand, which lists runs
// recorded with --save.
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded scan runs",
		Long: `List scans previously recorded with --save, newest first.

Each line shows when the scan started, the scanned root, its measured total
size, and the effective flags.`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().String("db", "", "History database path (default: ~/.duscan/history.db)")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		var err error
		dbPath, err = history.DefaultPath()
		if err != nil {
			return err
		}
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No recorded runs. Scan with --save to record one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(out, "%s  %-12s %s  (%d entries, %d warnings, %s)  [%s]\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			display.FormatSize(r.TotalBytes),
			r.Root,
			r.Entries, r.Warnings, r.Duration.Round(time.Millisecond),
			r.Flags,
		)
	}
	return nil
}
