package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cellmachine/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [board]",
	Short: "Show recorded runs",
	Long: `Display the most recent runs, optionally for a single board, with
aggregate statistics. --clear deletes the listed runs instead.

Examples:
  cellmachine history
  cellmachine history head-on --limit 5
  cellmachine history head-on --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete recorded runs")
}

func runHistory(cmd *cobra.Command, args []string) error {
	board := ""
	if len(args) == 1 {
		board = args[0]
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := storage.Open(a.cfg.Storage.DB)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	a.store = store

	w := cmd.OutOrStdout()
	if flagClear {
		n, err := store.ClearRuns(board)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Deleted %s runs.\n", humanize.Comma(n))
		return nil
	}
	return printHistory(w, store, board, flagLimit)
}

func printHistory(w io.Writer, store *storage.Store, board string, limit int) error {
	var (
		runs []storage.Run
		err  error
	)
	if board == "" {
		fmt.Fprintln(w, "Run History - all boards")
		runs, err = store.RecentRuns(limit)
	} else {
		fmt.Fprintf(w, "Run History - %s\n", board)
		runs, err = store.RunsForBoard(board, limit)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-16s  %-16s  %-8s  %10s  %10s  %8s  %s\n",
		"When", "Board", "Source", "Steps", "Moves", "Spawns", "Time")
	fmt.Fprintf(w, "  %-16s  %-16s  %-8s  %10s  %10s  %8s  %s\n",
		"----", "-----", "------", "-----", "-----", "------", "----")
	for _, r := range runs {
		fmt.Fprintf(w, "  %-16s  %-16s  %-8s  %10s  %10s  %8s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.BoardID,
			r.Source,
			humanize.Comma(int64(r.Steps)),
			humanize.Comma(int64(r.Moves)),
			humanize.Comma(int64(r.Spawns)),
			r.Duration.Round(time.Millisecond))
	}

	if board == "" {
		return nil
	}
	stats, err := store.BoardStats(board)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d runs, %s steps total, longest %s steps, last run %s\n",
		stats.Runs,
		humanize.Comma(stats.TotalSteps),
		humanize.Comma(stats.MaxSteps),
		humanize.Time(stats.LastRun))
	return nil
}
