package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cellmachine/internal/boards"
	"github.com/vovakirdan/cellmachine/internal/machine"
	"github.com/vovakirdan/cellmachine/internal/scenarios"
	"github.com/vovakirdan/cellmachine/internal/session"
	"github.com/vovakirdan/cellmachine/internal/storage"
)

var (
	flagFrames   uint64
	flagPaused   bool
	flagExport   string
	flagNoRecord bool
	flagQuiet    bool
)

var runCmd = &cobra.Command{
	Use:   "run <board>",
	Short: "Run a board headless",
	Long: `Feed a board a number of frames without a terminal UI and print the
final grid with step statistics. Boards run unpaused unless --paused is
given. The run is recorded in the history unless --no-record is set.

Examples:
  cellmachine run head-on
  cellmachine run generator-feed --frames 1200 --speed turbo
  cellmachine run push-train --export ./boards/after.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runHeadless,
}

func init() {
	runCmd.Flags().Uint64Var(&flagFrames, "frames", 600, "Number of frames to feed")
	runCmd.Flags().BoolVar(&flagPaused, "paused", false, "Keep the board's paused state")
	runCmd.Flags().StringVar(&flagExport, "export", "", "Write the final grid as a board file")
	runCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save the run in the history")
	runCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Print statistics only")
}

type headlessOptions struct {
	Frames   uint64
	Paused   bool
	Export   string
	NoRecord bool
	Quiet    bool
}

func runHeadless(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := headlessOptions{
		Frames:   flagFrames,
		Paused:   flagPaused,
		Export:   flagExport,
		NoRecord: flagNoRecord,
		Quiet:    flagQuiet,
	}
	var store *storage.Store
	if !opts.NoRecord {
		store = a.openStore()
	}
	return headless(a, store, args[0], opts, cmd.OutOrStdout())
}

// headless runs one board to completion and reports on w.
func headless(a *app, store *storage.Store, ref string, opts headlessOptions, w io.Writer) error {
	sc, err := scenarios.Resolve(ref, a.loader)
	if err != nil {
		return err
	}

	sess, err := session.New(sc, a.cfg.Runtime(), a.logger)
	if err != nil {
		return err
	}
	if !opts.Paused {
		sess.Grid().SetPaused(false)
	}

	started := time.Now()
	stats := sess.RunFrames(opts.Frames)
	elapsed := time.Since(started)

	g := sess.Grid()
	a.logger.Info("headless run finished", "board", sess.BoardID(),
		"frames", stats.Frames, "steps", stats.Steps, "elapsed", elapsed)

	if !opts.Quiet {
		fmt.Fprint(w, machine.RenderWithFrame(g, sess.Title()))
	}
	printStats(w, sess.Stats(), g.Census())

	if opts.Export != "" {
		if err := exportBoard(sess, opts.Export); err != nil {
			return err
		}
		fmt.Fprintf(w, "Exported to %s\n", opts.Export)
	}

	if store != nil {
		saved, err := store.SaveRun(sess.Record(storage.SourceHeadless, elapsed))
		if err != nil {
			a.logger.Warn("cannot record run", "err", err)
		} else {
			a.logger.Debug("run recorded", "id", saved.ID)
		}
	}
	return nil
}

func printStats(w io.Writer, st session.Stats, census machine.Census) {
	fmt.Fprintf(w, "Frames: %s  Steps: %s  Moves: %s  Spawns: %s  Blocked: %s\n",
		humanize.Comma(int64(st.Frames)),
		humanize.Comma(int64(st.Steps)),
		humanize.Comma(int64(st.Moves)),
		humanize.Comma(int64(st.Spawns)),
		humanize.Comma(int64(st.Blocked)))
	fmt.Fprintf(w, "Movers: %d  Pushers: %d  Generators: %d  Empty: %d\n",
		census.Movers, census.Pushers, census.Generators, census.Empty)
}

// exportBoard writes the session grid as a board definition file.
func exportBoard(sess *session.Session, path string) error {
	id := sess.BoardID()
	b := boards.FromGrid(id, sess.Title(), sess.Grid())
	data, err := boards.Encode(b, path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
