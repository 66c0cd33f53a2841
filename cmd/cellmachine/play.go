package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cellmachine/internal/platform/tui"
	"github.com/vovakirdan/cellmachine/internal/scenarios"
	"github.com/vovakirdan/cellmachine/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Open a board in the simulator",
	Long: `Open a board in the interactive simulator. The board may be a
built-in ID, a board ID from the boards directory or a path to a board
file. Without an argument an empty board is opened.

Controls:
  Space        - Pause / resume
  N            - Single step (while paused)
  W/A/S/D      - Pan the view
  Arrows/hjkl  - Move the cursor
  Enter/Click  - Place the selected cell
  Del/R-Click  - Erase
  X/Z          - Next / previous cell kind
  E/Q          - Rotate clockwise / counter-clockwise
  Ctrl+S       - Screenshot
  ?            - All keys
  Esc          - Title screen
  Ctrl+C       - Quit

Examples:
  cellmachine play
  cellmachine play push-train
  cellmachine play ./boards/loop.yaml --speed turbo`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	ref := scenarios.EmptyID
	if len(args) == 1 {
		ref = args[0]
	}

	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	sc, err := scenarios.Resolve(ref, a.loader)
	if err != nil {
		return fmt.Errorf("%w\nRun 'cellmachine list' to see available boards", err)
	}

	sess, err := session.New(sc, a.runtime(), a.logger)
	if err != nil {
		return err
	}

	_, err = tui.Run(sess, a.openStore(), a.runtime(), a.logger)
	return err
}
