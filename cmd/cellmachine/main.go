// cellmachine is a terminal cell machine: movers, pushers and generators
// on a grid, advanced by a deterministic double-buffered step.
//
// Usage:
//
//	cellmachine                   - Start the title screen
//	cellmachine list              - List built-in and on-disk boards
//	cellmachine play <board>      - Open a board in the simulator
//	cellmachine run <board>       - Run a board headless and print the result
//	cellmachine history [board]   - Show recorded runs
//	cellmachine config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>   - Config file (default: ~/.cellmachine/config.yaml)
//	--fps <rate>      - Frames per second
//	--speed <preset>  - slow, normal, fast or turbo
//	--db <path>       - Run history database
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register built-in boards
	_ "github.com/vovakirdan/cellmachine/internal/scenarios"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSpeed    string
	flagDBPath   string
	flagBoards   string
	flagTheme    string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cellmachine",
	Short: "Cell Machine - movers, pushers and generators in your terminal",
	Long: `Cell Machine is a terminal cellular automaton. Movers walk in the
direction they face, pushers shove whole chains of cells, and generators
copy the cell behind them to the cell in front.

Available commands:
  list     - Show built-in boards and board files
  play     - Open a board in the simulator
  run      - Advance a board headless and print it
  history  - View recorded runs
  config   - Print the effective configuration

Without a command the title screen is shown.

Examples:
  cellmachine
  cellmachine play push-train
  cellmachine play ./boards/loop.yaml --speed fast
  cellmachine run head-on --frames 600
  cellmachine history head-on`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second)")
	pf.StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast, turbo")
	pf.StringVar(&flagDBPath, "db", "", "Path to run history database")
	pf.StringVar(&flagBoards, "boards", "", "Directory with board files")
	pf.StringVar(&flagTheme, "theme", "", "Color theme: default, neon, pastel, mono")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}
