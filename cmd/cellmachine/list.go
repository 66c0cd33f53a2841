package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cellmachine/internal/scenarios"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available boards",
	Long:  `Shows the built-in boards followed by the board files found in the boards directory.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := scenarios.Catalog(a.loader)
	if err != nil {
		a.logger.Warn("board directory unreadable", "dir", a.loader.Root, "err", err)
	}

	if len(entries) == 0 {
		fmt.Println("No boards available.")
		return nil
	}

	fmt.Println("Available boards:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, e := range entries {
		maxIDLen = max(maxIDLen, len(e.ID))
		maxTitleLen = max(maxTitleLen, len(e.Title))
	}

	fmt.Printf("  %-*s  %-*s  %-7s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Source", "Description")
	fmt.Printf("  %-*s  %-*s  %-7s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------", "-----------")

	for _, e := range entries {
		desc := e.Description
		if e.Source == scenarios.SourceFile {
			desc = e.Path
		}
		fmt.Printf("  %-*s  %-*s  %-7s  %s\n", maxIDLen, e.ID, maxTitleLen, e.Title, e.Source, desc)
	}

	fmt.Println()
	fmt.Println("Run 'cellmachine play <id>' to open a board.")
	return nil
}
