package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cellmachine/internal/platform/tui"
	"github.com/vovakirdan/cellmachine/internal/registry"
	"github.com/vovakirdan/cellmachine/internal/scenarios"
	"github.com/vovakirdan/cellmachine/internal/session"
)

// runMenu drives the title screen. Leaving the simulator, the picker or
// the history with Esc comes back here; quitting anywhere ends the loop.
func runMenu(_ *cobra.Command, _ []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	store := a.openStore()
	cfg := a.runtime()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config
		if menuResult.Quit {
			return nil
		}

		var sc registry.Scenario
		switch menuResult.Choice {
		case tui.ChoiceNewBoard:
			sc, err = scenarios.Resolve(scenarios.EmptyID, a.loader)
			if err != nil {
				return err
			}

		case tui.ChoiceOpenBoard:
			entries, catErr := scenarios.Catalog(a.loader)
			if catErr != nil {
				a.logger.Warn("board directory unreadable", "dir", a.loader.Root, "err", catErr)
			}
			entry, quit, pickErr := tui.RunPicker(entries, cfg)
			if pickErr != nil {
				return pickErr
			}
			if quit {
				return nil
			}
			if entry == nil {
				continue
			}
			sc, err = scenarios.Resolve(entry.Ref(), a.loader)
			if err != nil {
				a.logger.Error("cannot open board", "board", entry.Ref(), "err", err)
				continue
			}

		case tui.ChoiceHistory:
			goBack, histErr := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if histErr != nil {
				return histErr
			}
			if goBack {
				continue
			}
			return nil

		default:
			return nil
		}

		sess, err := session.New(sc, cfg, a.logger)
		if err != nil {
			a.logger.Error("cannot build board", "board", sc.ID(), "err", err)
			continue
		}
		back, err := tui.Run(sess, store, cfg, a.logger)
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}
