package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cellmachine/internal/config"
	"github.com/vovakirdan/cellmachine/internal/platform/tui"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after layering the config file and flags
over the defaults. With --defaults the embedded default file is printed,
ready to be copied to ~/.cellmachine/config.yaml.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the embedded default config")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	if flagDefaults {
		_, err := w.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Encode(cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(data))
	fmt.Fprintf(w, "# themes: %s\n", strings.Join(tui.ThemeNames(), ", "))
	return nil
}
