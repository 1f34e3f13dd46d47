package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/scanquiz/internal/catalog"
	"github.com/abhisek/scanquiz/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "scanquiz",
	Short: "HRCT scan reading quiz",
	Long:  "ScanQuiz: a terminal quiz that walks through patient cases and asks which findings appear on their chest HRCT.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("catalog", "", "Path to a patient catalog YAML file (defaults to the bundled cases)")
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (overrides "+config.EnvPath+" env var)")
	rootCmd.PersistentFlags().String("debug-log", "", "Write a debug log to this file (overrides "+config.EnvDebugLog+" env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(casesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scansCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file selected by --config, the environment or
// the XDG default.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	p, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadDefault(p)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// loadCatalog returns the catalog named by --catalog (highest priority),
// then the config file, then the bundled default.
func loadCatalog(cmd *cobra.Command, cfg config.Config) (*catalog.Catalog, error) {
	p, _ := cmd.Flags().GetString("catalog")
	if p == "" {
		p = cfg.Catalog
	}
	if p == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(p)
	if err != nil {
		return nil, err
	}
	if c.Len() == 0 {
		fmt.Fprintln(os.Stderr, "Warning: catalog", p, "has no patients.")
	}
	return c, nil
}
