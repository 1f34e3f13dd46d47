package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/scanquiz/internal/app"
)

// runApp loads config and catalog and launches the TUI, optionally on the
// intro of patient.
func runApp(cmd *cobra.Command, patient string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cmd, cfg)
	if err != nil {
		return err
	}

	flag, _ := cmd.Flags().GetString("debug-log")
	return app.Run(app.Options{
		Catalog:  cat,
		Config:   cfg,
		Patient:  patient,
		DebugLog: cfg.DebugLogPath(flag),
	})
}
