package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <patient>",
	Short: "Open a patient case directly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cmd, cfg)
		if err != nil {
			return err
		}
		if _, ok := cat.Get(args[0]); !ok {
			return fmt.Errorf("unknown patient %q (see: scanquiz cases)", args[0])
		}
		return runApp(cmd, args[0])
	},
}
