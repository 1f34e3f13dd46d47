package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "List the patient cases in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cmd, cfg)
		if err != nil {
			return err
		}

		fmt.Printf("%-12s  %-12s  %-20s  %7s  %s\n", "ID", "Name", "Condition", "Options", "Answers")
		fmt.Println(strings.Repeat("─", 72))
		for _, p := range cat.Cases() {
			fmt.Printf("%-12s  %-12s  %-20s  %7d  %d\n",
				p.ID, p.Name, p.Condition, len(p.QuizOptions), len(p.CorrectAnswers))
		}

		fmt.Printf("\n%d cases (catalog %s)\n", cat.Len(), cat.Version())
		return nil
	},
}
