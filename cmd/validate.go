package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/scanquiz/internal/catalog"
	"github.com/abhisek/scanquiz/internal/scan"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a catalog file and the scans it references",
	Long: `Validate a patient catalog against its schema and invariants, then make
sure every scan can be built: phantom findings must be known and image files
must decode. Without a file argument the active catalog is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			cat *catalog.Catalog
			err error
		)
		if len(args) == 1 {
			cat, err = catalog.Load(args[0])
		} else {
			cfg, cerr := loadConfig(cmd)
			if cerr != nil {
				return cerr
			}
			cat, err = loadCatalog(cmd, cfg)
		}
		if err != nil {
			return err
		}

		if err := checkScans(cat); err != nil {
			return err
		}
		fmt.Printf("catalog %s: %d cases OK\n", cat.Version(), cat.Len())
		return nil
	},
}

// checkScans verifies both scans of every case without caching them.
func checkScans(cat *catalog.Catalog) error {
	var errs []error
	for _, p := range cat.Cases() {
		for _, results := range []bool{false, true} {
			ref := p.Scan(results)
			if err := checkScan(ref); err != nil {
				errs = append(errs, fmt.Errorf("%s %s scan: %w", p.ID, scanName(results), err))
			}
		}
	}
	return errors.Join(errs...)
}

func checkScan(ref catalog.ScanRef) error {
	if ref.Synthetic() {
		_, err := scan.ParseFindings(ref.Findings)
		return err
	}
	_, err := scan.Open(ref.Path)
	return err
}

func scanName(results bool) string {
	if results {
		return "results"
	}
	return "quiz"
}
