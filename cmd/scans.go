package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/scanquiz/internal/catalog"
	"github.com/abhisek/scanquiz/internal/scan"
)

var scansCmd = &cobra.Command{
	Use:   "scans",
	Short: "Work with case scans",
}

var scansExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the scans of the catalog to image files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		format, _ := cmd.Flags().GetString("format")
		patient, _ := cmd.Flags().GetString("patient")

		if format != "png" && format != "dcm" {
			return fmt.Errorf("invalid format %q: must be png or dcm", format)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cmd, cfg)
		if err != nil {
			return err
		}

		cases := cat.Cases()
		if patient != "" {
			p, ok := cat.Get(patient)
			if !ok {
				return fmt.Errorf("unknown patient %q", patient)
			}
			cases = []catalog.PatientCase{p}
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		lib := scan.NewLibrary()
		for _, p := range cases {
			for _, results := range []bool{false, true} {
				path := filepath.Join(dir, fmt.Sprintf("%s-%s.%s", p.ID, scanName(results), format))
				if err := exportScan(lib, p, results, format, path); err != nil {
					return err
				}
				fmt.Println("wrote", path)
			}
		}
		return nil
	},
}

func init() {
	scansExportCmd.Flags().String("dir", "", "Output directory (required)")
	scansExportCmd.Flags().String("format", "png", "Output format: png or dcm")
	scansExportCmd.Flags().String("patient", "", "Export only this patient")
	_ = scansExportCmd.MarkFlagRequired("dir")

	scansCmd.AddCommand(scansExportCmd)
}

func exportScan(lib *scan.Library, p catalog.PatientCase, results bool, format, path string) error {
	img, err := lib.Get(p.Scan(results))
	if err != nil {
		return fmt.Errorf("load %s %s scan: %w", p.ID, scanName(results), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if format == "dcm" {
		err = scan.WriteDICOM(f, img, scan.Meta{
			PatientID:   p.ID,
			PatientName: p.Name,
			Description: p.Condition + " HRCT (" + scanName(results) + ")",
		})
	} else {
		err = scan.WritePNG(f, img)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
