package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/export"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the saved parts list",
	Long: `Export writes the saved parts list as a spreadsheet or a printable
page. The xlsx workbook splits cars and trucks onto separate sheets;
the html page is self-contained and styled for printing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv("export")
		if err != nil {
			return err
		}

		parts := env.Store.List()

		path := exportOutput
		if path == "" {
			path = defaultExportName(exportFormat)
		}
		f, err := os.Create(path)
		if err != nil {
			return eris.Wrapf(err, "create %s", path)
		}
		defer f.Close()

		if err := writeExport(f, exportFormat, parts); err != nil {
			return err
		}
		fmt.Printf("Exported %d parts to %s\n", len(parts), path)
		return nil
	},
}

func writeExport(w io.Writer, format string, parts []model.SavedPart) error {
	switch format {
	case "csv":
		return export.WriteCSV(w, parts)
	case "xlsx":
		return export.WriteXLSX(w, parts)
	case "html":
		return export.WriteHTML(w, parts, time.Now())
	default:
		return eris.Errorf("unknown format %q (want csv, xlsx, or html)", format)
	}
}

func defaultExportName(format string) string {
	switch format {
	case "html":
		return "my-parts-list.html"
	default:
		return "parts_list." + format
	}
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv, xlsx, or html")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path (default parts_list.<format>)")
	rootCmd.AddCommand(exportCmd)
}
