package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/analyzer"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
)

var (
	analyzeYear        string
	analyzeMake        string
	analyzeModel       string
	analyzeTrim        string
	analyzeVehicleType string
	analyzeFilter      string
	analyzeParts       []string
	analyzePartsFile   string
	analyzeMinROI      float64
	analyzeSort        string
	analyzeTop         int
	analyzeFormat      string
	analyzeOutput      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze resale ROI for a vehicle's parts",
	Long: `Analyze looks up the junkyard price for each selected part, searches
eBay for recently sold listings on the given vehicle, and reports the
resale ROI per part. Without --parts, the part set comes from the
catalog narrowed by --filter.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv("analyze")
		if err != nil {
			return err
		}

		vehicle := model.Vehicle{
			Year:  analyzeYear,
			Make:  analyzeMake,
			Model: analyzeModel,
			Trim:  analyzeTrim,
			Type:  model.VehicleType(analyzeVehicleType),
		}

		parts, err := selectParts(env)
		if err != nil {
			return err
		}
		if len(parts) == 0 {
			return eris.Errorf("no parts matched filter %q; try --filter all or an explicit --parts list", analyzeFilter)
		}

		report := env.Analyzer.Report(cmd.Context(), vehicle, parts)

		results := report.Results
		if analyzeMinROI > 0 {
			results = analyzer.FilterByMinROI(results, analyzeMinROI)
		}
		if analyzeSort == "sold" {
			results = analyzer.SortBySoldCount(results)
		}
		if analyzeTop > 0 {
			results = analyzer.TopN(results, analyzeTop)
		}
		report.Results = results

		out, closeOut, err := openOutput(analyzeOutput)
		if err != nil {
			return err
		}
		defer closeOut()

		switch analyzeFormat {
		case "json":
			return writeReportJSON(out, report)
		case "table":
			return writeReportTable(out, report)
		default:
			return eris.Errorf("unknown format %q (want table or json)", analyzeFormat)
		}
	},
}

// selectParts resolves the part set for a run: an explicit --parts list
// wins; otherwise the catalog is narrowed by the part-list filter.
func selectParts(env *analysisEnv) ([]string, error) {
	if len(analyzeParts) > 0 {
		return analyzeParts, nil
	}

	lists := analyzer.DefaultPartLists()
	if analyzePartsFile != "" {
		var err error
		lists, err = analyzer.LoadPartLists(analyzePartsFile)
		if err != nil {
			return nil, err
		}
	}
	return lists.Select(env.Catalog.Parts(), analyzer.PartFilter(analyzeFilter)), nil
}

func writeReportJSON(w io.Writer, report model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return eris.Wrap(err, "encode report")
	}
	return nil
}

func writeReportTable(w io.Writer, report model.Report) error {
	s := report.Summary
	fmt.Fprintf(w, "Vehicle: %s\n", s.VehicleInfo)
	fmt.Fprintf(w, "Parts: %d   High ROI: %d   Errors: %d\n\n", s.TotalParts, s.HighROICount, s.ErroredParts)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PART\tJUNKYARD\tMEDIAN SOLD\tROI\tRATING\tSOLD\tACTIVE\tERROR")
	fmt.Fprintln(tw, "----\t--------\t-----------\t---\t------\t----\t------\t-----")
	for _, res := range report.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			res.PartName,
			fmtMoney(res.JunkyardPrice),
			fmtMoney(res.MedianSoldPrice),
			fmtRatio(res.ROI),
			res.Tier.Label(),
			res.SoldCount,
			res.ActiveListingCount,
			res.Error,
		)
	}
	return tw.Flush()
}

func fmtMoney(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("$%.2f", *p)
}

func fmtRatio(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.2fx", *p)
}

// openOutput returns the writer for a command's --output flag: the
// named file, or stdout when the flag is empty.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create %s", path)
	}
	return f, func() { _ = f.Close() }, nil
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeYear, "year", "", "vehicle year (required)")
	analyzeCmd.Flags().StringVar(&analyzeMake, "make", "", "vehicle make (required)")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "vehicle model (required)")
	analyzeCmd.Flags().StringVar(&analyzeTrim, "trim", "", "trim or engine detail for the search query")
	analyzeCmd.Flags().StringVar(&analyzeVehicleType, "vehicle-type", "car", "car or truck, used for grouping exports")
	analyzeCmd.Flags().StringVar(&analyzeFilter, "filter", "high_priority", "part filter: high_priority, interior, light, or all")
	analyzeCmd.Flags().StringSliceVar(&analyzeParts, "parts", nil, "explicit part names to analyze, overrides --filter")
	analyzeCmd.Flags().StringVar(&analyzePartsFile, "parts-file", "", "YAML file overriding the built-in part lists")
	analyzeCmd.Flags().Float64Var(&analyzeMinROI, "min-roi", 0, "only show parts at or above this ROI")
	analyzeCmd.Flags().StringVar(&analyzeSort, "sort", "roi", "result order: roi or sold")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 0, "limit output to the first N parts")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "table", "output format: table or json")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write output to a file instead of stdout")
	_ = analyzeCmd.MarkFlagRequired("year")
	_ = analyzeCmd.MarkFlagRequired("make")
	_ = analyzeCmd.MarkFlagRequired("model")
	rootCmd.AddCommand(analyzeCmd)
}
