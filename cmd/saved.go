package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/saved"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage the saved parts list",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show saved parts",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv("saved")
		if err != nil {
			return err
		}

		parts := env.Store.List()
		if len(parts) == 0 {
			fmt.Fprintln(os.Stderr, "No saved parts.")
			return nil
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(parts)
		case "table":
			return writeSavedTable(parts)
		default:
			return eris.Errorf("unknown format %q (want table or json)", format)
		}
	},
}

var savedAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a part with hand-entered prices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv("saved")
		if err != nil {
			return err
		}

		junkyard, _ := cmd.Flags().GetFloat64("junkyard-price")
		ebaySold, _ := cmd.Flags().GetFloat64("ebay-price")
		vehicleType, _ := cmd.Flags().GetString("vehicle-type")
		youtube, _ := cmd.Flags().GetString("youtube")
		notes, _ := cmd.Flags().GetString("notes")

		part, err := saved.NewManualEntry(args[0], junkyard, ebaySold, model.VehicleType(vehicleType), youtube, notes)
		if err != nil {
			return err
		}
		if err := env.Store.Add(part); err != nil {
			return err
		}

		fmt.Printf("Saved: %s\n", part.PartName)
		return nil
	},
}

var savedRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a saved part by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv("saved")
		if err != nil {
			return err
		}

		removed, err := env.Store.Remove(args[0])
		if err != nil {
			return err
		}
		if !removed {
			fmt.Fprintf(os.Stderr, "No saved part named %q.\n", args[0])
			return nil
		}
		fmt.Printf("Removed: %s\n", args[0])
		return nil
	},
}

var savedUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Set the tutorial link and notes on a saved part",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv("saved")
		if err != nil {
			return err
		}

		youtube, _ := cmd.Flags().GetString("youtube")
		notes, _ := cmd.Flags().GetString("notes")

		if err := env.Store.Update(args[0], youtube, notes); err != nil {
			return err
		}
		fmt.Printf("Updated: %s\n", args[0])
		return nil
	},
}

var savedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved part",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv("saved")
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return eris.Errorf("refusing to clear %d saved parts without --yes", env.Store.Len())
		}
		if err := env.Store.Clear(); err != nil {
			return err
		}
		fmt.Println("Saved parts cleared.")
		return nil
	},
}

func writeSavedTable(parts []model.SavedPart) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PART\tVEHICLE\tJUNKYARD\tEBAY SOLD\tROI\tRATING\tADDED")
	fmt.Fprintln(tw, "----\t-------\t--------\t---------\t---\t------\t-----")
	for _, p := range parts {
		roiCol := "-"
		if p.ROI > 0 {
			roiCol = fmt.Sprintf("%.2fx", p.ROI)
		}
		added := ""
		if !p.SavedAt.IsZero() {
			added = p.SavedAt.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t$%.2f\t$%.2f\t%s\t%s\t%s\n",
			p.PartName, p.VehicleInfo(), p.JunkyardPrice, p.EbaySoldPrice,
			roiCol, p.Tier.Label(), added)
	}
	return tw.Flush()
}

func init() {
	savedListCmd.Flags().String("format", "table", "output format: table or json")

	savedAddCmd.Flags().Float64("junkyard-price", 0, "what the part costs at the junkyard")
	savedAddCmd.Flags().Float64("ebay-price", 0, "what the part sells for on eBay")
	savedAddCmd.Flags().String("vehicle-type", "car", "car or truck")
	savedAddCmd.Flags().String("youtube", "", "tutorial video link")
	savedAddCmd.Flags().String("notes", "", "free-form notes")

	savedUpdateCmd.Flags().String("youtube", "", "tutorial video link")
	savedUpdateCmd.Flags().String("notes", "", "free-form notes")

	savedClearCmd.Flags().Bool("yes", false, "confirm deleting the whole list")

	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedAddCmd)
	savedCmd.AddCommand(savedRemoveCmd)
	savedCmd.AddCommand(savedUpdateCmd)
	savedCmd.AddCommand(savedClearCmd)
	rootCmd.AddCommand(savedCmd)
}
