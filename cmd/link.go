package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/saved"
)

var (
	linkPartName      string
	linkJunkyardParts []string
	linkVehicleType   string
	linkYouTube       string
	linkNotes         string
	linkDryRun        bool
)

var linkCmd = &cobra.Command{
	Use:   "link <ebay-url>",
	Short: "Save a part straight from an eBay listing URL",
	Long: `Link fetches the listing page, extracts the title, price, and vehicle
details, matches the part against the junkyard catalog, and saves it.
Use --junkyard-part to name the catalog entries this listing covers;
without it the part name is matched against the catalog automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv("link")
		if err != nil {
			return err
		}

		res, err := env.Parser.Parse(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		part := saved.NewFromListing(*res, env.Catalog, saved.ListingOptions{
			CustomName:    linkPartName,
			SelectedParts: linkJunkyardParts,
			VehicleType:   model.VehicleType(linkVehicleType),
			YouTubeLink:   linkYouTube,
			Notes:         linkNotes,
		})

		if linkDryRun {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(part)
		}

		if err := env.Store.Add(part); err != nil {
			return err
		}

		fmt.Printf("Saved: %s\n", part.PartName)
		if part.ROI > 0 {
			fmt.Printf("  eBay $%.2f / junkyard $%.2f = %.2fx ROI (%s)\n",
				part.EbaySoldPrice, part.JunkyardPrice, part.ROI, part.Tier.Label())
		} else {
			fmt.Println("  No junkyard price matched; ROI unknown.")
		}
		return nil
	},
}

func init() {
	linkCmd.Flags().StringVar(&linkPartName, "part-name", "", "part name to save under, overrides the listing title")
	linkCmd.Flags().StringSliceVar(&linkJunkyardParts, "junkyard-part", nil, "catalog entries this listing covers (repeatable)")
	linkCmd.Flags().StringVar(&linkVehicleType, "vehicle-type", "car", "car or truck")
	linkCmd.Flags().StringVar(&linkYouTube, "youtube", "", "tutorial video link")
	linkCmd.Flags().StringVar(&linkNotes, "notes", "", "free-form notes")
	linkCmd.Flags().BoolVar(&linkDryRun, "dry-run", false, "print the parsed part without saving it")
	rootCmd.AddCommand(linkCmd)
}
