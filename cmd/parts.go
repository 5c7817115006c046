package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/catalog"
)

var partsCmd = &cobra.Command{
	Use:   "parts",
	Short: "Browse the junkyard price catalog",
}

var partsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every part in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv("parts")
		if err != nil {
			return err
		}

		entries := env.Catalog.Entries()
		if len(entries) == 0 {
			fmt.Fprintln(os.Stderr, "Catalog is empty.")
			return nil
		}
		return writePartsTable(entries)
	},
}

var partsSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search catalog parts by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv("parts")
		if err != nil {
			return err
		}

		entries := env.Catalog.Search(args[0])
		if len(entries) == 0 {
			fmt.Fprintf(os.Stderr, "No parts match %q.\n", args[0])
			return nil
		}
		return writePartsTable(entries)
	},
}

var partsLookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Look up the junkyard price for one part",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv("parts")
		if err != nil {
			return err
		}

		name := args[0]
		if entry, ok := env.Catalog.Match(name); ok {
			fmt.Printf("%s: $%.2f\n", entry.Name, entry.Price)
			return nil
		}

		fmt.Fprintf(os.Stderr, "No catalog entry for %q.\n", name)
		if suggestions := env.Catalog.Suggest(name, 3); len(suggestions) > 0 {
			fmt.Fprintf(os.Stderr, "Did you mean: %s\n", strings.Join(suggestions, ", "))
		}
		return nil
	},
}

func writePartsTable(entries []catalog.Entry) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PART\tPRICE")
	fmt.Fprintln(tw, "----\t-----")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t$%.2f\n", e.Name, e.Price)
	}
	return tw.Flush()
}

func init() {
	partsCmd.AddCommand(partsListCmd)
	partsCmd.AddCommand(partsSearchCmd)
	partsCmd.AddCommand(partsLookupCmd)
	rootCmd.AddCommand(partsCmd)
}
