package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"travelfuse/internal/enrichment"
)

var seedFlags struct {
	in  string
	out string
}

var seedCmd = &cobra.Command{
	Use:   "seed-workbook",
	Short: "Build an enrichment workbook from a JSON seed file",
	Long: `Converts a JSON array of destination seeds into the XLSX dataset read by
the workbook enrichment source (TRAVELFUSE_ENRICHMENT_WORKBOOK_PATH).`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFlags.in, "in", "seeds.json", "JSON seed file")
	seedCmd.Flags().StringVar(&seedFlags.out, "out", "dataset.xlsx", "output workbook")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(seedFlags.in)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seeds []enrichment.DestinationSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	f, err := enrichment.BuildWorkbook(seeds)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(seedFlags.out); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	var lodgings, restaurants int
	for _, s := range seeds {
		lodgings += len(s.Lodgings)
		restaurants += len(s.Restaurants)
	}
	log.Printf("seed-workbook: %d destinations, %d lodgings, %d restaurants", len(seeds), lodgings, restaurants)
	cmd.Printf("Wrote %s\n", seedFlags.out)
	return nil
}
