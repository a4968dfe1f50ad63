package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"travelfuse/internal/app"
	"travelfuse/internal/config"
	"travelfuse/internal/domain"
	"travelfuse/internal/planexport"
	"travelfuse/internal/service"
)

var planFlags struct {
	destination string
	title       string
	days        int
	start       string
	format      string
	out         string
}

var planCmd = &cobra.Command{
	Use:   "plan [file]",
	Short: "Parse an itinerary into a fused travel plan",
	Long:  `Reads an itinerary document ("-" for stdin) and prints the plan as JSON, or exports it as CSV or XLSX.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

var timelineCmd = &cobra.Command{
	Use:   "timeline [file]",
	Short: "Extract only the daily timeline from an itinerary",
	Args:  cobra.ExactArgs(1),
	RunE:  runTimeline,
}

func init() {
	planCmd.Flags().StringVarP(&planFlags.destination, "destination", "d", "", "destination city (required)")
	planCmd.Flags().StringVarP(&planFlags.title, "title", "t", "", "plan title")
	planCmd.Flags().IntVar(&planFlags.days, "days", 0, "total number of days")
	planCmd.Flags().StringVar(&planFlags.start, "start", "", "start date (YYYY-MM-DD)")
	planCmd.Flags().StringVarP(&planFlags.format, "format", "f", "json", "output format: json, csv or xlsx")
	planCmd.Flags().StringVarP(&planFlags.out, "out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(timelineCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	content, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	input := service.ParsePlanInput{
		Content: content,
		Metadata: domain.PlanMetadata{
			Title:       planFlags.title,
			Destination: planFlags.destination,
			TotalDays:   planFlags.days,
			StartDate:   planFlags.start,
		},
	}

	if strings.EqualFold(planFlags.format, "json") {
		res, err := svc.ParsePlan(cmd.Context(), input)
		if err != nil {
			return err
		}
		for _, w := range res.Warnings {
			cmd.PrintErrln("warning:", w)
		}
		return writeOutput(cmd, planFlags.out, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		})
	}

	format, err := planexport.ParseFormat(planFlags.format)
	if err != nil {
		return err
	}
	export, err := svc.ExportPlan(cmd.Context(), input, format)
	if err != nil {
		return err
	}
	out := planFlags.out
	if out == "" && format == planexport.FormatXLSX {
		out = export.Filename
	}
	if err := writeOutput(cmd, out, func(w io.Writer) error {
		_, werr := w.Write(export.Body)
		return werr
	}); err != nil {
		return err
	}
	if out != "" {
		cmd.PrintErrf("wrote %s (%d bytes)\n", out, len(export.Body))
	}
	return nil
}

func runTimeline(cmd *cobra.Command, args []string) error {
	content, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	outcome, err := svc.ParseTimeline(cmd.Context(), service.ParsePlanInput{Content: content})
	if err != nil {
		return err
	}
	if outcome.Data != nil {
		for _, a := range *outcome.Data {
			line := fmt.Sprintf("%-11s %-6s %s", a.Time, a.Period, a.Title)
			if a.Cost > 0 {
				line += fmt.Sprintf(" (¥%d)", a.Cost)
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
	}
	for _, w := range outcome.Warnings {
		cmd.PrintErrln("warning:", w)
	}
	return nil
}

func newService() (service.PlanService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.ConfigureLogging(cfg.Log)
	a, err := app.New(cfg)
	if err != nil {
		return nil, err
	}
	return a.Service, nil
}

func readDocument(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// writeOutput sends render to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, render func(io.Writer) error) error {
	if path == "" {
		return render(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
