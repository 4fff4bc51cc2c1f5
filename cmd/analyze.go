package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/huetone/internal/client"
	"github.com/kozaktomas/huetone/internal/imaging"
	"github.com/kozaktomas/huetone/internal/workflow"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image-file>",
	Short: "Run a personal color analysis on a local photo",
	Long: `Normalize a local photo the same way the browser does (resolution caps,
JPEG re-encode) and send it to a running relay for personal color analysis.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading image file: %w", err)
	}

	img, err := imaging.NormalizeBytes(data)
	if err != nil {
		return fmt.Errorf("normalizing image: %w", err)
	}
	fmt.Printf("Normalized to %dx%d (%s)\n", img.Width, img.Height, img.Format)

	c, err := client.New(serverURL)
	if err != nil {
		return err
	}

	fmt.Println("Analyzing... this can take a couple of minutes")
	result, err := c.Analyze(context.Background(), client.AnalyzeRequest{
		Image:     img.DataURI,
		UserID:    imaging.NewCorrelationID(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	printAnalysis(result)
	return nil
}

func printAnalysis(r *workflow.AnalysisResult) {
	fmt.Printf("\n%s", r.Name)
	if r.Subtitle != "" {
		fmt.Printf(" - %s", r.Subtitle)
	}
	fmt.Printf(" (%s)\n", r.Type)

	for _, reason := range r.Reasons {
		fmt.Printf("  • %s\n", reason)
	}

	printColors("Makeup", r.MakeupColors, r.MakeupGuide)
	printColors("Fashion", r.FashionColors, r.FashionGuide)
}

func printColors(label string, colors []workflow.ColorItem, guide string) {
	if len(colors) == 0 && guide == "" {
		return
	}
	fmt.Printf("\n%s:\n", label)
	for _, c := range colors {
		fmt.Printf("  %-20s %s\n", c.Color, c.Hex)
	}
	if guide != "" {
		fmt.Printf("  %s\n", guide)
	}
}
