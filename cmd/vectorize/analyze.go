package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/vectorize-mcp/internal/analyze"
	"github.com/ironsheep/vectorize-mcp/internal/raster"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Recommend a vectorization strategy for an image",
		Long: `Analyze measures an image's color and edge characteristics and recommends
the vectorization strategy best suited to it, with a confidence score and
ranked alternatives.

Examples:
  # Human-readable recommendation
  vectorize analyze logo.png

  # Machine-readable output
  vectorize analyze --json photo.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output the recommendation as JSON")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	img, err := raster.NewCache().Load(args[0])
	if err != nil {
		return err
	}

	rec := analyze.Recommend(img)

	out := cmd.OutOrStdout()
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rec)
	}

	fmt.Fprintf(out, "Recommended algorithm: %s (confidence %.0f%%)\n\n", rec.Algorithm, rec.Confidence*100)
	fmt.Fprintf(out, "Image characteristics:\n")
	fmt.Fprintf(out, "  unique colors:        %d\n", rec.Analysis.UniqueColors)
	fmt.Fprintf(out, "  monochromatic ratio:  %.2f\n", rec.Analysis.MonochromaticRatio)
	fmt.Fprintf(out, "  edge density:         %.2f\n", rec.Analysis.EdgeDensity)
	fmt.Fprintf(out, "  sharp edge ratio:     %.2f\n", rec.Analysis.SharpEdgeRatio)
	fmt.Fprintf(out, "  contrast level:       %.2f\n", rec.Analysis.ContrastLevel)
	fmt.Fprintf(out, "  has transparency:     %t\n", rec.Analysis.HasTransparency)

	if len(rec.Alternatives) > 0 {
		fmt.Fprintf(out, "\nAlternatives:\n")
		for _, alt := range rec.Alternatives {
			fmt.Fprintf(out, "  %-8s %s\n", alt.Algorithm, alt.Justification)
		}
	}

	return nil
}
