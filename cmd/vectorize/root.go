package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for vectorize.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vectorize",
		Short: "Convert raster images to SVG",
		Long: `Vectorize converts raster images (PNG, JPEG, GIF, BMP, TIFF, WebP) into
SVG documents. It quantizes colors, detects edges, traces region contours,
and assembles the result into scalable vector paths.

Three processing strategies are available: shapes (flat-color graphics),
photo (continuous-tone images), and lineart (sketches and line drawings).
By default the strategy is selected automatically from image analysis.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewConvertCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
