package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/vectorize-mcp/internal/config"
	"github.com/ironsheep/vectorize-mcp/internal/engine"
	"github.com/ironsheep/vectorize-mcp/internal/raster"
)

// defaultConcurrency is the number of images converted in parallel.
const defaultConcurrency = 4

// convertConfig carries the resolved convert command settings.
type convertConfig struct {
	targets      []string
	outputDir    string
	maxDimension int
	concurrency  int
	vect         config.Vectorization
}

// NewConvertCmd creates the convert command.
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [image...]",
		Short: "Convert raster images to SVG files",
		Long: `Convert runs the full vectorization pipeline on one or more raster images
and writes an .svg file next to each input (or into --output).

Multiple inputs are converted concurrently; --batch bounds the parallelism.

Examples:
  # Convert a single image
  vectorize convert logo.png

  # Convert several images into a directory
  vectorize convert -o out/ a.png b.jpg c.gif

  # Force the photo strategy with a larger palette
  vectorize convert --algorithm photo --colors 64 portrait.jpg

  # Use a configuration file
  vectorize convert -c vectorize.yaml diagram.png

Configuration file (vectorize.yaml) example:
  defaults:
    color_count: 32
    smoothing_level: high
    algorithm: auto
  max_dimension: 2048`,
		Args: cobra.ArbitraryArgs,
		RunE: runConvertCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Output directory for SVG files (default: alongside each input)")
	cmd.Flags().StringP("algorithm", "a", "auto",
		"Processing strategy: auto, shapes, photo, or lineart")
	cmd.Flags().IntP("colors", "n", config.DefaultColorCount,
		"Palette size (2-256)")
	cmd.Flags().StringP("smoothing", "s", string(config.SmoothingMedium),
		"Contour smoothing level: low, medium, or high")
	cmd.Flags().Float64("simplify", config.DefaultPathSimplification,
		"Path simplification tolerance multiplier (0.1-10.0)")
	cmd.Flags().Bool("preserve-transparency", false,
		"Emit fill-opacity for translucent palette colors")
	cmd.Flags().Int("precision", config.DefaultPrecision,
		"Decimal places for SVG coordinates")
	cmd.Flags().Int("max-dimension", 0,
		"Downscale inputs whose longer side exceeds this (0 disables)")
	cmd.Flags().IntP("batch", "b", defaultConcurrency,
		"Number of concurrent conversions")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: vectorize.yaml in current or XDG config directory)")

	return cmd
}

// runConvertCmd executes the convert command.
func runConvertCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConvertConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.vect.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	verbose := getVerboseFlag(cmd)
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runConvert(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConvertConfig creates a convertConfig from cobra command flags.
//
// A configuration file, when present, supplies the baseline settings;
// explicitly set flags override it.
func buildConvertConfig(cmd *cobra.Command, args []string) (*convertConfig, error) {
	cfg := &convertConfig{
		targets: args,
		vect:    config.New(),
	}

	configPathFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not
	// found. If no path specified, silently run with defaults.
	configPath := config.FindFile(configPathFlag)
	if configPath != "" {
		cf, err := config.LoadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.vect = cf.Defaults
		cfg.maxDimension = cf.MaxDimension
	} else if configPathFlag != "" {
		return nil, fmt.Errorf("configuration file not found: %s", configPathFlag)
	}

	if cmd.Flags().Changed("algorithm") || configPath == "" {
		cfg.vect.Algorithm, err = cmd.Flags().GetString("algorithm")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("colors") || configPath == "" {
		cfg.vect.ColorCount, err = cmd.Flags().GetInt("colors")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("smoothing") || configPath == "" {
		smoothing, err := cmd.Flags().GetString("smoothing")
		if err != nil {
			return nil, err
		}
		cfg.vect.SmoothingLevel = config.SmoothingLevel(smoothing)
	}
	if cmd.Flags().Changed("simplify") || configPath == "" {
		cfg.vect.PathSimplification, err = cmd.Flags().GetFloat64("simplify")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("preserve-transparency") || configPath == "" {
		cfg.vect.PreserveTransparency, err = cmd.Flags().GetBool("preserve-transparency")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("precision") || configPath == "" {
		cfg.vect.Precision, err = cmd.Flags().GetInt("precision")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-dimension") {
		cfg.maxDimension, err = cmd.Flags().GetInt("max-dimension")
		if err != nil {
			return nil, err
		}
	}

	cfg.outputDir, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.concurrency, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}
	if cfg.concurrency < 1 {
		cfg.concurrency = 1
	}

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

// runConvert converts every target, bounded-parallel.
func runConvert(ctx context.Context, cfg *convertConfig, logger *slog.Logger) error {
	if len(cfg.targets) == 0 {
		return errors.New("no inputs provided (specify one or more image files as arguments)")
	}

	if cfg.outputDir != "" {
		if err := os.MkdirAll(cfg.outputDir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	logger.Info("starting conversion",
		"inputs", len(cfg.targets),
		"algorithm", cfg.vect.Algorithm,
		"concurrency", cfg.concurrency,
	)

	cache := raster.NewCache()
	eng := engine.New(engine.WithLogger(logger))
	startTime := time.Now()

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)

	for _, target := range cfg.targets {
		target := target
		g.Go(func() error {
			outPath, res, err := convertOne(ctx, cache, eng, cfg, target)
			if err != nil {
				return fmt.Errorf("%s: %w", target, err)
			}

			mu.Lock()
			defer mu.Unlock()
			fmt.Printf("%s -> %s (%s, %d paths, %d colors, %s)\n",
				target, outPath, res.Algorithm, res.PathCount, res.ColorCount,
				time.Duration(res.ProcessingTimeMs)*time.Millisecond)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("\nConverted %d image(s) in %s\n",
		len(cfg.targets), time.Since(startTime).Round(time.Millisecond))
	return nil
}

// convertOne vectorizes a single file and writes the SVG document.
func convertOne(ctx context.Context, cache *raster.Cache, eng *engine.Engine, cfg *convertConfig, target string) (string, *engine.Result, error) {
	var img *raster.Image
	var err error
	if cfg.maxDimension > 0 {
		img, err = cache.LoadResized(target, cfg.maxDimension)
	} else {
		img, err = cache.Load(target)
	}
	if err != nil {
		return "", nil, err
	}

	res, err := eng.Vectorize(ctx, img, cfg.vect)
	if err != nil {
		return "", nil, err
	}

	outPath := outputPath(cfg.outputDir, target)
	if err := os.WriteFile(outPath, []byte(res.SVGContent), 0o644); err != nil {
		return "", nil, fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return outPath, res, nil
}

// outputPath derives the SVG file path for an input image.
func outputPath(outputDir, target string) string {
	base := filepath.Base(target)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".svg"
	if outputDir != "" {
		return filepath.Join(outputDir, base)
	}
	return filepath.Join(filepath.Dir(target), base)
}
