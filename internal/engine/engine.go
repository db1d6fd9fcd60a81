// Package engine orchestrates the vectorization pipeline: input validation,
// algorithm selection, strategy execution, and SVG assembly.
//
// The engine performs no I/O and owns no scheduling. Each Vectorize call is
// sequential and pure, so callers can run one engine across many goroutines
// or one pipeline per image, whichever fits their workload.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ironsheep/vectorize-mcp/internal/analyze"
	"github.com/ironsheep/vectorize-mcp/internal/config"
	"github.com/ironsheep/vectorize-mcp/internal/edge"
	"github.com/ironsheep/vectorize-mcp/internal/quantize"
	"github.com/ironsheep/vectorize-mcp/internal/raster"
	"github.com/ironsheep/vectorize-mcp/internal/strategy"
	"github.com/ironsheep/vectorize-mcp/internal/svg"
	"github.com/ironsheep/vectorize-mcp/internal/vectorize"
)

// Engine runs vectorization requests.
type Engine struct {
	logger   *slog.Logger
	progress strategy.ProgressFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger. If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithProgress registers a callback invoked at each completed pipeline
// stage (quantize, edges, vectorize). The callback runs on the pipeline
// goroutine and must return quickly.
func WithProgress(fn strategy.ProgressFunc) Option {
	return func(e *Engine) {
		e.progress = fn
	}
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// OutputError reports a generated document that failed validation. It
// carries the full issue list rather than the first failure.
type OutputError struct {
	Issues []svg.ValidationIssue
}

// Error implements the error interface.
func (e *OutputError) Error() string {
	return fmt.Sprintf("generated SVG failed validation with %d issue(s): %v", len(e.Issues), e.Issues)
}

// Result is the complete outcome of one vectorization run, including the
// intermediates a caller needs for progress display or recovery (switching
// algorithms without re-quantizing, for example).
type Result struct {
	// SVGContent is the final document.
	SVGContent string `json:"svg_content"`

	// OriginalSize is the raster size in bytes.
	OriginalSize int `json:"original_size"`

	// VectorSize is the SVG size in bytes.
	VectorSize int `json:"vector_size"`

	// ColorCount is the number of fill groups in the document.
	ColorCount int `json:"color_count"`

	// PathCount is the number of emitted paths.
	PathCount int `json:"path_count"`

	// ProcessingTimeMs is the wall-clock duration of the run.
	ProcessingTimeMs int64 `json:"processing_time_ms"`

	// Algorithm is the strategy that ran (never "auto").
	Algorithm analyze.Algorithm `json:"algorithm"`

	// Palette is the quantized palette.
	Palette quantize.Palette `json:"palette"`

	// Edges is the tuned edge map intermediate.
	Edges *edge.Map `json:"-"`

	// Paths are the emitted vector paths.
	Paths []vectorize.Path `json:"paths"`
}

// Vectorize runs the full pipeline on one image.
//
// The image and configuration are validated once at this boundary; inner
// stages never re-check. Auto algorithm selection resolves through image
// analysis before the strategy runs. A cancelled context degrades to a
// valid result built from whatever the strategy completed; it is not an
// error. An output document that fails validation returns *OutputError.
func (e *Engine) Vectorize(ctx context.Context, img *raster.Image, cfg config.Vectorization) (*Result, error) {
	start := time.Now()

	if err := img.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	cfg = cfg.Normalize()

	alg := analyze.Algorithm(cfg.Algorithm)
	if alg == analyze.AlgorithmAuto {
		rec := analyze.Recommend(img)
		alg = rec.Algorithm
		e.logger.Debug("algorithm selected",
			slog.String("algorithm", string(alg)),
			slog.Float64("confidence", rec.Confidence))
	}

	if e.progress != nil {
		ctx = strategy.WithProgress(ctx, e.progress)
	}

	res := strategy.ForAlgorithm(alg).Process(ctx, img, cfg)
	e.logger.Debug("strategy complete",
		slog.String("algorithm", string(alg)),
		slog.Int("palette_size", res.Palette.Len()),
		slog.Int("paths", len(res.Paths)))

	content, stats, err := svg.Generate(res.Paths, img.Width, img.Height, svg.Options{
		Precision: cfg.Precision,
		Optimize:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("svg assembly: %w", err)
	}
	if issues := svg.Validate(content); len(issues) > 0 {
		return nil, &OutputError{Issues: issues}
	}

	elapsed := time.Since(start).Milliseconds()
	e.logger.Info("vectorization complete",
		slog.String("algorithm", string(alg)),
		slog.Int("path_count", stats.PathCount),
		slog.Int("vector_size", stats.VectorSize),
		slog.Int64("elapsed_ms", elapsed))

	return &Result{
		SVGContent:       content,
		OriginalSize:     stats.OriginalSize,
		VectorSize:       stats.VectorSize,
		ColorCount:       stats.ColorCount,
		PathCount:        stats.PathCount,
		ProcessingTimeMs: elapsed,
		Algorithm:        alg,
		Palette:          res.Palette,
		Edges:            res.Edges,
		Paths:            res.Paths,
	}, nil
}
