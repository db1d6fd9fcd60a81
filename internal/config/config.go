// Package config defines the vectorization request configuration, its
// defaults, validation, and YAML file loading.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values. These are the values used when a request
// leaves a field unset, chosen to give reasonable output across the three
// processing strategies.
const (
	// DefaultColorCount of 16 keeps the palette small enough for crisp
	// flat-color output while leaving the photo strategy enough entries
	// to approximate gradients.
	DefaultColorCount = 16

	// MinColorCount is 2 because a single-color palette produces one
	// filled rectangle and no usable vector structure.
	MinColorCount = 2

	// MaxColorCount caps the palette at 256 entries. Beyond that the SVG
	// grows faster than its visual quality.
	MaxColorCount = 256

	// DefaultPathSimplification is the Douglas-Peucker tolerance scale
	// applied on top of each strategy's base tolerance. 1.0 means use the
	// strategy defaults unchanged.
	DefaultPathSimplification = 1.0

	// MinPathSimplification and MaxPathSimplification bound the tolerance
	// scale. Values below 0.1 effectively disable simplification and
	// produce huge paths; values above 10 collapse most contours to
	// triangles.
	MinPathSimplification = 0.1
	MaxPathSimplification = 10.0

	// DefaultPrecision is the number of decimal places written for SVG
	// coordinates. Two decimals keep sub-pixel accuracy without bloating
	// path data.
	DefaultPrecision = 2

	// AppName is the application name used for XDG directory paths.
	AppName = "vectorize"
)

// SmoothingLevel controls how aggressively contours are smoothed before
// curve fitting.
type SmoothingLevel string

// Supported smoothing levels.
const (
	SmoothingLow    SmoothingLevel = "low"
	SmoothingMedium SmoothingLevel = "medium"
	SmoothingHigh   SmoothingLevel = "high"
)

// Valid reports whether s is a known smoothing level.
func (s SmoothingLevel) Valid() bool {
	switch s {
	case SmoothingLow, SmoothingMedium, SmoothingHigh:
		return true
	}
	return false
}

// ToleranceScale maps the smoothing level to a multiplier applied to each
// strategy's base simplification tolerance.
func (s SmoothingLevel) ToleranceScale() float64 {
	switch s {
	case SmoothingLow:
		return 0.5
	case SmoothingHigh:
		return 2.0
	default:
		return 1.0
	}
}

// Vectorization holds the per-request configuration for the pipeline.
//
// The struct is flat and passed by value through the engine; it is validated
// once per request at the engine boundary, never re-checked by inner stages.
type Vectorization struct {
	// ColorCount is the requested palette size, in [2, 256]. Strategies
	// may cap it further (shapes caps at 16, line art at 32).
	ColorCount int `yaml:"color_count" json:"color_count"`

	// SmoothingLevel scales contour simplification: low, medium, or high.
	SmoothingLevel SmoothingLevel `yaml:"smoothing_level" json:"smoothing_level"`

	// PathSimplification is a direct multiplier on the Douglas-Peucker
	// tolerance, in [0.1, 10.0]. It combines with SmoothingLevel.
	PathSimplification float64 `yaml:"path_simplification" json:"path_simplification"`

	// PreserveTransparency keeps the alpha channel of palette entries and
	// emits fill-opacity on paths whose color is not fully opaque.
	PreserveTransparency bool `yaml:"preserve_transparency" json:"preserve_transparency"`

	// Algorithm selects the processing strategy: auto, shapes, photo, or
	// lineart. Auto defers the choice to image analysis.
	Algorithm string `yaml:"algorithm" json:"algorithm"`

	// Precision is the number of decimal places for SVG coordinates.
	// Zero or negative means use DefaultPrecision.
	Precision int `yaml:"precision" json:"precision"`
}

// New returns a Vectorization populated with defaults.
func New() Vectorization {
	return Vectorization{
		ColorCount:         DefaultColorCount,
		SmoothingLevel:     SmoothingMedium,
		PathSimplification: DefaultPathSimplification,
		Algorithm:          "auto",
		Precision:          DefaultPrecision,
	}
}

// Validate checks every field against its documented range.
//
// It returns the first violation found, wrapping the package sentinel errors
// so callers can branch with errors.Is.
func (c Vectorization) Validate() error {
	if c.ColorCount < MinColorCount || c.ColorCount > MaxColorCount {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidColorCount, c.ColorCount, MinColorCount, MaxColorCount)
	}
	if !c.SmoothingLevel.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSmoothingLevel, c.SmoothingLevel)
	}
	if c.PathSimplification < MinPathSimplification || c.PathSimplification > MaxPathSimplification {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrInvalidPathSimplification, c.PathSimplification, MinPathSimplification, MaxPathSimplification)
	}
	switch c.Algorithm {
	case "auto", "shapes", "photo", "lineart":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAlgorithm, c.Algorithm)
	}
	return nil
}

// Normalize fills unset fields with defaults and clamps out-of-range numeric
// values to the nearest bound. Unlike Validate it never fails; it is meant
// for lenient surfaces (config files, tool arguments) where a slightly wrong
// value should degrade to a working one.
func (c Vectorization) Normalize() Vectorization {
	if c.ColorCount == 0 {
		c.ColorCount = DefaultColorCount
	} else if c.ColorCount < MinColorCount {
		c.ColorCount = MinColorCount
	} else if c.ColorCount > MaxColorCount {
		c.ColorCount = MaxColorCount
	}

	if c.SmoothingLevel == "" {
		c.SmoothingLevel = SmoothingMedium
	}

	if c.PathSimplification == 0 {
		c.PathSimplification = DefaultPathSimplification
	} else if c.PathSimplification < MinPathSimplification {
		c.PathSimplification = MinPathSimplification
	} else if c.PathSimplification > MaxPathSimplification {
		c.PathSimplification = MaxPathSimplification
	}

	if c.Algorithm == "" {
		c.Algorithm = "auto"
	}
	if c.Precision <= 0 {
		c.Precision = DefaultPrecision
	}
	return c
}

// XDGConfigDir returns the XDG configuration directory for the tool.
// On Linux this is ~/.config/vectorize.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
