// Package main provides the entry point for the vectorize CLI.
//
// Vectorize converts raster images (PNG, JPEG, GIF, BMP, TIFF, WebP) into
// SVG documents through color quantization, edge detection, and contour
// tracing.
//
// Usage:
//
//	vectorize convert <image> [more images...]
//	vectorize analyze <image>
//
// See --help for all available options.
package main

// main is the entry point for vectorize.
func main() {
	Execute()
}
