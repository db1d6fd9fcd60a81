// Package raster defines the engine's input representation: a fixed-size
// RGBA8 pixel grid with a row-major buffer, plus the bridge to and from the
// standard library's image.Image and a thread-safe file loader/cache.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner.
// X increases rightward and Y increases downward. The pixel at (x, y) starts
// at buffer offset (y*Width+x)*4.
//
// # Immutability
//
// Pipeline stages treat Image values as immutable inputs: each stage reads
// its input and returns new data. The Set/Fill helpers exist for building
// inputs (tests, preprocessing copies), not for mutating an image that has
// entered the pipeline.
//
// # Error Handling
//
// Malformed images (non-positive dimensions, buffer length mismatch) are the
// fatal input class: Validate returns an error wrapping ErrInvalidImage and
// callers are expected to fail fast rather than retry.
package raster
