// Package analyze classifies raster images into one of three processing
// strategies (shapes, photo, line art) from a cheap single-pass statistics
// snapshot.
//
// The edge-density measure here is intentionally simpler than the edge
// package's detectors: it is a one-sided luminance gradient probe with
// fixed 10/50 thresholds, good enough to separate flat graphics from
// continuous tone without paying for a blur or a suppression pass.
package analyze
