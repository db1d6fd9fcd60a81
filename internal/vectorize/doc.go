// Package vectorize turns pixel regions and edge contours into SVG path
// geometry.
//
// The stages compose left to right: TraceMask walks region boundaries with
// Moore neighbor following, Simplify reduces point counts with
// Douglas-Peucker, FitWindows optionally replaces line runs with Bezier
// windows, and FromContour assembles the final absolute M/L/C/Q/Z path-data
// string with its complexity score.
//
// All stages are pure functions over their inputs; nothing here allocates
// shared state, performs I/O, or depends on iteration randomness.
package vectorize
