// Package edge computes gradient fields over a raster image and groups edge
// pixels into contours.
//
// Two detectors are provided. Sobel is a single thresholded gradient pass,
// cheap and predictable, suited to flat-color shapes and line art. Canny
// adds Gaussian smoothing, non-maximum suppression, and hysteresis
// thresholding, producing thin connected edges on noisy photographic input.
//
// Both detectors are fully deterministic. Magnitudes are computed on
// luminance normalized to 0-1, so thresholds are resolution-independent
// values in roughly [0, 1] (the theoretical Sobel maximum is 4*sqrt(2)).
//
// # Cancellation
//
// Canny accepts a context and polls it between row sweeps. A cancelled run
// returns the structurally valid map built so far rather than an error;
// callers that need completeness should check ctx.Err() themselves.
package edge
