// Package quantize reduces an image's colors to a bounded palette and remaps
// pixels onto it.
//
// Three extraction strategies are provided:
//
//   - ExtractPalette: frequency counting over 8-step RGB buckets. Fast and
//     fully deterministic; suited to flat-color graphics.
//   - KMeans: Lloyd's clustering with deterministic stride seeding; suited to
//     photographic content where representative colors matter more than
//     exact ones.
//   - MedianCut: recursive longest-axis splitting; suited to line art where
//     preserving distinct ink colors matters.
//
// Mapping (Map/MapLuma/DitherFloydSteinberg) always preserves the source
// alpha channel and never fails: degenerate inputs (empty palette,
// single-color image) degrade to valid results rather than errors.
package quantize
