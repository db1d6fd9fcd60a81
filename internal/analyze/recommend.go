package analyze

import (
	"github.com/ironsheep/vectorize-mcp/internal/raster"
)

// Alternative is a non-recommended algorithm with a short justification.
type Alternative struct {
	Algorithm     Algorithm `json:"algorithm"`
	Justification string    `json:"justification"`
}

// Recommendation is the selector's full answer: the chosen algorithm, a
// confidence score, the analysis snapshot it was based on, and up to two
// ranked alternatives.
type Recommendation struct {
	Algorithm    Algorithm       `json:"algorithm"`
	Confidence   float64         `json:"confidence"`
	Analysis     Characteristics `json:"analysis"`
	Alternatives []Alternative   `json:"alternatives"`
}

// Recommend analyzes the image and ranks algorithms for it.
//
// Confidence comes from a fixed table: 0.9 for a line-art match, 0.8 for a
// shapes match, 0.7 for a photo classification backed by a clearly
// continuous-tone image (more than 32 bucketed colors), and 0.5 for photo
// as a weak fallback. Alternatives exclude the recommended algorithm and
// are capped at two.
func Recommend(img *raster.Image) Recommendation {
	ch := Analyze(img)
	selected := Select(ch)

	rec := Recommendation{
		Algorithm: selected,
		Analysis:  ch,
	}

	switch selected {
	case AlgorithmLineArt:
		rec.Confidence = 0.9
	case AlgorithmShapes:
		rec.Confidence = 0.8
	default:
		if ch.UniqueColors > 32 {
			rec.Confidence = 0.7
		} else {
			rec.Confidence = 0.5
		}
	}

	rec.Alternatives = alternatives(selected, ch)
	return rec
}

// alternatives ranks the two next-best algorithms for the snapshot.
func alternatives(selected Algorithm, ch Characteristics) []Alternative {
	candidates := []Alternative{
		{
			Algorithm:     AlgorithmShapes,
			Justification: "few flat colors with hard boundaries suit shape extraction",
		},
		{
			Algorithm:     AlgorithmLineArt,
			Justification: "near-monochrome strokes suit line tracing",
		},
		{
			Algorithm:     AlgorithmPhoto,
			Justification: "continuous tones suit clustered quantization with dithering",
		},
	}

	// Rough fitness per candidate so the better fallback ranks first.
	score := func(a Algorithm) float64 {
		switch a {
		case AlgorithmShapes:
			s := ch.SharpEdgeRatio + ch.ContrastLevel
			if ch.UniqueColors <= 16 {
				s += 0.5
			}
			return s
		case AlgorithmLineArt:
			s := ch.MonochromaticRatio + ch.ContrastLevel
			if ch.UniqueColors <= 32 {
				s += 0.5
			}
			return s
		default:
			s := 1.0 // photo always works
			if ch.UniqueColors > 32 {
				s += 1.0
			}
			return s
		}
	}

	out := make([]Alternative, 0, 2)
	// Selection by score, stable on the candidate order above.
	for len(out) < 2 {
		bestIdx := -1
		bestScore := -1.0
		for i, c := range candidates {
			if c.Algorithm == selected {
				continue
			}
			seen := false
			for _, o := range out {
				if o.Algorithm == c.Algorithm {
					seen = true
					break
				}
			}
			if seen {
				continue
			}
			if s := score(c.Algorithm); s > bestScore {
				bestScore = s
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		out = append(out, candidates[bestIdx])
	}
	return out
}
