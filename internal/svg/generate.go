// Package svg assembles vector paths into an SVG document and validates
// SVG output against the path-command grammar.
package svg

import (
	"fmt"
	"strings"

	"github.com/ironsheep/vectorize-mcp/internal/raster"
	"github.com/ironsheep/vectorize-mcp/internal/vectorize"
)

// Namespace is the SVG XML namespace.
const Namespace = "http://www.w3.org/2000/svg"

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`

// Options controls document assembly.
type Options struct {
	// Precision is the number of decimal places for coordinates. Negative
	// emits the shortest exact representation.
	Precision int

	// Optimize strips zero-length line commands and merges same-color
	// sibling paths into a single path element per group.
	Optimize bool
}

// Stats summarizes a generated document.
type Stats struct {
	// OriginalSize is the raster size in bytes (width*height*4).
	OriginalSize int `json:"original_size"`

	// VectorSize is the byte length of the SVG content.
	VectorSize int `json:"vector_size"`

	// ColorCount is the number of fill groups in the document; stroke
	// overlay groups do not count.
	ColorCount int `json:"color_count"`

	// PathCount is the number of input paths.
	PathCount int `json:"path_count"`
}

// paintKey identifies a group: paths sharing fill and stroke render as
// siblings under one g element.
type paintKey struct {
	fill        string
	stroke      string
	strokeWidth float64
}

// paintGroup collects the path data of every path sharing one paint key,
// in first-seen order.
type paintGroup struct {
	paintKey
	opacity float64
	data    []string
}

// Generate assembles paths into a complete SVG document.
//
// Paths are grouped by exact fill and stroke, groups appearing in the order
// their paint is first seen. Stroked paths emit stroke and stroke-width
// attributes on their group. Coordinates are re-emitted at
// Options.Precision. With Options.Optimize set, zero-length absolute line
// commands are dropped and each group's paths are concatenated into one
// path element.
//
// An empty path slice yields a well-formed empty document with zero counts.
// Dimension errors wrap raster.ErrInvalidImage; unparseable path data is a
// programming error and fails immediately.
func Generate(paths []vectorize.Path, width, height int, opts Options) (string, Stats, error) {
	if width <= 0 || height <= 0 {
		return "", Stats{}, fmt.Errorf("%w: dimensions %dx%d", raster.ErrInvalidImage, width, height)
	}

	var groups []*paintGroup
	byPaint := make(map[paintKey]*paintGroup)

	for i, p := range paths {
		if p.Data == "" {
			continue
		}
		data, err := reformatPath(p.Data, opts)
		if err != nil {
			return "", Stats{}, fmt.Errorf("path %d: %w", i, err)
		}
		if data == "" {
			continue
		}

		key := paintKey{fill: p.Fill, stroke: p.Stroke, strokeWidth: p.StrokeWidth}
		g, ok := byPaint[key]
		if !ok {
			g = &paintGroup{paintKey: key, opacity: p.FillOpacity}
			byPaint[key] = g
			groups = append(groups, g)
		}
		g.data = append(g.data, data)
	}

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString("\n")
	fmt.Fprintf(&b, `<svg xmlns=%q width="%d" height="%d" viewBox="0 0 %d %d">`, Namespace, width, height, width, height)
	b.WriteString("\n")

	fillCount := 0
	for _, g := range groups {
		fmt.Fprintf(&b, `<g fill=%q`, g.fill)
		if g.opacity > 0 && g.opacity < 1 {
			fmt.Fprintf(&b, ` fill-opacity=%q`, vectorize.FormatCoord(g.opacity, 3))
		}
		if g.stroke != "" {
			fmt.Fprintf(&b, ` stroke=%q stroke-width=%q`, g.stroke, vectorize.FormatCoord(g.strokeWidth, 3))
		} else {
			fillCount++
		}
		b.WriteString(">\n")

		if opts.Optimize {
			// Sibling merge: one path element per color group.
			fmt.Fprintf(&b, `<path d=%q/>`, strings.Join(g.data, " "))
			b.WriteString("\n")
		} else {
			for _, d := range g.data {
				fmt.Fprintf(&b, `<path d=%q/>`, d)
				b.WriteString("\n")
			}
		}
		b.WriteString("</g>\n")
	}
	b.WriteString("</svg>\n")

	content := b.String()
	return content, Stats{
		OriginalSize: width * height * 4,
		VectorSize:   len(content),
		ColorCount:   fillCount,
		PathCount:    len(paths),
	}, nil
}

// reformatPath re-emits path data at the configured precision, optionally
// dropping zero-length absolute line segments.
func reformatPath(d string, opts Options) (string, error) {
	cmds, err := ParsePath(d)
	if err != nil {
		return "", err
	}

	var parts []string
	var cur, subpathStart [2]float64
	havePos := false

	for _, cmd := range cmds {
		out := cmd
		switch cmd.Letter {
		case 'M':
			cur = [2]float64{cmd.Args[len(cmd.Args)-2], cmd.Args[len(cmd.Args)-1]}
			subpathStart = [2]float64{cmd.Args[0], cmd.Args[1]}
			havePos = true
		case 'L':
			if opts.Optimize && havePos {
				args := make([]float64, 0, len(cmd.Args))
				for i := 0; i+1 < len(cmd.Args); i += 2 {
					x, y := cmd.Args[i], cmd.Args[i+1]
					if x == cur[0] && y == cur[1] {
						continue
					}
					args = append(args, x, y)
					cur = [2]float64{x, y}
				}
				if len(args) == 0 {
					continue
				}
				out.Args = args
			} else if len(cmd.Args) >= 2 {
				cur = [2]float64{cmd.Args[len(cmd.Args)-2], cmd.Args[len(cmd.Args)-1]}
			}
		case 'C', 'Q', 'S', 'T', 'A':
			cur = [2]float64{cmd.Args[len(cmd.Args)-2], cmd.Args[len(cmd.Args)-1]}
		case 'Z', 'z':
			cur = subpathStart
		default:
			// Relative and axis-aligned forms pass through untouched;
			// current-point tracking stops being exact but the engine
			// never emits them.
			havePos = false
		}
		parts = append(parts, out.String(opts.Precision))
	}
	return strings.Join(parts, " "), nil
}
