package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/ironsheep/vectorize-mcp/internal/analyze"
	"github.com/ironsheep/vectorize-mcp/internal/config"
	"github.com/ironsheep/vectorize-mcp/internal/edge"
	"github.com/ironsheep/vectorize-mcp/internal/quantize"
	"github.com/ironsheep/vectorize-mcp/internal/raster"
	"github.com/ironsheep/vectorize-mcp/internal/svg"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "vectorize_image", "analyze_image").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(context.Background(), params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls into the engine, analyze, quantize, edge, or svg package
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "vectorize_image":
		return s.handleVectorizeImage(ctx, args)
	case "analyze_image":
		return s.handleAnalyzeImage(args)
	case "extract_palette":
		return s.handleExtractPalette(ctx, args)
	case "detect_edges":
		return s.handleDetectEdges(ctx, args)
	case "validate_svg":
		return s.handleValidateSVG(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Vectorization Handlers ===

type vectorizeImageArgs struct {
	Path                 string  `json:"path"`
	OutputPath           string  `json:"output_path"`
	Algorithm            string  `json:"algorithm"`
	ColorCount           int     `json:"color_count"`
	SmoothingLevel       string  `json:"smoothing_level"`
	PathSimplification   float64 `json:"path_simplification"`
	PreserveTransparency bool    `json:"preserve_transparency"`
	Precision            int     `json:"precision"`
	MaxDimension         int     `json:"max_dimension"`
}

// VectorizeImageResult is the vectorize_image tool response.
type VectorizeImageResult struct {
	// SVGContent is the generated document. Empty when OutputPath was
	// requested and the document was written to disk instead.
	SVGContent string `json:"svg_content,omitempty"`

	// OutputPath is the file the document was written to, if any.
	OutputPath string `json:"output_path,omitempty"`

	// Algorithm is the strategy that actually ran (never "auto").
	Algorithm analyze.Algorithm `json:"algorithm"`

	// OriginalSize is the raster size in bytes, VectorSize the SVG size.
	OriginalSize int `json:"original_size"`
	VectorSize   int `json:"vector_size"`

	// ColorCount is the number of fill groups, PathCount the number of
	// emitted paths.
	ColorCount int `json:"color_count"`
	PathCount  int `json:"path_count"`

	ProcessingTimeMs int64 `json:"processing_time_ms"`

	// Palette lists the quantized colors as hex strings, heaviest first.
	Palette []string `json:"palette"`
}

func (s *Server) handleVectorizeImage(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a vectorizeImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img, err := s.loadImage(a.Path, a.MaxDimension)
	if err != nil {
		return nil, err
	}

	// Tool arguments are a lenient surface: unset fields get defaults,
	// out-of-range numbers clamp.
	cfg := config.Vectorization{
		ColorCount:           a.ColorCount,
		SmoothingLevel:       config.SmoothingLevel(a.SmoothingLevel),
		PathSimplification:   a.PathSimplification,
		PreserveTransparency: a.PreserveTransparency,
		Algorithm:            a.Algorithm,
		Precision:            a.Precision,
	}.Normalize()

	res, err := s.engine.Vectorize(ctx, img, cfg)
	if err != nil {
		return nil, err
	}

	out := &VectorizeImageResult{
		Algorithm:        res.Algorithm,
		OriginalSize:     res.OriginalSize,
		VectorSize:       res.VectorSize,
		ColorCount:       res.ColorCount,
		PathCount:        res.PathCount,
		ProcessingTimeMs: res.ProcessingTimeMs,
		Palette:          paletteHex(res.Palette),
	}

	if a.OutputPath != "" {
		if err := os.WriteFile(a.OutputPath, []byte(res.SVGContent), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", a.OutputPath, err)
		}
		out.OutputPath = a.OutputPath
	} else {
		out.SVGContent = res.SVGContent
	}

	return out, nil
}

type analyzeImageArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleAnalyzeImage(args json.RawMessage) (interface{}, error) {
	var a analyzeImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return analyze.Recommend(img), nil
}

// === Palette Handler ===

type extractPaletteArgs struct {
	Path   string `json:"path"`
	Count  int    `json:"count"`
	Method string `json:"method"`
}

// PaletteColor is one palette entry in an extract_palette response.
type PaletteColor struct {
	Hex    string  `json:"hex"`
	R      uint8   `json:"r"`
	G      uint8   `json:"g"`
	B      uint8   `json:"b"`
	A      uint8   `json:"a"`
	Weight float64 `json:"weight"`
}

// ExtractPaletteResult is the extract_palette tool response.
type ExtractPaletteResult struct {
	Method string         `json:"method"`
	Count  int            `json:"count"`
	Colors []PaletteColor `json:"colors"`
}

func (s *Server) handleExtractPalette(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a extractPaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count <= 0 {
		a.Count = config.DefaultColorCount
	}
	if a.Method == "" {
		a.Method = "frequency"
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var pal quantize.Palette
	switch a.Method {
	case "frequency":
		pal = quantize.ExtractPalette(img, a.Count)
	case "mediancut":
		pal = quantize.MedianCut(img, a.Count)
	case "kmeans":
		pal = quantize.KMeans(ctx, img, a.Count, 10)
	default:
		return nil, fmt.Errorf("unknown palette method: %s", a.Method)
	}

	result := &ExtractPaletteResult{
		Method: a.Method,
		Count:  pal.Len(),
		Colors: make([]PaletteColor, 0, pal.Len()),
	}
	for _, e := range pal.Colors {
		result.Colors = append(result.Colors, PaletteColor{
			Hex:    e.Hex(),
			R:      e.R,
			G:      e.G,
			B:      e.B,
			A:      e.A,
			Weight: e.Weight,
		})
	}
	return result, nil
}

// === Edge Detection Handler ===

type detectEdgesArgs struct {
	Path          string  `json:"path"`
	Algorithm     string  `json:"algorithm"`
	Threshold     float64 `json:"threshold"`
	ThresholdLow  float64 `json:"threshold_low"`
	ThresholdHigh float64 `json:"threshold_high"`
	KernelSize    int     `json:"kernel_size"`
}

// DetectEdgesResult contains an edge map rendered as base64 PNG.
//
// The rendered image is grayscale: white pixels (255) are detected edges,
// black pixels (0) are non-edges.
type DetectEdgesResult struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Algorithm string `json:"algorithm"`

	// EdgeCount is the number of edge pixels, Density their fraction of
	// the image.
	EdgeCount int     `json:"edge_count"`
	Density   float64 `json:"density"`

	// ImageBase64 is the edge image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

func (s *Server) handleDetectEdges(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a detectEdgesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Algorithm == "" {
		a.Algorithm = "sobel"
	}
	if a.Threshold == 0 {
		a.Threshold = 0.3
	}
	if a.ThresholdLow == 0 {
		a.ThresholdLow = 0.1
	}
	if a.ThresholdHigh == 0 {
		a.ThresholdHigh = 0.2
	}
	if a.KernelSize == 0 {
		a.KernelSize = 3
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var m *edge.Map
	switch a.Algorithm {
	case "sobel":
		m = edge.Sobel(img, a.Threshold)
	case "canny":
		m = edge.Canny(ctx, img, a.ThresholdLow, a.ThresholdHigh, a.KernelSize)
	default:
		return nil, fmt.Errorf("unknown edge algorithm: %s", a.Algorithm)
	}

	encoded, err := renderEdgeMap(m)
	if err != nil {
		return nil, err
	}

	return &DetectEdgesResult{
		Width:       m.Width,
		Height:      m.Height,
		Algorithm:   m.Algorithm,
		EdgeCount:   m.EdgeCount(),
		Density:     m.Density(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// renderEdgeMap draws the map as a binary grayscale PNG, edges in white.
func renderEdgeMap(m *edge.Map) (string, error) {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) > 0 {
				img.SetGray(x, y, color.Gray{255})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode edge image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// === SVG Validation Handler ===

type validateSVGArgs struct {
	Content string `json:"content"`
}

// ValidateSVGResult is the validate_svg tool response.
type ValidateSVGResult struct {
	Valid  bool                  `json:"valid"`
	Issues []svg.ValidationIssue `json:"issues"`
}

func (s *Server) handleValidateSVG(args json.RawMessage) (interface{}, error) {
	var a validateSVGArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	issues := svg.Validate(a.Content)
	return &ValidateSVGResult{
		Valid:  len(issues) == 0,
		Issues: issues,
	}, nil
}

// loadImage loads an image through the cache, optionally capping its longer
// side at maxDim.
func (s *Server) loadImage(path string, maxDim int) (*raster.Image, error) {
	if maxDim > 0 {
		return s.cache.LoadResized(path, maxDim)
	}
	return s.cache.Load(path)
}

func paletteHex(p quantize.Palette) []string {
	hexes := make([]string, 0, p.Len())
	for _, e := range p.Colors {
		hexes = append(hexes, e.Hex())
	}
	return hexes
}
