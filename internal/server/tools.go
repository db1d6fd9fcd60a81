package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "vectorize_image",
			Description: "Convert a raster image to SVG. Quantizes colors, detects edges, traces region contours, and assembles an SVG document. Returns the SVG content together with size and path statistics.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to write the SVG document to. When set, svg_content is omitted from the response.",
					},
					"algorithm": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"auto", "shapes", "photo", "lineart"},
						"description": "Processing strategy. Default auto (selected from image analysis).",
						"default":     "auto",
					},
					"color_count": map[string]interface{}{
						"type":        "integer",
						"description": "Palette size, 2-256. Default 16.",
						"default":     16,
					},
					"smoothing_level": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"low", "medium", "high"},
						"description": "Contour smoothing level. Default medium.",
						"default":     "medium",
					},
					"path_simplification": map[string]interface{}{
						"type":        "number",
						"description": "Simplification tolerance multiplier, 0.1-10.0. Default 1.0.",
						"default":     1.0,
					},
					"preserve_transparency": map[string]interface{}{
						"type":        "boolean",
						"description": "Emit fill-opacity for translucent palette colors. Default false.",
						"default":     false,
					},
					"precision": map[string]interface{}{
						"type":        "integer",
						"description": "Decimal places for SVG coordinates. Default 2.",
						"default":     2,
					},
					"max_dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Optional limit on the longer image side; larger inputs are downscaled before processing.",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "analyze_image",
			Description: "Analyze an image and recommend a vectorization algorithm. Returns the recommended algorithm with a confidence score, the measured image characteristics, and up to two ranked alternatives.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "extract_palette",
			Description: "Extract a color palette from an image. Returns palette entries as hex colors with pixel-coverage weights, heaviest first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of palette entries. Default 16.",
						"default":     16,
					},
					"method": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"frequency", "mediancut", "kmeans"},
						"description": "Quantization method. Default frequency.",
						"default":     "frequency",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "detect_edges",
			Description: "Run edge detection on an image and return the edge map as a base64-encoded grayscale PNG, with edge count and density statistics.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"algorithm": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"sobel", "canny"},
						"description": "Edge detector. Default sobel.",
						"default":     "sobel",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Sobel magnitude threshold, 0-1. Default 0.3.",
						"default":     0.3,
					},
					"threshold_low": map[string]interface{}{
						"type":        "number",
						"description": "Canny low hysteresis threshold, 0-1. Default 0.1.",
						"default":     0.1,
					},
					"threshold_high": map[string]interface{}{
						"type":        "number",
						"description": "Canny high hysteresis threshold, 0-1. Default 0.2.",
						"default":     0.2,
					},
					"kernel_size": map[string]interface{}{
						"type":        "integer",
						"description": "Canny Gaussian blur kernel size (odd). Default 3.",
						"default":     3,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "validate_svg",
			Description: "Validate an SVG document: well-formed XML, svg root element in the SVG namespace, and parseable path data. Returns a list of issues, empty when the document is valid.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"content": map[string]interface{}{
						"type":        "string",
						"description": "The SVG document content to validate",
					},
				},
				"required": []string{"content"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
