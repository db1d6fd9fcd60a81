// Package server implements the MCP (Model Context Protocol) server for the
// vectorization engine.
//
// This package provides a JSON-RPC 2.0 server that exposes raster-to-SVG
// conversion through the MCP protocol. It's designed to work with Claude and
// other MCP-compatible clients, enabling AI systems to vectorize and inspect
// images.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - vectorize_image: Full pipeline, raster file to SVG document plus stats
//   - analyze_image: Algorithm recommendation with confidence and alternatives
//   - extract_palette: Color palette by frequency, median cut, or k-means
//   - detect_edges: Sobel or Canny edge map as base64 PNG
//   - validate_svg: Structural and path-data checks on an SVG document
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
