// Package server implements the MCP (Model Context Protocol) server for
// cubemap net tools.
//
// This package provides a JSON-RPC 2.0 server that exposes cubemap net
// decomposition through the MCP protocol, so that MCP-compatible clients can
// inspect a cross-layout net, see why it fails to measure, and turn it into a
// six-face strip.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_sample_color: Get color at pixel
//
// Cubemap Operations:
//   - cubemap_detect_background: Report the padding color and its votes
//   - cubemap_measure: Report the face-cell boundaries and side length
//   - cubemap_decompose: Build the +X, -X, +Y, -Y, +Z, -Z strip
//   - cubemap_extract_face: Crop a single face
//   - cubemap_overlay: Draw the measured boundaries over the net
//
// Every cubemap tool accepts a "tolerances" object overriding the
// configured point_alignment, spacing_consistency and background_majority
// for that call.
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
//   - code: -32000 for a tool failure, -32603 if a tool panicked
//   - message: Human-readable error description
//   - data: {"kind": ..., "detail": ..., "context": ...} for cubemap failures
//     such as "not_aligned", otherwise the Go error string
//
// Lines that are not JSON get -32700 with a null id, and requests that do not
// declare jsonrpc "2.0" get -32600.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
