package server

import imgtools "github.com/ironsheep/cubemap-net-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema of the path argument every tool takes.
var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// toleranceProperty is the schema of the optional per-call tolerance
// overrides accepted by every cubemap tool.
var toleranceProperty = map[string]interface{}{
	"type":        "object",
	"description": "Optional overrides of the configured measurement tolerances",
	"properties": map[string]interface{}{
		"point_alignment": map[string]interface{}{
			"type":        "integer",
			"description": "Max pixels two scans of the same edge may disagree. Default 8",
			"minimum":     0,
		},
		"spacing_consistency": map[string]interface{}{
			"type":        "integer",
			"description": "Max spread in pixels between face intervals along one axis. Default 16",
			"minimum":     0,
		},
		"background_majority": map[string]interface{}{
			"type":        "integer",
			"description": "Samples out of 8 that must share the background color. Default 4",
			"minimum":     1,
			"maximum":     8,
		},
	},
}

var faceSizeProperty = map[string]interface{}{
	"type":        "integer",
	"description": "Resize every face to this many pixels square. 0 keeps the measured side; omitted uses the server config",
	"minimum":     0,
	"maximum":     imgtools.MaxFaceSize,
}

var filterProperty = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"lanczos", "linear", "catmullrom", "nearest"},
	"description": "Resampling filter used when face_size changes the side. Omitted uses the server config",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Cubemap Operations
		{
			Name:        "cubemap_detect_background",
			Description: "Sample 8 points of a cross-layout cubemap net and report the padding color, how many samples agreed on it, and each sample's distance from it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":       pathProperty,
					"tolerances": toleranceProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "cubemap_measure",
			Description: "Find the face-cell boundaries of a cross-layout cubemap net. Returns vec_x (5 column boundaries), vec_y (4 row boundaries), the intervals between them and the face side length.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":       pathProperty,
					"tolerances": toleranceProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "cubemap_decompose",
			Description: "Split a cross-layout cubemap net into a vertical strip of six square faces in the order +X, -X, +Y, -Y, +Z, -Z. Returns the strip as base64-encoded PNG and optionally saves it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to write the strip to. The format follows the extension",
					},
					"face_size":  faceSizeProperty,
					"filter":     filterProperty,
					"tolerances": toleranceProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "cubemap_extract_face",
			Description: "Crop a single face out of a cross-layout cubemap net and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"face": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"},
						"description": "Face to extract",
					},
					"face_size":  faceSizeProperty,
					"filter":     filterProperty,
					"tolerances": toleranceProperty,
				},
				"required": []string{"path", "face"},
			},
		},
		{
			Name:        "cubemap_overlay",
			Description: "Draw the measured face-cell boundaries over a cubemap net. Nets that fail alignment are drawn with their raw boundaries so the misaligned edge is visible.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"show_coordinates": map[string]interface{}{
						"type":        "boolean",
						"description": "Label each boundary intersection with its coordinates",
						"default":     false,
					},
					"line_color": map[string]interface{}{
						"type":        "string",
						"description": "Line color in hex format (e.g., '#FF0000' or '#FF000080' with alpha)",
						"default":     "#FF0000",
					},
					"tolerances": toleranceProperty,
				},
				"required": []string{"path"},
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
