package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"math"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/cubemap-net-mcp/internal/cubemap"
	imgtools "github.com/ironsheep/cubemap-net-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "cubemap_decompose").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ToolErrorData is the data member of a failed tools/call response when the
// failure came from the cubemap pipeline.
type ToolErrorData struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`

	// Context is any text the failing call wrapped around the cubemap error.
	Context string `json:"context,omitempty"`
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
// A panic inside a tool is logged and reported as -32603.
func (s *Server) handleToolsCall(req *MCPRequest) (resp *MCPResponse) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Tool call panicked: %v", r)
			resp = s.errorResponse(req.ID, -32603, "Internal error", fmt.Sprint(r))
		}
	}()

	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", toolErrorData(err))
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

// toolErrorData returns a ToolErrorData for cubemap errors and the plain
// error string otherwise.
func toolErrorData(err error) interface{} {
	var ce *cubemap.Error
	if !errors.As(err, &ce) {
		return err.Error()
	}
	data := ToolErrorData{Kind: ce.Kind.String(), Detail: ce.Detail()}
	if outer := err.Error(); outer != ce.Error() {
		data.Context = strings.TrimSuffix(strings.TrimSuffix(outer, ce.Error()), ": ")
	}
	return data
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies configured defaults and per-call overrides
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging or cubemap function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Cubemap Operations
	case "cubemap_detect_background":
		return s.handleDetectBackground(args)
	case "cubemap_measure":
		return s.handleMeasure(args)
	case "cubemap_decompose":
		return s.handleDecompose(args)
	case "cubemap_extract_face":
		return s.handleExtractFace(args)
	case "cubemap_overlay":
		return s.handleOverlay(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
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

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imgtools.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imgtools.GetDimensions(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imgtools.SampleColor(img, a.X, a.Y)
}

// === Cubemap Handlers ===

// toleranceArgs are the optional per-call overrides of the configured
// tolerances.
type toleranceArgs struct {
	PointAlignment     *int `json:"point_alignment,omitempty"`
	SpacingConsistency *int `json:"spacing_consistency,omitempty"`
	BackgroundMajority *int `json:"background_majority,omitempty"`
}

type netArgs struct {
	Path       string         `json:"path"`
	Tolerances *toleranceArgs `json:"tolerances,omitempty"`
}

// options merges the call's overrides into the configured tolerances.
func (s *Server) options(t *toleranceArgs) (cubemap.Options, error) {
	opts := s.cfg.Options()
	if t == nil {
		return opts, nil
	}
	if t.PointAlignment != nil {
		opts.PointAlignment = *t.PointAlignment
	}
	if t.SpacingConsistency != nil {
		opts.SpacingConsistency = *t.SpacingConsistency
	}
	if t.BackgroundMajority != nil {
		opts.BackgroundMajority = *t.BackgroundMajority
	}
	if opts.PointAlignment < 0 || opts.SpacingConsistency < 0 {
		return opts, fmt.Errorf("tolerances must not be negative")
	}
	if opts.BackgroundMajority <= 0 || opts.BackgroundMajority > 8 {
		return opts, fmt.Errorf("background_majority must be in 1..8, got %d", opts.BackgroundMajority)
	}
	return opts, nil
}

// loadNet resolves the options and loads the net as RGBA.
func (s *Server) loadNet(a netArgs) (*image.RGBA, cubemap.Options, error) {
	opts, err := s.options(a.Tolerances)
	if err != nil {
		return nil, opts, err
	}
	img, err := imgtools.LoadRGBA(s.cache, a.Path)
	if err != nil {
		return nil, opts, err
	}
	return img, opts, nil
}

// filter resolves a per-call filter name, falling back to the configured one.
func (s *Server) filter(name string) (imaging.ResampleFilter, error) {
	if name == "" {
		name = s.cfg.Output.Filter
	}
	return imgtools.ParseFilter(name)
}

// faceSize resolves a per-call face size, falling back to the configured one.
func (s *Server) faceSize(size *int) (int, error) {
	n := s.cfg.Output.FaceSize
	if size != nil {
		n = *size
	}
	if err := imgtools.ValidateFaceSize(n); err != nil {
		return 0, fmt.Errorf("face_size: %w", err)
	}
	return n, nil
}

// BackgroundSample is one of the sample points used for background detection.
type BackgroundSample struct {
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Hex      string  `json:"hex"`
	Distance float64 `json:"distance"` // CIEDE2000 distance to the background
}

// BackgroundResult reports the detected padding color.
type BackgroundResult struct {
	Background *imgtools.ColorResult `json:"background"`
	Votes      int                   `json:"votes"`
	Required   int                   `json:"required"`
	Samples    []BackgroundSample    `json:"samples"`
}

func (s *Server) handleDetectBackground(args json.RawMessage) (interface{}, error) {
	var a netArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, opts, err := s.loadNet(a)
	if err != nil {
		return nil, err
	}

	bg, err := opts.DetectBackground(img)
	if err != nil {
		return nil, err
	}
	_, votes := cubemap.BackgroundVotes(img)

	b := img.Bounds()
	points := cubemap.BackgroundSamplePoints(b.Dx(), b.Dy())
	samples := make([]BackgroundSample, 0, len(points))
	for _, p := range points {
		c := img.RGBAAt(b.Min.X+p.X, b.Min.Y+p.Y)
		samples = append(samples, BackgroundSample{
			X:        p.X,
			Y:        p.Y,
			Hex:      imgtools.ColorOf(c).Hex,
			Distance: imgtools.ColorDistance(c, bg),
		})
	}

	return &BackgroundResult{
		Background: imgtools.ColorOf(bg),
		Votes:      votes,
		Required:   opts.BackgroundMajority,
		Samples:    samples,
	}, nil
}

// MeasureResult reports the face-cell boundaries of a net.
type MeasureResult struct {
	Background *imgtools.ColorResult `json:"background"`
	VecX       []int                 `json:"vec_x"`
	VecY       []int                 `json:"vec_y"`
	XIntervals []int                 `json:"x_intervals"`
	YIntervals []int                 `json:"y_intervals"`
	Side       int                   `json:"side"`
}

func (s *Server) handleMeasure(args json.RawMessage) (interface{}, error) {
	var a netArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, opts, err := s.loadNet(a)
	if err != nil {
		return nil, err
	}

	bg, err := opts.DetectBackground(img)
	if err != nil {
		return nil, err
	}
	m, err := opts.FindMeasurements(img)
	if err != nil {
		return nil, err
	}
	side, err := cubemap.MeasureSideLength(m)
	if err != nil {
		return nil, err
	}

	return &MeasureResult{
		Background: imgtools.ColorOf(bg),
		VecX:       m.X,
		VecY:       m.Y,
		XIntervals: m.XIntervals(),
		YIntervals: m.YIntervals(),
		Side:       side,
	}, nil
}

type decomposeArgs struct {
	netArgs
	OutputPath string `json:"output_path,omitempty"`
	FaceSize   *int   `json:"face_size,omitempty"`
	Filter     string `json:"filter,omitempty"`
}

// DecomposeResult contains the assembled strip.
type DecomposeResult struct {
	imgtools.ImageResult
	Side       int                  `json:"side"`
	FaceSize   int                  `json:"face_size"`
	Background string               `json:"background"`
	Faces      []string             `json:"faces"`
	Measure    cubemap.Measurements `json:"measurements"`
	OutputPath string               `json:"output_path,omitempty"`
}

func (s *Server) handleDecompose(args json.RawMessage) (interface{}, error) {
	var a decomposeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	size, err := s.faceSize(a.FaceSize)
	if err != nil {
		return nil, err
	}
	filter, err := s.filter(a.Filter)
	if err != nil {
		return nil, err
	}
	img, opts, err := s.loadNet(a.netArgs)
	if err != nil {
		return nil, err
	}

	strip, err := opts.Decompose(img)
	if err != nil {
		return nil, err
	}
	out, err := imgtools.ScaleStrip(strip.Image, size, filter)
	if err != nil {
		return nil, err
	}
	if a.OutputPath != "" {
		if err := imgtools.SaveImage(out, a.OutputPath); err != nil {
			return nil, err
		}
	}
	encoded, err := imgtools.EncodePNG(out)
	if err != nil {
		return nil, err
	}

	faces := make([]string, len(cubemap.Faces))
	for i, f := range cubemap.Faces {
		faces[i] = f.String()
	}

	return &DecomposeResult{
		ImageResult: *encoded,
		Side:        strip.Side,
		FaceSize:    out.Bounds().Dx(),
		Background:  imgtools.ColorOf(strip.Background).Hex,
		Faces:       faces,
		Measure:     strip.Measurements,
		OutputPath:  a.OutputPath,
	}, nil
}

type extractFaceArgs struct {
	netArgs
	Face     string `json:"face"`
	FaceSize *int   `json:"face_size,omitempty"`
	Filter   string `json:"filter,omitempty"`
}

// FaceResult contains a single face cropped from a net.
type FaceResult struct {
	imgtools.ImageResult
	Face   string `json:"face"`
	Side   int    `json:"side"`
	Source [4]int `json:"source"` // x1, y1, x2, y2 in the net
}

func (s *Server) handleExtractFace(args json.RawMessage) (interface{}, error) {
	var a extractFaceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	face, err := cubemap.ParseFace(a.Face)
	if err != nil {
		return nil, err
	}
	size, err := s.faceSize(a.FaceSize)
	if err != nil {
		return nil, err
	}
	filter, err := s.filter(a.Filter)
	if err != nil {
		return nil, err
	}
	img, opts, err := s.loadNet(a.netArgs)
	if err != nil {
		return nil, err
	}

	m, err := opts.FindMeasurements(img)
	if err != nil {
		return nil, err
	}
	side, err := cubemap.MeasureSideLength(m)
	if err != nil {
		return nil, err
	}
	r, err := cubemap.FaceRect(m, face, side)
	if err != nil {
		return nil, err
	}
	cropped, err := imgtools.Crop(img, r.Add(img.Bounds().Min))
	if err != nil {
		return nil, cubemap.Wrap(cubemap.CopyError, err)
	}
	encoded, err := imgtools.EncodePNG(imgtools.ScaleFace(cropped, size, filter))
	if err != nil {
		return nil, err
	}

	return &FaceResult{
		ImageResult: *encoded,
		Face:        face.String(),
		Side:        side,
		Source:      [4]int{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y},
	}, nil
}

type overlayArgs struct {
	netArgs
	ShowCoordinates bool   `json:"show_coordinates"`
	LineColor       string `json:"line_color"`
}

// OverlayReport is the net with its measured boundaries drawn in. When the
// net fails the alignment checks, the boundaries found without tolerances are
// drawn instead and Problem says which check failed.
type OverlayReport struct {
	imgtools.OverlayResult
	Aligned bool   `json:"aligned"`
	Problem string `json:"problem,omitempty"`
}

func (s *Server) handleOverlay(args json.RawMessage) (interface{}, error) {
	var a overlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.LineColor == "" {
		a.LineColor = "#FF0000"
	}
	img, opts, err := s.loadNet(a.netArgs)
	if err != nil {
		return nil, err
	}

	report := &OverlayReport{Aligned: true}
	m, err := opts.FindMeasurements(img)
	if errors.Is(err, cubemap.ErrNotAligned) {
		report.Aligned = false
		report.Problem = err.Error()
		loose := opts
		loose.PointAlignment = math.MaxInt32
		loose.SpacingConsistency = math.MaxInt32
		m, err = loose.FindMeasurements(img)
	}
	if err != nil {
		return nil, err
	}

	overlay, err := imgtools.MeasurementOverlay(img, m.X, m.Y, a.ShowCoordinates, a.LineColor)
	if err != nil {
		return nil, err
	}
	report.OverlayResult = *overlay
	return report, nil
}
