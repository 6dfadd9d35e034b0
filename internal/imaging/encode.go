package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ImageResult contains an encoded image ready to return to an MCP client.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts r from img into a new image. r must lie inside img's bounds
// and be non-empty.
func Crop(img image.Image, r image.Rectangle) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if !r.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.Empty() {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	return imaging.Crop(img, r), nil
}

// ParseFilter maps a filter name to a resampling filter. The empty string
// selects Lanczos.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	switch strings.ToLower(name) {
	case "", "lanczos":
		return imaging.Lanczos, nil
	case "linear":
		return imaging.Linear, nil
	case "catmullrom":
		return imaging.CatmullRom, nil
	case "nearest":
		return imaging.NearestNeighbor, nil
	}
	return imaging.ResampleFilter{}, fmt.Errorf("unknown resample filter %q", name)
}

// MaxFaceSize is the largest face side, in pixels, that ScaleStrip and the
// callers that feed it will produce.
const MaxFaceSize = 8192

// ValidateFaceSize reports whether size is usable as a target face side.
// Zero is valid and means keep the measured side.
func ValidateFaceSize(size int) error {
	if size < 0 || size > MaxFaceSize {
		return fmt.Errorf("face size %d out of range 0..%d", size, MaxFaceSize)
	}
	return nil
}

// ScaleStrip resizes every face of a side x 6*side strip to faceSize x
// faceSize. Faces are resampled one at a time so that filtering never
// bleeds across a layer boundary. A faceSize of 0, or one equal to the
// current side, returns strip unchanged.
func ScaleStrip(strip image.Image, faceSize int, filter imaging.ResampleFilter) (image.Image, error) {
	b := strip.Bounds()
	side := b.Dx()
	if side <= 0 || b.Dy() != 6*side {
		return nil, fmt.Errorf("strip %dx%d is not six stacked squares", b.Dx(), b.Dy())
	}
	if err := ValidateFaceSize(faceSize); err != nil {
		return nil, err
	}
	if faceSize == 0 || faceSize == side {
		return strip, nil
	}

	out := imaging.New(faceSize, 6*faceSize, color.Transparent)
	for layer := 0; layer < 6; layer++ {
		face := imaging.Crop(strip, image.Rect(b.Min.X, b.Min.Y+layer*side, b.Max.X, b.Min.Y+(layer+1)*side))
		scaled := imaging.Resize(face, faceSize, faceSize, filter)
		out = imaging.Paste(out, scaled, image.Pt(0, layer*faceSize))
	}
	return out, nil
}

// ScaleFace resizes a single square face. A faceSize of 0 returns face unchanged.
func ScaleFace(face image.Image, faceSize int, filter imaging.ResampleFilter) image.Image {
	if faceSize <= 0 || faceSize == face.Bounds().Dx() {
		return face
	}
	return imaging.Resize(face, faceSize, faceSize, filter)
}

// EncodePNG encodes img as a base64 PNG.
func EncodePNG(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ImageResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SaveImage writes img to path, creating parent directories as needed. The
// format follows the file extension (png, jpg, gif, tif, bmp).
func SaveImage(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
