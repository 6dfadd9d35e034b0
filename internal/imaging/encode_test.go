package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// createStrip creates a side x 6*side strip whose layers are filled with
// the given colors.
func createStrip(side int, layers [6]color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, side, 6*side))
	for layer, c := range layers {
		for y := layer * side; y < (layer+1)*side; y++ {
			for x := 0; x < side; x++ {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

var stripColors = [6]color.RGBA{
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{0, 0, 255, 255},
	{255, 255, 0, 255},
	{0, 255, 255, 255},
	{255, 255, 255, 255},
}

func decodeResult(t *testing.T, r *ImageResult) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img
}

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	cropped, err := Crop(img, image.Rect(50, 0, 100, 50))
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if cropped.Bounds().Dx() != 50 || cropped.Bounds().Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", cropped.Bounds().Dx(), cropped.Bounds().Dy())
	}

	// Top-right quadrant is green
	r, g, b, _ := cropped.At(25, 25).RGBA()
	if uint8(r>>8) != 0 || uint8(g>>8) != 255 || uint8(b>>8) != 0 {
		t.Errorf("cropped color: got (%d,%d,%d), want (0,255,0)", r>>8, g>>8, b>>8)
	}
}

func TestCrop_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"x1 negative", -1, 0, 50, 50},
		{"y1 negative", 0, -1, 50, 50},
		{"x2 too large", 0, 0, 101, 50},
		{"y2 too large", 0, 0, 50, 101},
		{"all out of bounds", -1, -1, 200, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Crop(img, image.Rect(tt.x1, tt.y1, tt.x2, tt.y2))
			if err == nil {
				t.Error("Crop should fail for out-of-bounds coordinates")
			}
		})
	}
}

func TestCrop_Empty(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})
	if _, err := Crop(img, image.Rect(50, 50, 50, 50)); err == nil {
		t.Error("Crop should fail for an empty region")
	}
}

func TestParseFilter(t *testing.T) {
	for _, name := range []string{"", "lanczos", "Linear", "catmullrom", "nearest"} {
		if _, err := ParseFilter(name); err != nil {
			t.Errorf("ParseFilter(%q): %v", name, err)
		}
	}
	if _, err := ParseFilter("bicubic-ish"); err == nil {
		t.Error("ParseFilter should reject unknown filters")
	}
}

func TestScaleStrip(t *testing.T) {
	strip := createStrip(32, stripColors)

	scaled, err := ScaleStrip(strip, 16, imaging.Lanczos)
	if err != nil {
		t.Fatalf("ScaleStrip failed: %v", err)
	}
	b := scaled.Bounds()
	if b.Dx() != 16 || b.Dy() != 96 {
		t.Fatalf("dimensions: got %dx%d, want 16x96", b.Dx(), b.Dy())
	}

	// Layer boundaries stay sharp since faces are resampled separately.
	for layer, want := range stripColors {
		for _, y := range []int{layer * 16, layer*16 + 15} {
			r, g, bl, _ := scaled.At(8, y).RGBA()
			got := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8), 255}
			if got != want {
				t.Errorf("layer %d row %d: got %v, want %v", layer, y, got, want)
			}
		}
	}
}

func TestScaleStrip_Unchanged(t *testing.T) {
	strip := createStrip(8, stripColors)
	for _, size := range []int{0, 8} {
		out, err := ScaleStrip(strip, size, imaging.Lanczos)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if out != image.Image(strip) {
			t.Errorf("size %d: strip was copied", size)
		}
	}
}

func TestScaleStrip_Invalid(t *testing.T) {
	if _, err := ScaleStrip(createInMemoryImage(10, 10, color.Black), 4, imaging.Lanczos); err == nil {
		t.Error("ScaleStrip should reject a non-strip image")
	}
	if _, err := ScaleStrip(createStrip(8, stripColors), -1, imaging.Lanczos); err == nil {
		t.Error("ScaleStrip should reject a negative face size")
	}
	for _, size := range []int{MaxFaceSize + 1, 1 << 40} {
		if _, err := ScaleStrip(createStrip(8, stripColors), size, imaging.Lanczos); err == nil {
			t.Errorf("ScaleStrip should reject face size %d", size)
		}
	}
}

func TestValidateFaceSize(t *testing.T) {
	tests := []struct {
		size    int
		wantErr bool
	}{
		{-1, true},
		{0, false},
		{256, false},
		{MaxFaceSize, false},
		{MaxFaceSize + 1, true},
	}

	for _, tt := range tests {
		if err := ValidateFaceSize(tt.size); (err != nil) != tt.wantErr {
			t.Errorf("ValidateFaceSize(%d): got %v, wantErr %v", tt.size, err, tt.wantErr)
		}
	}
}

func TestScaleFace(t *testing.T) {
	face := createInMemoryImage(20, 20, color.RGBA{1, 2, 3, 255})
	if got := ScaleFace(face, 0, imaging.Lanczos); got != face {
		t.Error("face size 0 should return the face unchanged")
	}
	if got := ScaleFace(face, 40, imaging.NearestNeighbor); got.Bounds().Dx() != 40 {
		t.Errorf("width: got %d, want 40", got.Bounds().Dx())
	}
}

func TestEncodePNG(t *testing.T) {
	strip := createStrip(8, stripColors)

	result, err := EncodePNG(strip)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if result.Width != 8 || result.Height != 48 {
		t.Errorf("dimensions: got %dx%d, want 8x48", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	decoded := decodeResult(t, result)
	r, g, b, _ := decoded.At(4, 20).RGBA()
	if uint8(r>>8) != 0 || uint8(g>>8) != 0 || uint8(b>>8) != 255 {
		t.Errorf("layer 2 color: got (%d,%d,%d), want (0,0,255)", r>>8, g>>8, b>>8)
	}
}

func TestSaveImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "strip.png")
	if err := SaveImage(createStrip(4, stripColors), path); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("saved file is not a PNG: %v", err)
	}
	if cfg.Width != 4 || cfg.Height != 24 {
		t.Errorf("saved dimensions: got %dx%d, want 4x24", cfg.Width, cfg.Height)
	}
}

func TestSaveImage_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strip.xyz")
	if err := SaveImage(createStrip(4, stripColors), path); err == nil {
		t.Error("SaveImage should fail for an unknown extension")
	}
}
