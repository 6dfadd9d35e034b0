package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/cubemap-net-mcp/internal/config"
	"github.com/ironsheep/cubemap-net-mcp/internal/cubemap"
)

// writeNet writes a 136x104 cross net with 32 px faces to dir.
func writeNet(t *testing.T, dir string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 136, 104))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:i+4], []uint8{255, 0, 255, 255})
	}
	cells := []image.Point{{3, 1}, {1, 1}, {2, 0}, {2, 2}, {2, 1}, {0, 1}}
	for layer, c := range cells {
		fill := color.RGBA{uint8(40 * layer), 200, 100, 255}
		for y := 4 + c.Y*32; y < 4+(c.Y+1)*32; y++ {
			for x := 4 + c.X*32; x < 4+(c.X+1)*32; x++ {
				img.SetRGBA(x, y, fill)
			}
		}
	}

	path := filepath.Join(dir, "net.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	return img
}

func TestRunDecompose(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	dir := t.TempDir()
	in := writeNet(t, dir)
	out := filepath.Join(dir, "strip.png")

	var stdout bytes.Buffer
	if err := runDecompose([]string{"-in", in, "-out", out}, &stdout); err != nil {
		t.Fatalf("runDecompose failed: %v", err)
	}

	img := readPNG(t, out)
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 192 {
		t.Errorf("strip: got %dx%d, want 32x192", img.Bounds().Dx(), img.Bounds().Dy())
	}
	for _, want := range []string{"background: #FF00FF", "vec_x: [4 36 68 100 132]", "vec_y: [4 36 68 100]", "side: 32"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("output missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestRunDecompose_FaceSizeAndConfig(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	dir := t.TempDir()
	in := writeNet(t, dir)

	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("output:\n  faceSize: 8\n  filter: nearest\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		args  []string
		width int
	}{
		{"config face size", []string{"-config", cfgPath}, 8},
		{"flag overrides config", []string{"-config", cfgPath, "-face-size", "16"}, 16},
		{"zero keeps side", []string{"-config", cfgPath, "-face-size", "0"}, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "strip.png")
			args := append([]string{"-in", in, "-out", out}, tt.args...)
			if err := runDecompose(args, &bytes.Buffer{}); err != nil {
				t.Fatalf("runDecompose failed: %v", err)
			}
			img := readPNG(t, out)
			if img.Bounds().Dx() != tt.width || img.Bounds().Dy() != 6*tt.width {
				t.Errorf("strip: got %dx%d, want %dx%d", img.Bounds().Dx(), img.Bounds().Dy(), tt.width, 6*tt.width)
			}
		})
	}
}

func TestRunDecompose_Errors(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	dir := t.TempDir()
	out := filepath.Join(dir, "strip.png")

	if err := runDecompose([]string{"-out", out}, &bytes.Buffer{}); err == nil {
		t.Error("missing -in should fail")
	}

	err := runDecompose([]string{"-in", filepath.Join(dir, "absent.png"), "-out", out}, &bytes.Buffer{})
	if !errors.Is(err, cubemap.ErrAssetNotFound) {
		t.Errorf("missing input: got %v, want AssetNotFound", err)
	}

	blank := filepath.Join(dir, "blank.png")
	f, _ := os.Create(blank)
	png.Encode(f, image.NewRGBA(image.Rect(0, 0, 40, 30)))
	f.Close()
	err = runDecompose([]string{"-in", blank, "-out", out}, &bytes.Buffer{})
	if !errors.Is(err, cubemap.ErrNetNotFound) {
		t.Errorf("blank input: got %v, want NetNotFound", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("no output should be written on failure")
	}

	if err := runDecompose([]string{"-in", blank, "-out", out, "-face-size", "100000"}, &bytes.Buffer{}); err == nil {
		t.Error("oversized -face-size should fail")
	}
}

func TestRunInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cubemap.yaml")

	var stdout bytes.Buffer
	if err := runInitConfig([]string{"-out", path}, &stdout); err != nil {
		t.Fatalf("runInitConfig failed: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Options() != cubemap.DefaultOptions() {
		t.Errorf("generated config: got %+v, want defaults", cfg.Options())
	}
}
