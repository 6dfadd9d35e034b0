package cubemap

import (
	"image"
	"image/color"
)

// Strip is the result of a successful decomposition.
type Strip struct {
	// Image is Side pixels wide and 6*Side pixels tall.
	Image *image.RGBA

	// Side is the edge length of every face.
	Side int

	// Background is the padding color that was detected.
	Background color.RGBA

	// Measurements are the face-cell boundaries found in the source net.
	Measurements Measurements
}

// Face returns the layer holding f as a sub-image sharing Image's pixels.
func (s *Strip) Face(f Face) *image.RGBA {
	r := image.Rect(0, f.Layer()*s.Side, s.Side, (f.Layer()+1)*s.Side)
	return s.Image.SubImage(r.Add(s.Image.Bounds().Min)).(*image.RGBA)
}

// Decompose splits a cross-layout net into a cubemap strip. The first
// failing stage aborts the run and its *Error is returned.
func (o Options) Decompose(img *image.RGBA) (*Strip, error) {
	if img == nil {
		return nil, newError(DecodeFailed, "nil image")
	}

	bg, m, err := o.measure(img)
	if err != nil {
		return nil, err
	}
	side, err := MeasureSideLength(m)
	if err != nil {
		return nil, err
	}
	out, err := AssembleStrip(img, m, side)
	if err != nil {
		return nil, err
	}

	return &Strip{
		Image:        out,
		Side:         side,
		Background:   bg,
		Measurements: *m,
	}, nil
}

// Decompose is DefaultOptions().Decompose(img).
func Decompose(img *image.RGBA) (*Strip, error) {
	return DefaultOptions().Decompose(img)
}
