package cubemap

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Face identifies one side of the cube. Its value is the face's layer index
// in the output strip.
type Face int

const (
	PositiveX Face = iota
	NegativeX
	PositiveY
	NegativeY
	PositiveZ
	NegativeZ
)

// Faces lists every face in strip layer order.
var Faces = []Face{PositiveX, NegativeX, PositiveY, NegativeY, PositiveZ, NegativeZ}

var faceNames = [...]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

func (f Face) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceNames[f]
}

// Layer returns the face's index in the strip, counted from the top.
func (f Face) Layer() int {
	return int(f)
}

// ParseFace accepts "+X", "px" or "positive_x" style names, case-insensitively.
func ParseFace(s string) (Face, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+x", "px", "positive_x":
		return PositiveX, nil
	case "-x", "nx", "negative_x":
		return NegativeX, nil
	case "+y", "py", "positive_y":
		return PositiveY, nil
	case "-y", "ny", "negative_y":
		return NegativeY, nil
	case "+z", "pz", "positive_z":
		return PositiveZ, nil
	case "-z", "nz", "negative_z":
		return NegativeZ, nil
	}
	return 0, fmt.Errorf("unknown face %q", s)
}

// cell addresses a face by its column interval in Measurements.X and row
// interval in Measurements.Y.
type cell struct {
	col, row int
}

var faceCells = [...]cell{
	PositiveX: {3, 1},
	NegativeX: {1, 1},
	PositiveY: {2, 0},
	NegativeY: {2, 2},
	PositiveZ: {2, 1},
	NegativeZ: {0, 1},
}

// FaceRect returns the side x side crop for f, centered in its measured
// cell. The rectangle is relative to the source image's origin.
func FaceRect(m *Measurements, f Face, side int) (image.Rectangle, error) {
	if f < 0 || int(f) >= len(faceCells) {
		return image.Rectangle{}, newError(CopyError, "unknown face %d", int(f))
	}
	if m == nil {
		return image.Rectangle{}, newError(CopyError, "no measurements")
	}
	c := faceCells[f]
	if c.col+1 >= len(m.X) || c.row+1 >= len(m.Y) {
		return image.Rectangle{}, newError(CopyError, "face %s: cell (%d,%d) outside measurements", f, c.col, c.row)
	}

	x0 := m.X[c.col] + (m.X[c.col+1]-m.X[c.col]-side)/2
	y0 := m.Y[c.row] + (m.Y[c.row+1]-m.Y[c.row]-side)/2
	return image.Rect(x0, y0, x0+side, y0+side), nil
}

// CopyFace copies the square region r of src, given relative to src's
// origin, into the given layer of the strip dst.
func CopyFace(dst, src *image.RGBA, r image.Rectangle, layer int) error {
	if dst == nil || src == nil {
		return newError(CopyError, "nil image")
	}
	side := r.Dx()
	if side <= 0 || r.Dy() != side {
		return newError(CopyError, "crop %v is not a non-empty square", r)
	}

	sb := src.Bounds()
	sr := r.Add(sb.Min)
	if !sr.In(sb) {
		return newError(CopyError, "crop %v outside source %dx%d", r, sb.Dx(), sb.Dy())
	}

	db := dst.Bounds()
	dr := image.Rect(0, layer*side, side, (layer+1)*side).Add(db.Min)
	if layer < 0 || !dr.In(db) {
		return newError(CopyError, "layer %d outside strip %dx%d", layer, db.Dx(), db.Dy())
	}

	draw.Draw(dst, dr, src, sr.Min, draw.Src)
	return nil
}

// AssembleStrip crops all six faces out of img and stacks them into a new
// side x 6*side image in layer order +X, -X, +Y, -Y, +Z, -Z.
func AssembleStrip(img *image.RGBA, m *Measurements, side int) (*image.RGBA, error) {
	if side <= 0 {
		return nil, newError(CopyError, "invalid side length %d", side)
	}

	out := image.NewRGBA(image.Rect(0, 0, side, side*len(Faces)))
	for _, f := range Faces {
		r, err := FaceRect(m, f, side)
		if err != nil {
			return nil, err
		}
		if err := CopyFace(out, img, r, f.Layer()); err != nil {
			return nil, fmt.Errorf("face %s: %w", f, err)
		}
	}
	return out, nil
}
