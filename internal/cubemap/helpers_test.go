package cubemap

import (
	"image"
	"image/color"
)

var (
	testBackground = color.RGBA{255, 0, 255, 255}

	// testFaceColors is indexed by Face.
	testFaceColors = [6]color.RGBA{
		PositiveX: {200, 0, 0, 255},
		NegativeX: {0, 200, 0, 255},
		PositiveY: {0, 0, 200, 255},
		NegativeY: {200, 200, 0, 255},
		PositiveZ: {0, 200, 200, 255},
		NegativeZ: {240, 240, 240, 255},
	}
)

// testNet describes a synthetic cross-layout net.
type testNet struct {
	side, pad int
	// shift moves a single face away from its canonical cell.
	shift [6]image.Point
}

// build renders the net: 4x3 cells of side pixels inside pad pixels of
// testBackground, each face filled with its testFaceColors entry.
func (n testNet) build() *image.RGBA {
	w := 4*n.side + 2*n.pad
	h := 3*n.side + 2*n.pad
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(img, img.Bounds(), testBackground)

	for _, f := range Faces {
		c := faceCells[f]
		x0 := n.pad + c.col*n.side + n.shift[f].X
		y0 := n.pad + c.row*n.side + n.shift[f].Y
		fillRect(img, image.Rect(x0, y0, x0+n.side, y0+n.side), testFaceColors[f])
	}
	return img
}

// standardNet is 136x104: faces of 32 px inside 4 px of padding.
func standardNet() *image.RGBA {
	return testNet{side: 32, pad: 4}.build()
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func uniformImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(img, img.Bounds(), c)
	return img
}
