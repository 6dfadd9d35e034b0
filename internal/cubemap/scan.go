package cubemap

import (
	"image"
	"image/color"
)

// pixel returns the color at (x, y) relative to img.Bounds().Min.
// ok is false for a nil image or coordinates outside the image.
func pixel(img *image.RGBA, x, y int) (c color.RGBA, ok bool) {
	if img == nil {
		return color.RGBA{}, false
	}
	b := img.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return color.RGBA{}, false
	}
	return img.RGBAAt(b.Min.X+x, b.Min.Y+y), true
}

func dims(img *image.RGBA) (w, h int) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// SearchFromLeft returns the first x in row y whose pixel differs from bg.
func SearchFromLeft(img *image.RGBA, bg color.RGBA, y int) (int, error) {
	w, _ := dims(img)
	for x := 0; x < w; x++ {
		c, ok := pixel(img, x, y)
		if !ok {
			break
		}
		if c != bg {
			return x, nil
		}
	}
	return 0, newError(NetNotFound, "row %d: no net pixel scanning from the left", y)
}

// SearchFromRight scans row y from the right edge and returns one past the
// last pixel that differs from bg, i.e. an exclusive right boundary.
func SearchFromRight(img *image.RGBA, bg color.RGBA, y int) (int, error) {
	w, _ := dims(img)
	for x := w - 1; x >= 0; x-- {
		c, ok := pixel(img, x, y)
		if !ok {
			break
		}
		if c != bg {
			return x + 1, nil
		}
	}
	return 0, newError(NetNotFound, "row %d: no net pixel scanning from the right", y)
}

// SearchFromTop returns the first y in column x whose pixel differs from bg.
func SearchFromTop(img *image.RGBA, bg color.RGBA, x int) (int, error) {
	_, h := dims(img)
	for y := 0; y < h; y++ {
		c, ok := pixel(img, x, y)
		if !ok {
			break
		}
		if c != bg {
			return y, nil
		}
	}
	return 0, newError(NetNotFound, "column %d: no net pixel scanning from the top", x)
}

// SearchFromBottom scans column x upward and returns an exclusive bottom
// boundary.
func SearchFromBottom(img *image.RGBA, bg color.RGBA, x int) (int, error) {
	_, h := dims(img)
	for y := h - 1; y >= 0; y-- {
		c, ok := pixel(img, x, y)
		if !ok {
			break
		}
		if c != bg {
			return y + 1, nil
		}
	}
	return 0, newError(NetNotFound, "column %d: no net pixel scanning from the bottom", x)
}
