package cubemap

import (
	"image"
	"image/color"
	"sort"
)

// BackgroundSamplePoints returns the 8 sample coordinates for a w x h image,
// relative to the image origin.
// The points sit in the upper and lower bands at eighths of the width, where
// a cross layout has padding in all but one column.
func BackgroundSamplePoints(w, h int) []image.Point {
	points := make([]image.Point, 0, 8)
	for x := 0; x < 4; x++ {
		for y := 0; y < 2; y++ {
			points = append(points, image.Point{
				X: (2*x + 1) * w / 8,
				Y: (4*y + 1) * h / 6,
			})
		}
	}
	return points
}

// BackgroundVotes samples the 8 points and returns the most frequent
// color together with how many samples it won. Ties go to the color that
// was sampled first. votes is 0 when the image is empty.
func BackgroundVotes(img *image.RGBA) (bg color.RGBA, votes int) {
	w, h := dims(img)
	if w == 0 || h == 0 {
		return color.RGBA{}, 0
	}

	counts := make(map[color.RGBA]int)
	var order []color.RGBA
	for _, p := range BackgroundSamplePoints(w, h) {
		c, ok := pixel(img, p.X, p.Y)
		if !ok {
			continue
		}
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}
	if len(order) == 0 {
		return color.RGBA{}, 0
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order[0], counts[order[0]]
}

// DetectBackground infers the net's padding color. It fails with
// BackgroundNotDetermined unless the winning color appears in at least
// o.BackgroundMajority of the samples.
func (o Options) DetectBackground(img *image.RGBA) (color.RGBA, error) {
	if img == nil {
		return color.RGBA{}, newError(DecodeFailed, "nil image")
	}
	bg, votes := BackgroundVotes(img)
	if votes == 0 {
		return color.RGBA{}, newError(BackgroundNotDetermined, "image has no pixels to sample")
	}
	if votes < o.BackgroundMajority {
		return color.RGBA{}, newError(BackgroundNotDetermined,
			"most frequent sample color won %d of 8 votes, need %d", votes, o.BackgroundMajority)
	}
	return bg, nil
}

// DetectBackground is DefaultOptions().DetectBackground(img).
func DetectBackground(img *image.RGBA) (color.RGBA, error) {
	return DefaultOptions().DetectBackground(img)
}
