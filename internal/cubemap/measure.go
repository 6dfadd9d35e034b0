package cubemap

import (
	"image"
	"image/color"
	"log/slog"
	"sort"
)

// Measurements holds the face-cell boundaries of a net.
//
// X has 5 entries delimiting 4 column intervals: the -Z face, the -X face,
// the central column (+Y, +Z, -Y) and the +X face. Y has 4 entries
// delimiting 3 row intervals: the top arm, the middle band and the bottom
// arm. Both are non-decreasing.
type Measurements struct {
	X []int `json:"vec_x"`
	Y []int `json:"vec_y"`
}

// XIntervals returns the widths between consecutive X boundaries.
func (m *Measurements) XIntervals() []int {
	return intervals(m.X)
}

// YIntervals returns the heights between consecutive Y boundaries.
func (m *Measurements) YIntervals() []int {
	return intervals(m.Y)
}

func intervals(vec []int) []int {
	if len(vec) < 2 {
		return nil
	}
	out := make([]int, len(vec)-1)
	for i := range out {
		out[i] = vec[i+1] - vec[i]
	}
	return out
}

// FindMeasurements locates the net inside img and returns its boundary
// vectors.
//
// Horizontal scans run through the middle of the top, middle and bottom
// bands (rows H/6, H/2 and 5H/6). The top and bottom arms must agree on the
// central column's edges within o.PointAlignment. Vertical scans then run
// through the central column and through the -X and +X faces. The -X and
// +X faces must agree on the middle band's edges. Finally, the intervals
// along each axis may not spread by more than o.SpacingConsistency.
func (o Options) FindMeasurements(img *image.RGBA) (*Measurements, error) {
	_, m, err := o.measure(img)
	return m, err
}

// FindMeasurements is DefaultOptions().FindMeasurements(img).
func FindMeasurements(img *image.RGBA) (*Measurements, error) {
	return DefaultOptions().FindMeasurements(img)
}

func (o Options) measure(img *image.RGBA) (color.RGBA, *Measurements, error) {
	bg, err := o.DetectBackground(img)
	if err != nil {
		return bg, nil, err
	}
	Logger().Debug("cubemap: background detected",
		slog.Any("color", bg))

	_, h := dims(img)
	dy := h / 6

	midXMin, midXMax, err := rowExtent(img, bg, dy*3)
	if err != nil {
		return bg, nil, err
	}
	topXMin, topXMax, err := rowExtent(img, bg, dy)
	if err != nil {
		return bg, nil, err
	}
	botXMin, botXMax, err := rowExtent(img, bg, dy*5)
	if err != nil {
		return bg, nil, err
	}

	if err := o.checkPoint("top/bottom arm left edge", topXMin, botXMin); err != nil {
		return bg, nil, err
	}
	if err := o.checkPoint("top/bottom arm right edge", topXMax, botXMax); err != nil {
		return bg, nil, err
	}
	shortXMin := (topXMin + botXMin) / 2
	shortXMax := (topXMax + botXMax) / 2

	vecX := []int{
		midXMin,
		(shortXMin + midXMin) / 2,
		shortXMin,
		shortXMax,
		midXMax,
	}
	if err := o.checkSpacing("x", vecX); err != nil {
		return bg, nil, err
	}

	midYMin, midYMax, err := columnExtent(img, bg, (vecX[2]+vecX[3])/2)
	if err != nil {
		return bg, nil, err
	}
	leftYMin, leftYMax, err := columnExtent(img, bg, vecX[1])
	if err != nil {
		return bg, nil, err
	}
	rightYMin, rightYMax, err := columnExtent(img, bg, (vecX[3]+vecX[4])/2)
	if err != nil {
		return bg, nil, err
	}

	if err := o.checkPoint("-X/+X face top edge", leftYMin, rightYMin); err != nil {
		return bg, nil, err
	}
	if err := o.checkPoint("-X/+X face bottom edge", leftYMax, rightYMax); err != nil {
		return bg, nil, err
	}
	shortYMin := (leftYMin + rightYMin) / 2
	shortYMax := (leftYMax + rightYMax) / 2

	vecY := []int{midYMin, shortYMin, shortYMax, midYMax}
	if err := o.checkSpacing("y", vecY); err != nil {
		return bg, nil, err
	}

	m := &Measurements{X: vecX, Y: vecY}
	Logger().Debug("cubemap: measurements found",
		slog.Any("vec_x", m.X),
		slog.Any("vec_y", m.Y))
	return bg, m, nil
}

func rowExtent(img *image.RGBA, bg color.RGBA, y int) (lo, hi int, err error) {
	if lo, err = SearchFromLeft(img, bg, y); err != nil {
		return 0, 0, err
	}
	if hi, err = SearchFromRight(img, bg, y); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

func columnExtent(img *image.RGBA, bg color.RGBA, x int) (lo, hi int, err error) {
	if lo, err = SearchFromTop(img, bg, x); err != nil {
		return 0, 0, err
	}
	if hi, err = SearchFromBottom(img, bg, x); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// checkPoint verifies that two measurements of the same edge agree.
func (o Options) checkPoint(edge string, a, b int) error {
	if d := absInt(a - b); d > o.PointAlignment {
		return newError(NotAligned, "%s: %d and %d differ by %d px, tolerance %d px",
			edge, a, b, d, o.PointAlignment)
	}
	return nil
}

// checkSpacing verifies that vec is non-decreasing and that its intervals
// are of near-equal size.
func (o Options) checkSpacing(axis string, vec []int) error {
	diffs := intervals(vec)
	if len(diffs) == 0 {
		return newError(NetNotFound, "%s axis: too few boundaries", axis)
	}
	sort.Ints(diffs)
	if diffs[0] < 0 {
		return newError(NotAligned, "%s axis: boundaries %v are not in order", axis, vec)
	}
	if spread := diffs[len(diffs)-1] - diffs[0]; spread > o.SpacingConsistency {
		return newError(NotAligned, "%s axis: face sizes %v spread by %d px, tolerance %d px",
			axis, intervals(vec), spread, o.SpacingConsistency)
	}
	return nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
