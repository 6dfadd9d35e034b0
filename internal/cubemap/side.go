package cubemap

import "log/slog"

// MeasureSideLength returns the common face size for m: the smallest of its
// 4 column widths and 3 row heights. Every side x side crop therefore fits
// inside its measured cell.
func MeasureSideLength(m *Measurements) (int, error) {
	if m == nil || len(m.X) != 5 || len(m.Y) != 4 {
		return 0, newError(NetNotFound, "incomplete measurements")
	}

	ivs := append(m.XIntervals(), m.YIntervals()...)
	side := ivs[0]
	for _, d := range ivs[1:] {
		if d < side {
			side = d
		}
	}
	if side <= 0 {
		return 0, newError(NotAligned, "degenerate face size %d px", side)
	}

	Logger().Debug("cubemap: side length measured", slog.Int("side", side))
	return side, nil
}
