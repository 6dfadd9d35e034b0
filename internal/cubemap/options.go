package cubemap

// Fixed alignment policy. The values are literal pixel counts and are not
// scaled with the image size.
const (
	// DefaultPointAlignment is the largest allowed discrepancy, in pixels,
	// between two scans that should have hit the same net edge.
	DefaultPointAlignment = 8

	// DefaultSpacingConsistency is the largest allowed spread, in pixels,
	// between the widest and narrowest face interval along one axis.
	DefaultSpacingConsistency = 16

	// DefaultBackgroundMajority is how many of the 8 background samples
	// must share a color for it to be accepted as padding.
	DefaultBackgroundMajority = 4
)

// Options holds the tolerances used by the measurement stage.
//
// The zero value is not useful: every tolerance would demand an exact match
// and the background vote would accept any color. Start from DefaultOptions.
type Options struct {
	PointAlignment     int `json:"point_alignment"`
	SpacingConsistency int `json:"spacing_consistency"`
	BackgroundMajority int `json:"background_majority"`
}

// DefaultOptions returns the stock tolerances.
func DefaultOptions() Options {
	return Options{
		PointAlignment:     DefaultPointAlignment,
		SpacingConsistency: DefaultSpacingConsistency,
		BackgroundMajority: DefaultBackgroundMajority,
	}
}
