package cubemap

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the stage at which a decomposition failed.
type ErrorKind int

const (
	// KindUnknown is reported by KindOf for errors that did not originate here.
	KindUnknown ErrorKind = iota

	// DecodeFailed means the source could not be turned into an RGBA-8 image.
	DecodeFailed

	// AssetNotFound means the source image could not be located.
	AssetNotFound

	// BackgroundNotDetermined means no sampled color reached the majority.
	BackgroundNotDetermined

	// NetNotFound means a scan ran off the image without finding the net.
	NetNotFound

	// NotAligned means two independent edge measurements disagreed.
	NotAligned

	// CopyError means a face crop fell outside the source or the strip.
	CopyError
)

var kindNames = map[ErrorKind]string{
	KindUnknown:             "unknown",
	DecodeFailed:            "decode_failed",
	AssetNotFound:           "asset_not_found",
	BackgroundNotDetermined: "background_not_determined",
	NetNotFound:             "net_not_found",
	NotAligned:              "not_aligned",
	CopyError:               "copy_error",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the error type returned by every operation in this package.
type Error struct {
	Kind ErrorKind
	Err  error // underlying detail, may be nil
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "cubemap: " + e.Kind.String()
	}
	return fmt.Sprintf("cubemap: %s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying detail error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, which lets
// errors.Is match the Err* sentinels regardless of detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Detail returns the underlying message without the kind prefix.
func (e *Error) Detail() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Sentinels for use with errors.Is.
var (
	ErrDecodeFailed            = &Error{Kind: DecodeFailed}
	ErrAssetNotFound           = &Error{Kind: AssetNotFound}
	ErrBackgroundNotDetermined = &Error{Kind: BackgroundNotDetermined}
	ErrNetNotFound             = &Error{Kind: NetNotFound}
	ErrNotAligned              = &Error{Kind: NotAligned}
	ErrCopyError               = &Error{Kind: CopyError}
)

// Wrap tags err with kind. It is used by loaders outside this package to
// report DecodeFailed and AssetNotFound conditions.
func Wrap(kind ErrorKind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}
