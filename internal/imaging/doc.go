// Package imaging provides the image I/O and reporting around cubemap
// decomposition: loading nets from disk into RGBA-8, sampling and describing
// colors, scaling and encoding strips, and drawing measurement overlays.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, Min is inclusive (top-left) and Max is exclusive (bottom-right)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images. Images
// returned from the cache are shared and must be treated as read-only.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Error Handling
//
// Loading failures are tagged with cubemap error kinds so callers can tell a
// missing file (cubemap.AssetNotFound) from an undecodable one
// (cubemap.DecodeFailed). Other functions return plain wrapped errors for:
//   - Coordinates outside image bounds
//   - Empty or out-of-bounds regions
//   - Encoding errors during image output
package imaging
