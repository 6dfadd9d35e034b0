// Package cubemap decomposes an unfolded-cube "net" image into a six-layer
// cubemap strip.
//
// A net holds six square faces in a cross layout on a uniform padding color:
//
//	            [+Y]
//	  [-Z] [-X] [+Z] [+X]
//	            [-Y]
//
// Decompose infers the padding color, scans for the net edges, validates
// that the independently measured edges agree, and copies the faces into a
// strip of width side and height 6*side in the layer order
// +X, -X, +Y, -Y, +Z, -Z. The strip is ready to be reinterpreted as a
// six-layer array texture.
//
// # Pipeline
//
//  1. DetectBackground: majority vote over 8 fixed sample points.
//  2. FindMeasurements: directional edge scans produce the boundary vectors
//     X (5 values) and Y (4 values).
//  3. MeasureSideLength: the smallest measured interval.
//  4. AssembleStrip: centered side x side crops copied into the strip.
//
// # Coordinate System
//
// Coordinates are 0-based and relative to the image's Bounds().Min, so a
// sub-image produces the same measurements as a standalone copy. X increases
// rightward and Y increases downward. Right and bottom edges returned by the
// scanners are exclusive.
//
// # Error Handling
//
// Every failure is an *Error carrying one of a closed set of kinds. Use
// errors.Is against the Err* sentinels or KindOf to branch on the kind. No
// input, however malformed, causes a panic.
//
// # Thread Safety
//
// All functions are pure over their inputs and may be called concurrently
// on the same or different images. Only the logger installed via SetLogger
// is shared, and it is stored atomically.
package cubemap
