// Package stroke expands stroked paths into line-segment outlines.
//
// The expansion follows the kurbo/tiny-skia pattern: an outer offset
// polyline runs forward, an inner offset polyline is reversed, caps connect
// the endpoints and joins connect the segments. Curves are flattened before
// offsetting, so the result is a sequence of oriented line segments that a
// non-zero fill of the outline renders as the stroke.
//
// The package keeps its own small geometry types to avoid an import cycle
// with the renderer.
package stroke
