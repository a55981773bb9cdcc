package bintje

import "github.com/gogpu/bintje/internal/stroke"

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// Stroke defines the style for stroking paths.
type Stroke struct {
	// Width is the line width in pixels. Default: 1.0
	Width float32

	// Cap is the shape of line endpoints. Default: LineCapButt
	Cap LineCap

	// Join is the shape of line joins. Default: LineJoinMiter
	Join LineJoin

	// MiterLimit is the limit for miter joins before they become bevels.
	// Default: 4.0
	MiterLimit float32
}

// DefaultStroke returns a Stroke with default settings: a solid 1-pixel
// line with butt caps and miter joins.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
	}
}

// WithWidth returns a copy of the Stroke with the given width.
func (s Stroke) WithWidth(w float32) Stroke {
	s.Width = w
	return s
}

// WithCap returns a copy of the Stroke with the given line cap style.
func (s Stroke) WithCap(lineCap LineCap) Stroke {
	s.Cap = lineCap
	return s
}

// WithJoin returns a copy of the Stroke with the given line join style.
func (s Stroke) WithJoin(join LineJoin) Stroke {
	s.Join = join
	return s
}

// strokeElements converts a path into the expander's element stream.
func strokeElements(path *Path, buf []stroke.Element) []stroke.Element {
	buf = buf[:0]
	path.walk(
		func(p Point) {
			buf = append(buf, stroke.MoveTo{Point: stroke.Point(p)})
		},
		func(p Point) {
			buf = append(buf, stroke.LineTo{Point: stroke.Point(p)})
		},
		func(c, end Point) {
			buf = append(buf, stroke.QuadTo{
				Control: stroke.Point(c), Point: stroke.Point(end)})
		},
		func(c1, c2, end Point) {
			buf = append(buf, stroke.CubicTo{
				Control1: stroke.Point(c1),
				Control2: stroke.Point(c2),
				Point:    stroke.Point(end)})
		},
		func() {
			buf = append(buf, stroke.Close{})
		},
	)
	return buf
}

// strokeLines expands a stroked element stream into transformed line
// segments. Successive stroker segments whose endpoints drifted apart by
// less than [stroke.SnapDistSq] are snapped to share an exact endpoint
// before the transform is applied, keeping the outline watertight.
func strokeLines(elements []stroke.Element, style Stroke, transform Matrix, tolerance float32, lines *[]Line) {
	expander := stroke.NewExpander(stroke.Style{
		Width:      style.Width,
		Cap:        stroke.LineCap(style.Cap),
		Join:       stroke.LineJoin(style.Join),
		MiterLimit: style.MiterLimit,
	}, tolerance)

	segments := expander.Expand(elements)
	for i := 1; i < len(segments); i++ {
		p, q := segments[i-1].P1, segments[i].P0
		if p != q && q.Sub(p).LengthSquared() < stroke.SnapDistSq {
			segments[i].P0 = p
		}
	}
	for _, seg := range segments {
		*lines = append(*lines, Line{
			P0: transform.TransformPoint(Point(seg.P0)),
			P1: transform.TransformPoint(Point(seg.P1)),
		})
	}
}
