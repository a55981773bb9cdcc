package stroke

import "math"

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float32
}

// Sub returns the difference between two points as a vector.
func (p Point) Sub(q Point) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns the point displaced by a vector.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Lerp performs linear interpolation between two points.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Vec2 represents a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Scale returns the vector scaled by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns the negated vector.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float32 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the 2D cross product (z-component of the 3D cross).
func (v Vec2) Cross(w Vec2) float32 {
	return v.X*w.Y - v.Y*w.X
}

// Length returns the length of the vector.
func (v Vec2) Length() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// LengthSquared returns the squared length of the vector.
func (v Vec2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Perp returns the vector rotated 90 degrees clockwise in a y-down
// coordinate system.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Angle returns the angle of the vector in radians.
func (v Vec2) Angle() float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)))
}

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

// Style defines the stroke expansion parameters.
type Style struct {
	Width      float32
	Cap        LineCap
	Join       LineJoin
	MiterLimit float32
}

// DefaultStyle returns a style matching SVG stroke defaults.
func DefaultStyle() Style {
	return Style{
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
	}
}

// Element represents an element in an input path.
type Element interface {
	isElement()
}

// MoveTo starts a new subpath.
type MoveTo struct{ Point Point }

func (MoveTo) isElement() {}

// LineTo draws a line.
type LineTo struct{ Point Point }

func (LineTo) isElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct{ Control, Point Point }

func (QuadTo) isElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct{ Control1, Control2, Point Point }

func (CubicTo) isElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isElement() {}

// Segment is one oriented line segment of the stroke outline.
type Segment struct {
	P0, P1 Point
}

// SnapDistSq is the squared distance below which successive outline
// endpoints are snapped to an exact shared point, patching tolerance drift
// in stroker output.
const SnapDistSq = 0.2

// Expander converts stroked paths into line-segment outlines.
// The outer offset polyline runs forward, the inner offset polyline is
// reversed, and caps and joins connect them.
type Expander struct {
	style     Style
	tolerance float32

	// Build state: offset polylines of the in-flight subpath.
	forward  []Point
	backward []Point
	output   []Segment

	startPt   Point
	startNorm Vec2
	startTan  Vec2
	lastPt    Point
	lastTan   Vec2
	lastNorm  Vec2

	// Joins with a tangent change below this threshold are skipped.
	joinThresh float32
}

// NewExpander creates a stroke expander with the given style and curve
// flattening tolerance.
func NewExpander(style Style, tolerance float32) *Expander {
	if tolerance <= 0 || math.IsNaN(float64(tolerance)) {
		tolerance = 0.25
	}
	if style.Width <= 0 {
		style.Width = 1
	}
	if style.MiterLimit <= 0 {
		style.MiterLimit = 4
	}
	return &Expander{
		style:      style,
		tolerance:  tolerance,
		joinThresh: 2 * tolerance / style.Width,
	}
}

// Expand converts a stroked path to the line segments of its fill outline.
// A non-zero fill of the returned segments renders the stroke.
func (e *Expander) Expand(elements []Element) []Segment {
	e.output = e.output[:0]
	e.forward = e.forward[:0]
	e.backward = e.backward[:0]

	for _, el := range elements {
		switch elem := el.(type) {
		case MoveTo:
			e.finish()
			e.startPt = elem.Point
			e.lastPt = elem.Point
		case LineTo:
			if elem.Point != e.lastPt {
				tangent := elem.Point.Sub(e.lastPt)
				e.doJoin(tangent)
				e.lastTan = tangent
				e.doLine(tangent, elem.Point)
			}
		case QuadTo:
			e.flattenQuad(e.lastPt, elem.Control, elem.Point)
		case CubicTo:
			e.flattenCubic(e.lastPt, elem.Control1, elem.Control2, elem.Point)
		case Close:
			if e.lastPt != e.startPt {
				tangent := e.startPt.Sub(e.lastPt)
				e.doJoin(tangent)
				e.lastTan = tangent
				e.doLine(tangent, e.startPt)
			}
			e.finishClosed()
		}
	}

	e.finish()
	return e.output
}

// doJoin connects the offset polylines across the corner at the current
// point before a new segment with tangent tan0 starts.
func (e *Expander) doJoin(tan0 Vec2) {
	scale := 0.5 * e.style.Width / tan0.Length()
	norm := tan0.Perp().Scale(scale)
	p0 := e.lastPt

	if len(e.forward) == 0 {
		e.forward = append(e.forward, p0.Add(norm.Neg()))
		e.backward = append(e.backward, p0.Add(norm))
		e.startTan = tan0
		e.startNorm = norm
		return
	}

	ab := e.lastTan
	cd := tan0
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := float32(math.Hypot(float64(cross), float64(dot)))

	// Skip the join when the tangent barely changes, but still connect the
	// polylines so cardinal points of flattened circles stay watertight.
	if dot > 0 && absf32(cross) < hypot*e.joinThresh {
		e.forward = append(e.forward, p0.Add(norm.Neg()))
		e.backward = append(e.backward, p0.Add(norm))
		return
	}

	switch e.style.Join {
	case LineJoinBevel:
		e.forward = append(e.forward, p0.Add(norm.Neg()))
		e.backward = append(e.backward, p0.Add(norm))
	case LineJoinMiter:
		e.miterJoin(p0, norm, ab, cd, cross, dot, hypot)
	case LineJoinRound:
		e.roundJoin(p0, norm, cross, dot)
	}
}

// miterJoin extends the outer corner to the miter point when the miter
// limit allows, falling back to a bevel otherwise.
func (e *Expander) miterJoin(p0 Point, norm, ab, cd Vec2, cross, dot, hypot float32) {
	miterLimitSq := e.style.MiterLimit * e.style.MiterLimit
	if 2*hypot < (hypot+dot)*miterLimitSq && cross != 0 {
		lastScale := 0.5 * e.style.Width / ab.Length()
		lastNorm := ab.Perp().Scale(lastScale)
		if cross > 0 {
			fpLast := p0.Add(lastNorm.Neg())
			fpThis := p0.Add(norm.Neg())
			h := ab.Cross(fpThis.Sub(fpLast)) / cross
			e.forward = append(e.forward, fpThis.Add(cd.Scale(-h)))
			e.backward = append(e.backward, p0)
		} else {
			fpLast := p0.Add(lastNorm)
			fpThis := p0.Add(norm)
			h := ab.Cross(fpThis.Sub(fpLast)) / cross
			e.backward = append(e.backward, fpThis.Add(cd.Scale(-h)))
			e.forward = append(e.forward, p0)
		}
	}
	e.forward = append(e.forward, p0.Add(norm.Neg()))
	e.backward = append(e.backward, p0.Add(norm))
}

// roundJoin arcs the outer corner around the current point.
func (e *Expander) roundJoin(p0 Point, norm Vec2, cross, dot float32) {
	lastScale := 0.5 * e.style.Width / e.lastTan.Length()
	lastNorm := e.lastTan.Perp().Scale(lastScale)

	angle := float32(math.Atan2(float64(cross), float64(dot)))
	if angle > 0 {
		// Outer corner on the forward side.
		e.backward = append(e.backward, p0.Add(norm))
		e.forward = e.arcPoints(e.forward, p0, lastNorm.Neg(), angle)
		e.forward = append(e.forward, p0.Add(norm.Neg()))
	} else {
		// Outer corner on the backward side.
		e.forward = append(e.forward, p0.Add(norm.Neg()))
		e.backward = e.arcPoints(e.backward, p0, lastNorm, angle)
		e.backward = append(e.backward, p0.Add(norm))
	}
}

// doLine extends both offset polylines along a segment ending at p1.
func (e *Expander) doLine(tangent Vec2, p1 Point) {
	scale := 0.5 * e.style.Width / tangent.Length()
	norm := tangent.Perp().Scale(scale)
	e.forward = append(e.forward, p1.Add(norm.Neg()))
	e.backward = append(e.backward, p1.Add(norm))
	e.lastPt = p1
	e.lastNorm = norm
}

// finish completes an open subpath with end caps and emits its outline.
func (e *Expander) finish() {
	if len(e.forward) == 0 {
		return
	}

	loop := make([]Point, 0, len(e.forward)+len(e.backward)+8)
	loop = append(loop, e.forward...)

	// End cap: connect the forward end around to the backward end.
	loop = e.capPoints(loop, e.lastPt, e.lastNorm.Neg())

	for i := len(e.backward) - 1; i >= 0; i-- {
		loop = append(loop, e.backward[i])
	}

	// Start cap: connect the backward start around to the forward start.
	loop = e.capPoints(loop, e.startPt, e.startNorm)

	e.emitLoop(loop)
	e.forward = e.forward[:0]
	e.backward = e.backward[:0]
}

// finishClosed completes a closed subpath: the outer offset becomes one
// loop and the reversed inner offset another, so a non-zero fill leaves
// the interior of the ring empty.
func (e *Expander) finishClosed() {
	if len(e.forward) == 0 {
		return
	}

	e.doJoin(e.startTan)
	e.emitLoop(e.forward)

	reversed := make([]Point, 0, len(e.backward))
	for i := len(e.backward) - 1; i >= 0; i-- {
		reversed = append(reversed, e.backward[i])
	}
	e.emitLoop(reversed)

	e.forward = e.forward[:0]
	e.backward = e.backward[:0]
}

// capPoints appends the cap outline at center. The normal points from the
// center toward the outline point the cap starts at; the cap ends at the
// mirrored point.
func (e *Expander) capPoints(loop []Point, center Point, norm Vec2) []Point {
	switch e.style.Cap {
	case LineCapRound:
		loop = e.arcPoints(loop, center, norm, math.Pi)
	case LineCapSquare:
		// Corners of the square extension beyond the endpoint.
		perp := norm.Perp()
		loop = append(loop,
			center.Add(norm).Add(perp),
			center.Add(norm.Neg()).Add(perp),
		)
	case LineCapButt:
		// The direct connection drawn by the surrounding loop.
	}
	return loop
}

// arcPoints appends a polyline approximation of an arc around center,
// starting at center+norm and sweeping by the given angle. The final point
// (the rotated norm) is included; the start point is not.
func (e *Expander) arcPoints(loop []Point, center Point, norm Vec2, sweep float32) []Point {
	radius := norm.Length()
	if radius <= 0 {
		return loop
	}
	// Chord flattening: step angle for which the sagitta stays below the
	// tolerance.
	maxStep := 2 * float32(math.Acos(math.Max(0, 1-float64(e.tolerance)/float64(radius))))
	n := 1
	if maxStep > 1e-4 {
		n = int(ceil32(absf32(sweep) / maxStep))
		if n < 1 {
			n = 1
		}
		if n > 64 {
			n = 64
		}
	}
	a0 := norm.Angle()
	step := sweep / float32(n)
	for i := 1; i <= n; i++ {
		sin, cos := math.Sincos(float64(a0 + step*float32(i)))
		loop = append(loop, Point{
			X: center.X + radius*float32(cos),
			Y: center.Y + radius*float32(sin),
		})
	}
	return loop
}

// emitLoop converts a closed polyline into output segments, dropping
// degenerate zero-length edges.
func (e *Expander) emitLoop(loop []Point) {
	if len(loop) < 2 {
		return
	}
	prev := loop[0]
	for _, pt := range loop[1:] {
		if pt.Sub(prev).LengthSquared() < 1e-12 {
			continue
		}
		e.output = append(e.output, Segment{P0: prev, P1: pt})
		prev = pt
	}
	if prev != loop[0] {
		e.output = append(e.output, Segment{P0: prev, P1: loop[0]})
	}
}

// flattenQuad lowers a quadratic to joined line segments.
func (e *Expander) flattenQuad(p0, c, p2 Point) {
	e.flattenQuadRec(p0, c, p2, 0)
}

func (e *Expander) flattenQuadRec(p0, p1, p2 Point, depth int) {
	if depth >= 16 || distanceToLine(p1, p0, p2) < e.tolerance {
		if p2 != e.lastPt {
			tangent := p2.Sub(e.lastPt)
			e.doJoin(tangent)
			e.lastTan = tangent
			e.doLine(tangent, p2)
		}
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	mid := q0.Lerp(q1, 0.5)
	e.flattenQuadRec(p0, q0, mid, depth+1)
	e.flattenQuadRec(mid, q1, p2, depth+1)
}

// flattenCubic lowers a cubic to joined line segments.
func (e *Expander) flattenCubic(p0, c1, c2, p3 Point) {
	e.flattenCubicRec(p0, c1, c2, p3, 0)
}

func (e *Expander) flattenCubicRec(p0, p1, p2, p3 Point, depth int) {
	d := maxf32(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= 16 || d < e.tolerance {
		if p3 != e.lastPt {
			tangent := p3.Sub(e.lastPt)
			e.doJoin(tangent)
			e.lastTan = tangent
			e.doLine(tangent, p3)
		}
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	e.flattenCubicRec(p0, q0, r0, s, depth+1)
	e.flattenCubicRec(s, r1, q2, p3, depth+1)
}

// distanceToLine calculates the perpendicular distance from point p to the
// line segment (a, b).
func distanceToLine(p, a, b Point) float32 {
	ab := b.Sub(a)
	lenSq := ab.LengthSquared()
	if lenSq < 1e-12 {
		return p.Sub(a).Length()
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return p.Sub(closest).Length()
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func ceil32(v float32) float32 {
	return float32(math.Ceil(float64(v)))
}
