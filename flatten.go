package bintje

import "math"

// defaultTolerance is the flattening tolerance, in pixels, at unit scale.
// It keeps screen-space error below a quarter pixel regardless of zoom.
const defaultTolerance = 0.25

// maxFlattenDepth bounds the recursive subdivision of curves.
const maxFlattenDepth = 16

// flattener converts path elements into transformed line segments,
// closing open subpaths the way a fill requires.
type flattener struct {
	transform Matrix
	tolerance float32
	lines     *[]Line

	start   Point // subpath start, in path space
	prev    Point // previous on-curve point, in path space
	started bool
	closed  bool
}

func (f *flattener) emit(from, to Point) {
	*f.lines = append(*f.lines, Line{
		P0: f.transform.TransformPoint(from),
		P1: f.transform.TransformPoint(to),
	})
}

func (f *flattener) moveTo(p Point) {
	if f.started && !f.closed {
		f.emit(f.prev, f.start)
	}
	f.start = p
	f.prev = p
	f.started = true
	f.closed = true
}

func (f *flattener) lineTo(p Point) {
	f.emit(f.prev, p)
	f.prev = p
	f.closed = false
}

func (f *flattener) quadTo(c, end Point) {
	flattenQuad(f.prev, c, end, f.tolerance, f.lineTo)
}

func (f *flattener) cubicTo(c1, c2, end Point) {
	flattenCubic(f.prev, c1, c2, end, f.tolerance, f.lineTo)
}

func (f *flattener) closePath() {
	f.emit(f.prev, f.start)
	f.prev = f.start
	f.closed = true
}

// finish closes a trailing open subpath so the fill is watertight.
func (f *flattener) finish() {
	if f.started && !f.closed && f.prev != f.start {
		f.emit(f.prev, f.start)
	}
}

// flattenPath lowers a path to line segments under the given tolerance,
// applying the transform to every emitted segment. A NaN tolerance falls
// back to the default.
func flattenPath(path *Path, transform Matrix, tolerance float32, lines *[]Line) {
	if math.IsNaN(float64(tolerance)) || tolerance <= 0 {
		tolerance = defaultTolerance
	}
	f := flattener{transform: transform, tolerance: tolerance, lines: lines}
	path.walk(f.moveTo, f.lineTo, f.quadTo, f.cubicTo, f.closePath)
	f.finish()
}

// flattenQuad subdivides a quadratic Bezier until it is flat to within
// tolerance, calling lineTo for each vertex after the start point.
func flattenQuad(p0, p1, p2 Point, tolerance float32, lineTo func(Point)) {
	flattenQuadRec(p0, p1, p2, tolerance*tolerance, 0, lineTo)
}

func flattenQuadRec(p0, p1, p2 Point, tolSq float32, depth int, lineTo func(Point)) {
	if depth >= maxFlattenDepth || quadFlatnessSq(p0, p1, p2) <= tolSq {
		lineTo(p2)
		return
	}
	// de Casteljau split at t = 0.5
	p01 := p0.Add(p1).Mul(0.5)
	p12 := p1.Add(p2).Mul(0.5)
	mid := p01.Add(p12).Mul(0.5)
	flattenQuadRec(p0, p01, mid, tolSq, depth+1, lineTo)
	flattenQuadRec(mid, p12, p2, tolSq, depth+1, lineTo)
}

// flattenCubic subdivides a cubic Bezier until it is flat to within
// tolerance, calling lineTo for each vertex after the start point.
func flattenCubic(p0, p1, p2, p3 Point, tolerance float32, lineTo func(Point)) {
	flattenCubicRec(p0, p1, p2, p3, tolerance*tolerance, 0, lineTo)
}

func flattenCubicRec(p0, p1, p2, p3 Point, tolSq float32, depth int, lineTo func(Point)) {
	if depth >= maxFlattenDepth || cubicFlatnessSq(p0, p1, p2, p3) <= tolSq {
		lineTo(p3)
		return
	}
	p01 := p0.Add(p1).Mul(0.5)
	p12 := p1.Add(p2).Mul(0.5)
	p23 := p2.Add(p3).Mul(0.5)
	p012 := p01.Add(p12).Mul(0.5)
	p123 := p12.Add(p23).Mul(0.5)
	mid := p012.Add(p123).Mul(0.5)
	flattenCubicRec(p0, p01, p012, mid, tolSq, depth+1, lineTo)
	flattenCubicRec(mid, p123, p23, p3, tolSq, depth+1, lineTo)
}

// quadFlatnessSq is the squared distance of the control point from the
// chord midpoint, scaled so it bounds the maximum curve-to-chord error.
func quadFlatnessSq(p0, p1, p2 Point) float32 {
	// The max deviation of a quad from its chord is |p1 - (p0+p2)/2| / 2.
	mx := p1.X - (p0.X+p2.X)*0.5
	my := p1.Y - (p0.Y+p2.Y)*0.5
	return (mx*mx + my*my) * 0.25
}

// cubicFlatnessSq bounds the squared deviation of a cubic from its chord
// using the larger of the two control point deviations.
func cubicFlatnessSq(p0, p1, p2, p3 Point) float32 {
	// Max deviation is bounded by 3/4 of the larger control-net deviation.
	ux := 3*p1.X - 2*p0.X - p3.X
	uy := 3*p1.Y - 2*p0.Y - p3.Y
	vx := 3*p2.X - 2*p3.X - p0.X
	vy := 3*p2.Y - 2*p3.Y - p0.Y
	dx := maxf32(ux*ux, vx*vx)
	dy := maxf32(uy*uy, vy*vy)
	return (dx + dy) * (9.0 / 16.0)
}
