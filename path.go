package bintje

// PathVerb represents a path construction command.
type PathVerb uint8

// Path verb constants.
const (
	// VerbMoveTo moves the current point without drawing.
	VerbMoveTo PathVerb = iota
	// VerbLineTo draws a line to the specified point.
	VerbLineTo
	// VerbQuadTo draws a quadratic Bezier curve.
	VerbQuadTo
	// VerbCubicTo draws a cubic Bezier curve.
	VerbCubicTo
	// VerbClose closes the current subpath.
	VerbClose
)

// PointCount returns the number of points this verb consumes.
func (v PathVerb) PointCount() int {
	switch v {
	case VerbMoveTo, VerbLineTo:
		return 1
	case VerbQuadTo:
		return 2
	case VerbCubicTo:
		return 3
	default:
		return 0
	}
}

// Path represents a vector path. It stores path commands (verbs) and
// coordinate data separately for efficient processing.
type Path struct {
	verbs  []PathVerb
	points []Point
	start  Point // start of current subpath, for Close
	cursor Point // current position
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		verbs:  make([]PathVerb, 0, 16),
		points: make([]Point, 0, 32),
	}
}

// Reset clears the path for reuse without deallocating memory.
func (p *Path) Reset() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.start = Point{}
	p.cursor = Point{}
}

// IsEmpty reports whether the path contains no verbs.
func (p *Path) IsEmpty() bool {
	return len(p.verbs) == 0
}

// MoveTo begins a new subpath at the specified point.
func (p *Path) MoveTo(x, y float32) *Path {
	p.verbs = append(p.verbs, VerbMoveTo)
	p.points = append(p.points, Point{X: x, Y: y})
	p.start = Point{X: x, Y: y}
	p.cursor = p.start
	return p
}

// LineTo draws a line from the current point to (x, y).
func (p *Path) LineTo(x, y float32) *Path {
	p.verbs = append(p.verbs, VerbLineTo)
	p.points = append(p.points, Point{X: x, Y: y})
	p.cursor = Point{X: x, Y: y}
	return p
}

// QuadTo draws a quadratic Bezier curve to (x, y) using (cx, cy) as
// control point.
func (p *Path) QuadTo(cx, cy, x, y float32) *Path {
	p.verbs = append(p.verbs, VerbQuadTo)
	p.points = append(p.points, Point{X: cx, Y: cy}, Point{X: x, Y: y})
	p.cursor = Point{X: x, Y: y}
	return p
}

// CubicTo draws a cubic Bezier curve to (x, y) using the two control
// points (c1x, c1y) and (c2x, c2y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) *Path {
	p.verbs = append(p.verbs, VerbCubicTo)
	p.points = append(p.points,
		Point{X: c1x, Y: c1y}, Point{X: c2x, Y: c2y}, Point{X: x, Y: y})
	p.cursor = Point{X: x, Y: y}
	return p
}

// Close closes the current subpath with a line back to its start.
func (p *Path) Close() *Path {
	p.verbs = append(p.verbs, VerbClose)
	p.cursor = p.start
	return p
}

// walk calls the per-verb callbacks for every element of the path.
// Point slices passed to the callbacks alias the path's storage.
func (p *Path) walk(
	moveTo func(Point),
	lineTo func(Point),
	quadTo func(c, end Point),
	cubicTo func(c1, c2, end Point),
	closePath func(),
) {
	i := 0
	for _, v := range p.verbs {
		switch v {
		case VerbMoveTo:
			moveTo(p.points[i])
		case VerbLineTo:
			lineTo(p.points[i])
		case VerbQuadTo:
			quadTo(p.points[i], p.points[i+1])
		case VerbCubicTo:
			cubicTo(p.points[i], p.points[i+1], p.points[i+2])
		case VerbClose:
			closePath()
		}
		i += v.PointCount()
	}
}

// circleKappa is the control-point distance factor approximating a quarter
// circle with one cubic Bezier.
const circleKappa = 0.5522848

// Rect creates a closed rectangular path with the given corner coordinates.
func Rect(x0, y0, x1, y1 float32) *Path {
	p := NewPath()
	p.MoveTo(x0, y0).
		LineTo(x1, y0).
		LineTo(x1, y1).
		LineTo(x0, y1).
		Close()
	return p
}

// Triangle creates a closed triangular path.
func Triangle(a, b, c Point) *Path {
	p := NewPath()
	p.MoveTo(a.X, a.Y).
		LineTo(b.X, b.Y).
		LineTo(c.X, c.Y).
		Close()
	return p
}

// Circle creates a closed circular path approximated by four cubic Beziers.
func Circle(center Point, radius float32) *Path {
	cx, cy, r := center.X, center.Y, radius
	k := r * circleKappa
	p := NewPath()
	p.MoveTo(cx+r, cy).
		CubicTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r).
		CubicTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy).
		CubicTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r).
		CubicTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy).
		Close()
	return p
}
