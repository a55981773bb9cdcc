package bintje

// Line is an oriented line segment. The direction from P0 to P1 determines
// the winding sign: a line moving upward (decreasing y) contributes +1 to
// the winding of a leftward ray that crosses it, a line moving downward
// contributes -1.
type Line struct {
	P0, P1 Point
}

// windingSign returns +1 for upward lines, -1 for downward lines and 0 for
// horizontal lines.
func (l Line) windingSign() int32 {
	switch {
	case l.P0.Y > l.P1.Y:
		return 1
	case l.P0.Y < l.P1.Y:
		return -1
	default:
		return 0
	}
}
