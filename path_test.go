package bintje

import "testing"

func TestPathBuilderVerbs(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 2).LineTo(3, 4).QuadTo(5, 6, 7, 8).CubicTo(9, 10, 11, 12, 13, 14).Close()

	var got []PathVerb
	var points []Point
	p.walk(
		func(pt Point) { got = append(got, VerbMoveTo); points = append(points, pt) },
		func(pt Point) { got = append(got, VerbLineTo); points = append(points, pt) },
		func(c, end Point) { got = append(got, VerbQuadTo); points = append(points, c, end) },
		func(c1, c2, end Point) { got = append(got, VerbCubicTo); points = append(points, c1, c2, end) },
		func() { got = append(got, VerbClose) },
	)

	want := []PathVerb{VerbMoveTo, VerbLineTo, VerbQuadTo, VerbCubicTo, VerbClose}
	if len(got) != len(want) {
		t.Fatalf("got %d verbs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("verb %d = %v, want %v", i, got[i], want[i])
		}
	}
	if points[0] != Pt(1, 2) || points[len(points)-1] != Pt(13, 14) {
		t.Errorf("points misrouted: %v", points)
	}
}

func TestPathReset(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 1).LineTo(2, 2)
	p.Reset()
	if !p.IsEmpty() {
		t.Error("path not empty after Reset")
	}
}

func TestRectPathIsClosed(t *testing.T) {
	p := Rect(0, 0, 4, 4)
	last := p.verbs[len(p.verbs)-1]
	if last != VerbClose {
		t.Errorf("rect path ends with %v, want Close", last)
	}
	if p.cursor != p.start {
		t.Error("cursor not back at subpath start")
	}
}

func TestCirclePathBounds(t *testing.T) {
	p := Circle(Pt(10, 10), 5)
	for _, pt := range p.points {
		if pt.X < 4.9 || pt.X > 15.1 || pt.Y < 4.9 || pt.Y > 15.1 {
			t.Errorf("circle control point %v outside expected bounds", pt)
		}
	}
}

func TestVerbPointCount(t *testing.T) {
	tests := []struct {
		verb PathVerb
		want int
	}{
		{VerbMoveTo, 1},
		{VerbLineTo, 1},
		{VerbQuadTo, 2},
		{VerbCubicTo, 3},
		{VerbClose, 0},
	}
	for _, tt := range tests {
		if got := tt.verb.PointCount(); got != tt.want {
			t.Errorf("PointCount(%v) = %d, want %d", tt.verb, got, tt.want)
		}
	}
}
