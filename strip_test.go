package bintje

import "testing"

// stripScene runs the geometry pipeline up to strip generation.
func stripScene(lines []Line, nRows, widthTiles int) ([]Strip, []uint8) {
	rows := make([]TileRow, nRows)
	generateTiles(lines, rows, widthTiles)
	sortTileRows(rows)
	var alphas []uint8
	var strips []Strip
	generateStrips(lines, rows, &alphas, &strips)
	return strips, alphas
}

// twoSquares builds two 4px squares in the first tile row, far enough
// apart to force two strips.
func twoSquares() []Line {
	square := func(x0 float32) []Line {
		return []Line{
			{Pt(x0, 0), Pt(x0+4, 0)},
			{Pt(x0+4, 0), Pt(x0+4, 4)},
			{Pt(x0+4, 4), Pt(x0, 4)},
			{Pt(x0, 4), Pt(x0, 0)},
		}
	}
	return append(square(2), square(42)...)
}

func TestStripOrderingAndGaps(t *testing.T) {
	strips, _ := stripScene(twoSquares(), 1, 16)
	if len(strips) < 2 {
		t.Fatalf("got %d strips, want at least 2", len(strips))
	}
	for i := 1; i < len(strips); i++ {
		prev, cur := strips[i-1], strips[i]
		if cur.Y < prev.Y || (cur.Y == prev.Y && cur.X < prev.X) {
			t.Errorf("strips out of order at %d: %+v then %+v", i, prev, cur)
		}
		if cur.Y == prev.Y && prev.X+prev.Width+1 > cur.X {
			t.Errorf("strips %d and %d not separated by a gap: %+v, %+v", i-1, i, prev, cur)
		}
	}
}

func TestStripAlphaIndexContiguity(t *testing.T) {
	strips, alphas := stripScene(twoSquares(), 1, 16)
	var want uint32
	for i, strip := range strips {
		if strip.AlphaIdx != want {
			t.Errorf("strip %d: alpha idx %d, want %d", i, strip.AlphaIdx, want)
		}
		want += uint32(strip.Width) * TileWidth * TileHeight
	}
	if uint32(len(alphas)) != want {
		t.Errorf("alpha pool holds %d bytes, strips own %d", len(alphas), want)
	}
}

func TestStripGapCoverageZeroBetweenClosedShapes(t *testing.T) {
	strips, _ := stripScene(twoSquares(), 1, 16)
	last := strips[len(strips)-1]
	// The second square starts past the first one's closed outline, so
	// the coverage at its left edge must be zero.
	if last.PixelCoverage != [TileHeight]uint8{} {
		t.Errorf("gap coverage = %v, want all zero", last.PixelCoverage)
	}
}

func TestStripInteriorCoverageSaturates(t *testing.T) {
	// Two nested squares wound the same way: interior winding reaches 2
	// but alpha must stay at 255.
	lines := []Line{
		{Pt(2, 0), Pt(14, 0)},
		{Pt(14, 0), Pt(14, 4)},
		{Pt(14, 4), Pt(2, 4)},
		{Pt(2, 4), Pt(2, 0)},
		{Pt(4, 0), Pt(12, 0)},
		{Pt(12, 0), Pt(12, 4)},
		{Pt(12, 4), Pt(4, 4)},
		{Pt(4, 4), Pt(4, 0)},
	}
	_, alphas := stripScene(lines, 1, 4)
	if len(alphas) == 0 {
		t.Fatal("no alpha bytes emitted")
	}
	var saw255 bool
	for _, a := range alphas {
		saw255 = saw255 || a == 255
	}
	if !saw255 {
		t.Error("expected fully covered pixels in nested squares")
	}
}

func TestStripEmptyRowsShortCircuit(t *testing.T) {
	strips, alphas := stripScene(nil, 4, 16)
	if len(strips) != 0 || len(alphas) != 0 {
		t.Errorf("empty input produced %d strips, %d alpha bytes", len(strips), len(alphas))
	}
}

func TestStripLeftViewportSeedsCoverage(t *testing.T) {
	// Fill crossing the left viewport edge: a rectangle from x=-8 to x=6
	// over the full row height. The first strip's coverage and alphas must
	// reflect the off-screen part exactly.
	lines := []Line{
		{Pt(-8, 0), Pt(6, 0)},
		{Pt(6, 0), Pt(6, 4)},
		{Pt(6, 4), Pt(-8, 4)},
		{Pt(-8, 4), Pt(-8, 0)},
	}
	strips, alphas := stripScene(lines, 1, 8)
	if len(strips) == 0 {
		t.Fatal("no strips generated")
	}
	// Only the right edge emits tiles (column 1); the left edge lives in
	// the row accounting, which the first strip's coverage must carry.
	first := strips[0]
	if first.X != 1 {
		t.Fatalf("first strip at column %d, want 1", first.X)
	}
	if first.PixelCoverage != [TileHeight]uint8{255, 255, 255, 255} {
		t.Errorf("first strip coverage = %v, want full", first.PixelCoverage)
	}
	// The strip's first pixel column (x=4) is interior: fully covered.
	if alphas[first.AlphaIdx] != 255 {
		t.Errorf("pixel (4,0) alpha = %d, want 255", alphas[first.AlphaIdx])
	}
}
