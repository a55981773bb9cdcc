package bintje

import "sort"

// Tile geometry constants. These are part of the ABI between the geometry
// pipeline and fine-rasterizer consumers, CPU or GPU.
const (
	// TileWidth is the width of a tile in pixels.
	TileWidth = 4
	// TileHeight is the height of a tile in pixels.
	TileHeight = 4
	// WideTileWidthTiles is the number of tiles per wide tile.
	WideTileWidthTiles = 32
	// WideTileWidthPx is the width of a wide tile in pixels.
	WideTileWidthPx = TileWidth * WideTileWidthTiles
)

// Tile records that a line traverses a tile. One entry is emitted per
// line and tile-row intersection; the line itself lives in the shared line
// array of the in-flight path.
type Tile struct {
	// X is the tile column.
	X uint16
	// LineIdx indexes the shared line array.
	LineIdx uint32
}

// TileRow collects the tiles of one horizontal band of TileHeight pixels,
// together with the winding and fractional coverage contributed by all
// geometry fully to the left of the viewport on this band.
//
// Winding and AreaCoverage hold the exact signed integral of path coverage
// for x <= 0 of the band; the tiles carry only the viewport-intersecting
// part. This is what lets the pipeline omit tiles entirely outside the
// viewport while remaining exact.
type TileRow struct {
	// Tiles is sorted ascending by X after tiling.
	Tiles []Tile
	// Winding is the accumulated crossing count of the band's top edge
	// left of x=0.
	Winding int32
	// AreaCoverage is, per pixel sub-row, the signed coverage already
	// accumulated at the viewport's left edge.
	AreaCoverage [TileHeight]float32
}

func (r *TileRow) reset() {
	r.Tiles = r.Tiles[:0]
	r.Winding = 0
	r.AreaCoverage = [TileHeight]float32{}
}

// generateTiles bins every line into the tile rows it traverses and
// accumulates the left-of-viewport winding and coverage per row.
// Rows must be sorted with sortTileRows before strip generation.
func generateTiles(lines []Line, rows []TileRow, widthTiles int) {
	for idx, line := range lines {
		tileLine(line, uint32(idx), rows, widthTiles)
	}
}

// sortTileRows orders each row's tiles ascending by column. The sort is
// stable, so entries within a column keep their source line order.
func sortTileRows(rows []TileRow) {
	for i := range rows {
		tiles := rows[i].Tiles
		sort.SliceStable(tiles, func(a, b int) bool {
			return tiles[a].X < tiles[b].X
		})
	}
}

// tileLine emits the tile entries of a single line and updates the
// per-row left accounting. All arithmetic happens in tile units
// (pixels divided by the tile size).
func tileLine(line Line, lineIdx uint32, rows []TileRow, widthTiles int) {
	x0 := line.P0.X / TileWidth
	y0 := line.P0.Y / TileHeight
	x1 := line.P1.X / TileWidth
	y1 := line.P1.Y / TileHeight
	s := line.windingSign()

	if y0 == y1 {
		// Horizontal lines carry no winding and no coverage. Those lying
		// exactly on a row boundary are dropped; the rest emit zero-area
		// entries the striper tolerates.
		if y0 == floorf32(y0) {
			return
		}
		r := int(floorf32(y0))
		if r < 0 || r >= len(rows) {
			return
		}
		emitRowTiles(&rows[r], minf32(x0, x1), maxf32(x0, x1), widthTiles, lineIdx)
		return
	}

	yMin := minf32(y0, y1)
	yMax := maxf32(y0, y1)
	lineXMin := minf32(x0, x1)
	lineXMax := maxf32(x0, x1)
	xSlope := (x1 - x0) / (y1 - y0)

	r0 := int(floorf32(yMin))
	if r0 < 0 {
		r0 = 0
	}
	r1 := int(ceilf32(yMax)) - 1
	if r1 > len(rows)-1 {
		r1 = len(rows) - 1
	}

	for r := r0; r <= r1; r++ {
		row := &rows[r]
		rowTop := float32(r)
		rowBot := float32(r + 1)
		yTop := maxf32(yMin, rowTop)
		yBot := minf32(yMax, rowBot)
		if yTop >= yBot {
			continue
		}

		// The segment covers y in [yMin, yMax); it crosses the row's top
		// edge exactly when that half-open range contains it.
		crossesTop := yMin <= rowTop && rowTop < yMax

		var xa, xb float32
		if x0 == x1 {
			xa, xb = x0, x0
		} else {
			xa = x0 + (yTop-y0)*xSlope
			xb = x0 + (yBot-y0)*xSlope
		}
		xRowMin := maxf32(minf32(xa, xb), lineXMin)
		xRowMax := minf32(maxf32(xa, xb), lineXMax)

		if xRowMax < 0 {
			// Entirely left of the viewport: no tile entries, exact
			// accounting instead.
			if crossesTop && s != 0 {
				row.Winding += s
			}
			addLeftCoverage(row, s, yTop, yBot, rowTop)
			continue
		}

		if xRowMin < 0 {
			// The line crosses the left viewport edge within this row;
			// fold the portion left of x=0 into the row accounting.
			yAt0 := y0 + (0-x0)*(y1-y0)/(x1-x0)
			yAt0 = clampf32(yAt0, yTop, yBot)
			if xa < 0 {
				addLeftCoverage(row, s, yTop, yAt0, rowTop)
			} else {
				addLeftCoverage(row, s, yAt0, yBot, rowTop)
			}
			// crossesTop implies yTop == rowTop, so xa is the crossing x.
			if crossesTop && s != 0 && xa < 0 {
				row.Winding += s
			}
		}

		emitRowTiles(row, xRowMin, xRowMax, widthTiles, lineIdx)
	}
}

// emitRowTiles appends one entry per tile column in [xMin, xMax], clamped
// to the viewport.
func emitRowTiles(row *TileRow, xMin, xMax float32, widthTiles int, lineIdx uint32) {
	if xMax < 0 {
		return
	}
	tx0 := int(floorf32(xMin))
	if tx0 < 0 {
		tx0 = 0
	}
	tx1 := int(floorf32(xMax))
	if tx1 > widthTiles-1 {
		tx1 = widthTiles - 1
	}
	for tx := tx0; tx <= tx1; tx++ {
		row.Tiles = append(row.Tiles, Tile{X: uint16(tx), LineIdx: lineIdx})
	}
}

// addLeftCoverage adds the signed vertical extent of a left-of-viewport
// line portion to each pixel sub-row it overlaps. Extents are measured in
// tile units; the TileHeight factor converts to full-pixel-width coverage.
func addLeftCoverage(row *TileRow, s int32, yTop, yBot, rowTop float32) {
	if s == 0 || yTop >= yBot {
		return
	}
	for j := 0; j < TileHeight; j++ {
		subTop := rowTop + float32(j)/TileHeight
		subBot := rowTop + float32(j+1)/TileHeight
		ext := minf32(yBot, subBot) - maxf32(yTop, subTop)
		if ext > 0 {
			row.AreaCoverage[j] += float32(s) * ext * TileHeight
		}
	}
}
