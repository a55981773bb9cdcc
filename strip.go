package bintje

// Strip is a maximal horizontal run of adjacent occupied tiles within one
// tile row, the unit of an alpha-masked draw command.
type Strip struct {
	// X, Y are the top-left tile coordinates of the strip.
	X, Y uint16
	// Width is the strip's width in tiles.
	Width uint16
	// PixelCoverage is the per-sub-row coverage at the strip's left edge:
	// the saturated absolute coverage of everything to its left. It
	// determines the color of the gap between the previous strip and this
	// one.
	PixelCoverage [TileHeight]uint8
	// AlphaIdx indexes the strip's Width*TileWidth*TileHeight bytes in the
	// alpha-mask pool. Within the strip, bytes are column-major per tile
	// column.
	AlphaIdx uint32
}

// sentinelX closes the final run of a row sweep.
const sentinelX = 0xFFFF

// coverageToAlpha converts signed fractional coverage to an alpha byte
// under the non-zero fill rule.
func coverageToAlpha(w float32) uint8 {
	return uint8(minf32(absf32(w), 1)*255 + 0.5)
}

func saturateCoverage(w [TileHeight]float32) [TileHeight]uint8 {
	var out [TileHeight]uint8
	for j, v := range w {
		out[j] = coverageToAlpha(v)
	}
	return out
}

// generateStrips sweeps each row's sorted tiles left to right, integrates
// the per-pixel signed area of every tile's line, and merges adjacent
// tiles into strips. Alpha bytes are appended to the mask pool; each strip
// records its offset into it.
func generateStrips(lines []Line, rows []TileRow, alphaMasks *[]uint8, strips *[]Strip) {
	for ry := range rows {
		row := &rows[ry]
		if len(row.Tiles) == 0 {
			continue
		}
		stripRow(lines, row, uint16(ry), alphaMasks, strips)
	}
}

func stripRow(lines []Line, row *TileRow, ry uint16, alphaMasks *[]uint8, strips *[]Strip) {
	tiles := row.Tiles

	// The running integer winding at the sweep position, seeded with the
	// crossings that happened left of the viewport.
	windingDelta := row.Winding

	// Per-pixel accumulated signed coverage of the tile column under the
	// sweep. Coverage from outside-viewport geometry has already crossed
	// every column's left edge, so it seeds all columns.
	var locationWinding [TileWidth][TileHeight]float32
	for x := range locationWinding {
		locationWinding[x] = row.AreaCoverage
	}
	// Per sub-row, the total signed y-delta accumulated so far: the
	// coverage baseline carried into the next column.
	accumulated := row.AreaCoverage

	stripX := tiles[0].X
	pending := saturateCoverage(row.AreaCoverage)
	alphaStart := uint32(len(*alphaMasks))
	prevX := tiles[0].X

	for i := 0; i <= len(tiles); i++ {
		cur := Tile{X: sentinelX}
		if i < len(tiles) {
			cur = tiles[i]
		}

		if i > 0 && prevX < cur.X {
			// Left the column: push its alpha mask and splat the carried
			// coverage as the next column's baseline.
			for x := 0; x < TileWidth; x++ {
				for y := 0; y < TileHeight; y++ {
					*alphaMasks = append(*alphaMasks, coverageToAlpha(locationWinding[x][y]))
				}
				locationWinding[x] = accumulated
			}
		}

		if i > 0 && prevX+1 < cur.X {
			*strips = append(*strips, Strip{
				X:             stripX,
				Y:             ry,
				Width:         prevX - stripX + 1,
				PixelCoverage: pending,
				AlphaIdx:      alphaStart,
			})
			if cur.X == sentinelX {
				break
			}
			// Between strips no geometry crossed the sweep; snap the float
			// accumulation back to the integer winding when it drifted.
			w := float32(windingDelta)
			for j := range accumulated {
				if absf32(accumulated[j]-w) < 1e-3 {
					accumulated[j] = w
					for x := range locationWinding {
						locationWinding[x][j] = w
					}
				}
			}
			stripX = cur.X
			pending = saturateCoverage(accumulated)
			alphaStart = uint32(len(*alphaMasks))
		}

		if i < len(tiles) {
			integrateTile(lines[cur.LineIdx], cur.X, ry, &locationWinding, &accumulated, &windingDelta)
			prevX = cur.X
		}
	}
}

// integrateTile adds the signed trapezoidal area of a line to each of the
// 16 sub-pixels of a tile, and the line's y-delta to the carried coverage.
//
// Conceptually, horizontal rays are shot from left to right. Every time a
// ray crosses a line directed upwards the winding increments; downwards it
// decrements. The fractional coverage of a pixel is the integral of the
// winding within it: the line's y-delta inside a pixel accumulates into
// the pixels to its right, while inside the pixel itself the area right of
// the segment forms a trapezoid.
func integrateTile(
	line Line,
	tileX uint16,
	rowY uint16,
	locationWinding *[TileWidth][TileHeight]float32,
	accumulated *[TileHeight]float32,
	windingDelta *int32,
) {
	ox := float32(tileX) * TileWidth
	oy := float32(rowY) * TileHeight
	p0x := line.P0.X - ox
	p0y := line.P0.Y - oy
	p1x := line.P1.X - ox
	p1y := line.P1.Y - oy

	if p0y == p1y {
		// Horizontal lines contribute neither winding nor area.
		return
	}

	var s float32 = -1
	if p0y > p1y {
		s = 1
	}

	// Order endpoints by ascending y.
	topX, topY, botX, botY := p0x, p0y, p1x, p1y
	if topY > botY {
		topX, topY, botX, botY = p1x, p1y, p0x, p0y
	}
	vertical := topX == botX
	xSlope := (botX - topX) / (botY - topY)

	// The winding delta counts the line's crossing of the row's top edge
	// when the crossing lies within this tile's columns.
	if topY <= 0 && 0 < botY {
		xc := topX
		if !vertical {
			xc = topX + (0-topY)*xSlope
		}
		if xc >= 0 && xc < TileWidth {
			*windingDelta += int32(s)
		}
	}

	for j := 0; j < TileHeight; j++ {
		yPix := float32(j)
		ymin := clampf32(topY, yPix, yPix+1)
		ymax := clampf32(botY, yPix, yPix+1)
		if ymin >= ymax {
			continue
		}

		var acc float32
		for xi := 0; xi < TileWidth; xi++ {
			xl := float32(xi)
			xr := xl + 1

			// y at the pixel's vertical edges, clamped into the line's
			// span within this sub-row.
			var yl, yr float32
			if vertical {
				yl, yr = ymin, ymin
				if xl > topX {
					yl = ymax
				}
				if xr > topX {
					yr = ymax
				}
			} else {
				yl = clampf32(topY+(xl-topX)/xSlope, ymin, ymax)
				yr = clampf32(topY+(xr-topX)/xSlope, ymin, ymax)
			}

			h := absf32(yr - yl)

			// x back on the line at the clamped ys.
			xAtL, xAtR := topX, topX
			if !vertical {
				xAtL = topX + (yl-topY)*xSlope
				xAtR = topX + (yr-topY)*xSlope
			}

			// Trapezoidal area to the right of the segment within the
			// pixel.
			area := 0.5 * h * ((xr - xAtR) + (xr - xAtL))
			locationWinding[xi][j] += acc + s*area
			acc += s * h
		}
		accumulated[j] += acc
	}
}
