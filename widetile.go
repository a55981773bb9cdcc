package bintje

// Command is one drawing operation of a wide tile's command list.
// This is a sealed interface; the variants are [Sample], [SparseFill],
// [SparseSample] and the reserved [PushClip] and [PopClip].
type Command interface {
	isCommand()
}

// Sample is an alpha-masked fill spanning whole tiles.
type Sample struct {
	// X is the offset within the wide tile, in tiles.
	X uint16
	// Width is the width of the area to be filled, in tiles.
	Width uint16
	Color PremulRGBA8
	// AlphaIdx indexes the global alpha-mask pool, encoding the pixel
	// coverage of the area to be filled.
	AlphaIdx uint32
}

func (Sample) isCommand() {}

// SparseFill is an opaque fill between two strips: every pixel of the span
// is fully covered, modulated only by the color's alpha.
type SparseFill struct {
	X     uint16
	Width uint16
	Color PremulRGBA8
}

func (SparseFill) isCommand() {}

// SparseSample fills a gap between strips whose coverage is non-zero but
// not full. Every tile column of the span shares the same per-sub-row
// alpha column.
type SparseSample struct {
	X           uint16
	Width       uint16
	Color       PremulRGBA8
	AlphaColumn [TileHeight]uint8
}

func (SparseSample) isCommand() {}

// PushClip is reserved for clipping; it is not yet emitted.
type PushClip struct{}

func (PushClip) isCommand() {}

// PopClip is reserved for clipping; it is not yet emitted.
type PopClip struct{}

func (PopClip) isCommand() {}

// WideTile holds the ordered draw commands of one 128x4 pixel region.
type WideTile struct {
	Commands []Command
}

// Commands is the output contract of the pipeline: wide tiles in row-major
// order plus the alpha-mask pool their Sample commands index into. It
// borrows the renderer's buffers; it stays valid until the next pipeline
// call.
type Commands struct {
	WideTiles  []WideTile
	AlphaMasks []uint8
}

func allZero(b []uint8) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// generateWideTileCommands compiles strips into per-wide-tile command
// lists. Gaps between strips (and from the row start to its first strip)
// are filled according to the following strip's left-edge coverage.
func generateWideTileCommands(width uint16, wideTiles []WideTile, strips []Strip, alphaMasks []uint8, brush Brush) {
	color := brushColor(brush)
	wideCols := (int(width) + WideTileWidthPx - 1) / WideTileWidthPx
	wideRows := len(wideTiles) / wideCols

	prevY := uint16(sentinelX)
	prevRight := uint16(0)

	for _, strip := range strips {
		if int(strip.Y) >= wideRows {
			break
		}
		if strip.Y != prevY {
			prevY = strip.Y
			prevRight = 0
		}

		// Between-strip fill, driven by the coverage at this strip's left
		// edge.
		if !allZero(strip.PixelCoverage[:]) && prevRight < strip.X {
			full := true
			for _, v := range strip.PixelCoverage {
				if v != 255 {
					full = false
					break
				}
			}
			emitSpans(wideTiles, wideCols, strip.Y, prevRight, strip.X, func(wt *WideTile, xs, w uint16) {
				if full {
					wt.Commands = append(wt.Commands, SparseFill{X: xs, Width: w, Color: color})
				} else {
					wt.Commands = append(wt.Commands, SparseSample{
						X: xs, Width: w, Color: color, AlphaColumn: strip.PixelCoverage,
					})
				}
			})
		}

		// The strip itself, split across wide tiles. The alpha index
		// advances over skipped windows too; the strip owns its bytes.
		alphaIdx := strip.AlphaIdx
		emitSpans(wideTiles, wideCols, strip.Y, strip.X, strip.X+strip.Width, func(wt *WideTile, xs, w uint16) {
			window := alphaMasks[alphaIdx : alphaIdx+uint32(w)*TileWidth*TileHeight]
			if !allZero(window) {
				wt.Commands = append(wt.Commands, Sample{
					X: xs, Width: w, Color: color, AlphaIdx: alphaIdx,
				})
			}
			alphaIdx += uint32(w) * TileWidth * TileHeight
		})

		prevRight = strip.X + strip.Width
	}
}

// emitSpans splits the tile span [x0, x1) across the wide tiles it
// overlaps and calls emit with each wide-tile-local sub-span.
func emitSpans(wideTiles []WideTile, wideCols int, y uint16, x0, x1 uint16, emit func(wt *WideTile, xs, w uint16)) {
	for wtx := int(x0) / WideTileWidthTiles; wtx <= (int(x1)-1)/WideTileWidthTiles; wtx++ {
		if wtx >= wideCols {
			break
		}
		base := wtx * WideTileWidthTiles
		xs := 0
		if int(x0) > base {
			xs = int(x0) - base
		}
		xe := WideTileWidthTiles
		if int(x1) < base+WideTileWidthTiles {
			xe = int(x1) - base
		}
		if xe <= xs {
			continue
		}
		wt := &wideTiles[int(y)*wideCols+wtx]
		emit(wt, uint16(xs), uint16(xe-xs))
	}
}
