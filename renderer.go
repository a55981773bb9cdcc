package bintje

import (
	"time"

	"github.com/gogpu/bintje/internal/stroke"
)

// transformState is one entry of the transform stack: the composed affine
// together with its uniform scale, which drives the flattening tolerance.
type transformState struct {
	matrix Matrix
	scale  float32
}

// clipState is reserved for clipping. The stack exists so the data model
// is stable; no semantics are defined yet.
type clipState struct{}

// Stats holds per-stage durations of the geometry pipeline, accumulated
// across submissions until [Renderer.Clear].
type Stats struct {
	FlattenTime       time.Duration
	StrokeFlattenTime time.Duration
	TileTime          time.Duration
	SortTime          time.Duration
	StripTime         time.Duration
}

// Renderer is the main render context. It owns every scratch buffer of the
// pipeline and the accumulated wide-tile command lists.
//
// A Renderer is exclusively owned by its caller: no method may be called
// concurrently with another. The command stream returned by
// [Renderer.Commands] may be consumed concurrently as long as no pipeline
// call runs in parallel.
type Renderer struct {
	width  uint16
	height uint16

	widthTiles int
	wideCols   int
	wideRows   int

	// Accumulated output, reset by Clear.
	wideTiles  []WideTile
	alphaMasks []uint8

	// Per-path scratch buffers, cleared at the start of each submission.
	lines  []Line
	rows   []TileRow
	strips []Strip

	// Stroke element scratch, reused across submissions.
	strokeBuf []stroke.Element

	stack   []transformState
	current transformState

	clipStack []clipState

	stats Stats
}

// New creates a renderer targeting a canvas of the given pixel size.
func New(width, height uint16) (*Renderer, error) {
	if width == 0 || height == 0 {
		return nil, ErrInvalidDimensions
	}
	wideCols := (int(width) + WideTileWidthPx - 1) / WideTileWidthPx
	wideRows := (int(height) + TileHeight - 1) / TileHeight
	return &Renderer{
		width:      width,
		height:     height,
		widthTiles: (int(width) + TileWidth - 1) / TileWidth,
		wideCols:   wideCols,
		wideRows:   wideRows,
		wideTiles:  make([]WideTile, wideCols*wideRows),
		alphaMasks: make([]uint8, 0, 65536),
		lines:      make([]Line, 0, 512),
		rows:       make([]TileRow, wideRows),
		strips:     make([]Strip, 0, 64),
		stack:      make([]transformState, 0, 16),
		current:    transformState{matrix: Identity(), scale: 1},
		clipStack:  make([]clipState, 0, 16),
	}, nil
}

// Size returns the canvas size in pixels as (width, height).
func (r *Renderer) Size() (uint16, uint16) {
	return r.width, r.height
}

// PushTransform composes the given transform onto the current one and
// pushes the previous state. Geometry submitted afterwards is transformed
// by current ∘ m.
func (r *Renderer) PushTransform(m Matrix) {
	r.stack = append(r.stack, r.current)
	composed := r.current.matrix.Multiply(m)
	r.current = transformState{
		matrix: composed,
		scale:  composed.UniformScale(),
	}
}

// Transform returns the current composed transform.
func (r *Renderer) Transform() Matrix {
	return r.current.matrix
}

// PopTransform restores the transform state from before the matching
// PushTransform. Popping an empty stack is a no-op.
func (r *Renderer) PopTransform() {
	if n := len(r.stack); n > 0 {
		r.current = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
}

// tolerance is the flattening tolerance in path space. Dividing by the
// uniform scale keeps the screen-space error below a quarter pixel
// regardless of zoom. Degenerate (zero-scale) transforms are clamped so
// the tolerance stays finite.
func (r *Renderer) tolerance() float32 {
	scale := r.current.scale
	if !(scale > 1e-6) {
		scale = 1e-6
	}
	return defaultTolerance / scale
}

// Fill fills a shape defined by path with the given brush (currently only
// solid colors render; other brush variants fall back to a debug color).
//
// This runs the pipeline end to end and appends the resulting draw
// commands to the wide tiles.
func (r *Renderer) Fill(path *Path, brush Brush) error {
	r.beginPath()
	start := time.Now()
	flattenPath(path, r.current.matrix, r.tolerance(), &r.lines)
	r.stats.FlattenTime += time.Since(start)
	return r.finishPath(brush)
}

// Stroke strokes a path with the given stroke style and brush.
//
// The stroke is expanded to a line outline by the analytic stroker and
// then rendered through the same pipeline as fills.
func (r *Renderer) Stroke(path *Path, style Stroke, brush Brush) error {
	r.beginPath()
	start := time.Now()
	r.strokeBuf = strokeElements(path, r.strokeBuf)
	strokeLines(r.strokeBuf, style, r.current.matrix, r.tolerance(), &r.lines)
	r.stats.StrokeFlattenTime += time.Since(start)
	return r.finishPath(brush)
}

// beginPath resets the per-path scratch buffers, keeping capacity.
func (r *Renderer) beginPath() {
	r.lines = r.lines[:0]
	for i := range r.rows {
		r.rows[i].reset()
	}
	r.strips = r.strips[:0]
}

// finishPath drives tiling, strip generation and command generation over
// the flattened lines.
func (r *Renderer) finishPath(brush Brush) error {
	if uint64(len(r.lines)) > uint64(^uint32(0)) {
		return ErrTooManyLines
	}

	start := time.Now()
	generateTiles(r.lines, r.rows, r.widthTiles)
	now := time.Now()
	r.stats.TileTime += now.Sub(start)

	sortTileRows(r.rows)
	start, now = now, time.Now()
	r.stats.SortTime += now.Sub(start)

	generateStrips(r.lines, r.rows, &r.alphaMasks, &r.strips)
	r.stats.StripTime += time.Since(now)

	generateWideTileCommands(r.width, r.wideTiles, r.strips, r.alphaMasks, brush)
	return nil
}

// Commands returns the generated draw commands: the wide tiles in
// row-major order and the alpha-mask pool they index. The slices borrow
// the renderer's buffers.
func (r *Renderer) Commands() Commands {
	return Commands{
		WideTiles:  r.wideTiles,
		AlphaMasks: r.alphaMasks,
	}
}

// Stats returns the accumulated pipeline timings.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Clear resets the scene: command lists, alpha pool, transform stack and
// timings. Buffer capacities are retained so a cleared renderer re-renders
// without reallocating.
func (r *Renderer) Clear() {
	for i := range r.wideTiles {
		r.wideTiles[i].Commands = r.wideTiles[i].Commands[:0]
	}
	r.alphaMasks = r.alphaMasks[:0]
	r.stack = r.stack[:0]
	r.current = transformState{matrix: Identity(), scale: 1}
	r.clipStack = r.clipStack[:0]
	r.stats = Stats{}
}
