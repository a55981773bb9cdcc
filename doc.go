// Package bintje is an experimental 2D vector-graphics rasterizer built
// around sparse, tile-based, analytic-coverage rasterization.
//
// Paths are flattened to line segments, binned into 4×4 pixel tiles, merged
// into row-local strips carrying per-pixel signed-area coverage, and finally
// compiled into per-wide-tile draw command lists. The command lists, together
// with the global alpha-mask pool, form the contract consumed by fine
// rasterizers: the CPU reference implementation in this package
// ([RasterizeCPU]) or the GPU consumer in backend/wgpu.
//
// The pipeline runs entirely in memory and is single-threaded:
//
//	path → flatten → lines → tile rows → strips → wide-tile commands → pixels
//
// A minimal session:
//
//	r, _ := bintje.New(128, 128)
//	r.Fill(bintje.Rect(25, 15, 110, 120), bintje.Solid(bintje.RGB(0, 0, 1)))
//	pm := bintje.NewPixmap(128, 128)
//	_ = pm.Rasterize(r.Commands())
//	_ = pm.SavePNG("out.png")
//
// Geometry to the left of the viewport is never tiled; its winding and
// fractional coverage are folded into per-row accounting, which keeps the
// command stream sparse while staying exact at the x=0 boundary.
package bintje
