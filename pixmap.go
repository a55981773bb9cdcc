package bintje

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// Compile-time interface check.
var _ image.Image = (*Pixmap)(nil)

// Pixmap is a premultiplied RGBA8 pixel buffer, the framebuffer format of
// the CPU fine rasterizer. It implements image.Image, making it compatible
// with Go's standard image ecosystem.
type Pixmap struct {
	width  int
	height int
	pixels []PremulRGBA8
}

// NewPixmap creates a transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		pixels: make([]PremulRGBA8, width*height),
	}
}

// Width returns the width of the pixmap in pixels.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap in pixels.
func (p *Pixmap) Height() int {
	return p.height
}

// Pixels returns the raw premultiplied pixel data in row-major order.
func (p *Pixmap) Pixels() []PremulRGBA8 {
	return p.pixels
}

// Pixel returns the premultiplied color at (x, y). Out-of-bounds
// coordinates return transparent black.
func (p *Pixmap) Pixel(x, y int) PremulRGBA8 {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return PremulRGBA8{}
	}
	return p.pixels[y*p.width+x]
}

// Fill sets every pixel to the given premultiplied color.
func (p *Pixmap) Fill(c PremulRGBA8) {
	for i := range p.pixels {
		p.pixels[i] = c
	}
}

// Rasterize executes a command stream into the pixmap using the CPU fine
// rasterizer. The pixmap dimensions must match the renderer's canvas.
func (p *Pixmap) Rasterize(commands Commands) error {
	return RasterizeCPU(uint16(p.width), uint16(p.height), p.pixels, commands.AlphaMasks, commands.WideTiles)
}

// ColorModel implements image.Image.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// At implements image.Image. color.RGBA is alpha-premultiplied, matching
// the pixmap's storage, so no conversion happens.
func (p *Pixmap) At(x, y int) color.Color {
	return p.Pixel(x, y).Color()
}

// ScaleTo scales the pixmap into dst using a Catmull-Rom kernel. This is
// the downsampling half of the supersampled rendering path: render at an
// integer multiple of the target size, then scale down.
func (p *Pixmap) ScaleTo(dst *Pixmap) {
	dstImg := image.NewRGBA(dst.Bounds())
	draw.CatmullRom.Scale(dstImg, dstImg.Bounds(), p, p.Bounds(), draw.Src, nil)
	for y := 0; y < dst.height; y++ {
		for x := 0; x < dst.width; x++ {
			i := dstImg.PixOffset(x, y)
			dst.pixels[y*dst.width+x] = PremulRGBA8{
				R: dstImg.Pix[i],
				G: dstImg.Pix[i+1],
				B: dstImg.Pix[i+2],
				A: dstImg.Pix[i+3],
			}
		}
	}
}

// SavePNG writes the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
