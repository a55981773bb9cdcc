package bintje

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1] and is not premultiplied.
type RGBA struct {
	R, G, B, A float32
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// WithAlpha returns the color with its alpha replaced.
func (c RGBA) WithAlpha(a float32) RGBA {
	c.A = a
	return c
}

// Premultiply converts the color to 8-bit premultiplied form.
func (c RGBA) Premultiply() PremulRGBA8 {
	a := clampf32(c.A, 0, 1)
	return PremulRGBA8{
		R: uint8(clampf32(c.R, 0, 1)*a*255 + 0.5),
		G: uint8(clampf32(c.G, 0, 1)*a*255 + 0.5),
		B: uint8(clampf32(c.B, 0, 1)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// PremulRGBA8 is an 8-bit-per-channel alpha-premultiplied color, the pixel
// format of the wide-tile command stream and of [Pixmap].
type PremulRGBA8 struct {
	R, G, B, A uint8
}

// Color converts to the standard library's premultiplied color type.
func (c PremulRGBA8) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// mulAlpha scales all components of a premultiplied color by alpha/255.
func mulAlpha(c PremulRGBA8, alpha uint8) PremulRGBA8 {
	a := uint16(alpha)
	return PremulRGBA8{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: uint8(uint16(c.A) * a / 255),
	}
}

// over composites a premultiplied color over another.
func over(under, top PremulRGBA8) PremulRGBA8 {
	inv := uint16(255 - top.A)
	return PremulRGBA8{
		R: uint8((uint16(top.R)*255 + uint16(under.R)*inv) / 255),
		G: uint8((uint16(top.G)*255 + uint16(under.G)*inv) / 255),
		B: uint8((uint16(top.B)*255 + uint16(under.B)*inv) / 255),
		A: uint8((uint16(top.A)*255 + uint16(under.A)*inv) / 255),
	}
}
