package bintje

// Brush represents what to paint with.
// This is a sealed interface - only types in this package implement it.
//
// Only [SolidBrush] is rendered today. The variants reserved for gradients
// and images exist so that the command generation has a stable extension
// point; the widener paints them with a debug red until they are
// implemented.
type Brush interface {
	// brushMarker is an unexported method that seals this interface.
	brushMarker()
}

// SolidBrush is a single-color brush.
type SolidBrush struct {
	Color RGBA
}

func (SolidBrush) brushMarker() {}

// Solid creates a SolidBrush from an RGBA color.
func Solid(c RGBA) SolidBrush {
	return SolidBrush{Color: c}
}

// GradientBrush is a placeholder for gradient fills. Not yet rendered.
type GradientBrush struct {
	Stops []GradientStop
}

func (GradientBrush) brushMarker() {}

// GradientStop is a color at a position along a gradient.
type GradientStop struct {
	Offset float32
	Color  RGBA
}

// ImageBrush is a placeholder for image fills. Not yet rendered.
type ImageBrush struct {
	Image *Pixmap
}

func (ImageBrush) brushMarker() {}

// debugRed marks brush variants that reached command generation without a
// rendering implementation.
var debugRed = PremulRGBA8{R: 255, G: 0, B: 0, A: 255}

// brushColor resolves a brush to the premultiplied color commands carry.
func brushColor(b Brush) PremulRGBA8 {
	if solid, ok := b.(SolidBrush); ok {
		return solid.Color.Premultiply()
	}
	return debugRed
}
