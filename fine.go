package bintje

// RasterizeCPU is the reference consumer of the wide-tile command stream.
// It executes every wide tile's command list into a scratch buffer and
// blends the result into img, a premultiplied RGBA8 pixel buffer of
// width*height pixels in row-major order.
//
// The last column of wide tiles is clipped to width and the last row to
// height. Blending is integer source-over:
//
//	under' = (over*255 + under*(255-over.a)) / 255
func RasterizeCPU(width, height uint16, img []PremulRGBA8, alphaMasks []uint8, wideTiles []WideTile) error {
	if width == 0 || height == 0 {
		return ErrInvalidDimensions
	}
	if len(img) != int(width)*int(height) {
		return ErrBufferSize
	}
	wideCols := (int(width) + WideTileWidthPx - 1) / WideTileWidthPx
	wideRows := (int(height) + TileHeight - 1) / TileHeight
	if len(wideTiles) != wideCols*wideRows {
		return ErrBufferSize
	}

	var scratch [WideTileWidthPx * TileHeight]PremulRGBA8

	wideTileIdx := 0
	for wideTileY := 0; wideTileY < wideRows; wideTileY++ {
		for wideTileX := 0; wideTileX < wideCols; wideTileX++ {
			wideTile := &wideTiles[wideTileIdx]
			wideTileIdx++

			clear(scratch[:])
			for _, command := range wideTile.Commands {
				runCommand(&scratch, command, alphaMasks)
			}

			blitWideTile(width, height, img, &scratch, wideTileX, wideTileY)
		}
	}
	return nil
}

func runCommand(scratch *[WideTileWidthPx * TileHeight]PremulRGBA8, command Command, alphaMasks []uint8) {
	switch cmd := command.(type) {
	case Sample:
		for y := 0; y < TileHeight; y++ {
			idx := y*WideTileWidthPx + int(cmd.X)*TileWidth
			for x := 0; x < int(cmd.Width)*TileWidth; x++ {
				alpha := alphaMasks[int(cmd.AlphaIdx)+x*TileHeight+y]
				scratch[idx] = over(scratch[idx], mulAlpha(cmd.Color, alpha))
				idx++
			}
		}

	case SparseFill:
		for y := 0; y < TileHeight; y++ {
			idx := y*WideTileWidthPx + int(cmd.X)*TileWidth
			span := int(cmd.Width) * TileWidth
			if cmd.Color.A == 255 {
				// Opaque colors do not need compositing.
				for x := 0; x < span; x++ {
					scratch[idx+x] = cmd.Color
				}
			} else {
				for x := 0; x < span; x++ {
					scratch[idx+x] = over(scratch[idx+x], cmd.Color)
				}
			}
		}

	case SparseSample:
		for y := 0; y < TileHeight; y++ {
			column := mulAlpha(cmd.Color, cmd.AlphaColumn[y])
			if column.A == 0 && column.R == 0 && column.G == 0 && column.B == 0 {
				continue
			}
			idx := y*WideTileWidthPx + int(cmd.X)*TileWidth
			for x := 0; x < int(cmd.Width)*TileWidth; x++ {
				scratch[idx+x] = over(scratch[idx+x], column)
			}
		}

	case PushClip, PopClip:
		// Reserved; no defined semantics yet.
	}
}

// blitWideTile copies the scratch buffer into the destination image,
// clipping at the right and bottom canvas edges.
func blitWideTile(width, height uint16, img []PremulRGBA8, scratch *[WideTileWidthPx * TileHeight]PremulRGBA8, wideTileX, wideTileY int) {
	for y := 0; y < TileHeight; y++ {
		imgY := wideTileY*TileHeight + y
		if imgY >= int(height) {
			break
		}
		imgX := wideTileX * WideTileWidthPx
		span := WideTileWidthPx
		if imgX+span > int(width) {
			span = int(width) - imgX
		}
		if span <= 0 {
			break
		}
		copy(img[imgY*int(width)+imgX:][:span], scratch[y*WideTileWidthPx:][:span])
	}
}
