package bintje

import "testing"

func TestRasterizeCPUPreconditions(t *testing.T) {
	img := make([]PremulRGBA8, 8*8)
	wideTiles := make([]WideTile, 2) // 1 column x 2 rows for 8x8

	if err := RasterizeCPU(0, 8, img, nil, wideTiles); err != ErrInvalidDimensions {
		t.Errorf("zero width: got %v, want ErrInvalidDimensions", err)
	}
	if err := RasterizeCPU(8, 8, img[:10], nil, wideTiles); err != ErrBufferSize {
		t.Errorf("short buffer: got %v, want ErrBufferSize", err)
	}
	if err := RasterizeCPU(8, 8, img, nil, wideTiles[:1]); err != ErrBufferSize {
		t.Errorf("wrong wide tile count: got %v, want ErrBufferSize", err)
	}
	if err := RasterizeCPU(8, 8, img, nil, wideTiles); err != nil {
		t.Errorf("valid input: got %v", err)
	}
}

func TestRasterizeCPUSparseFillOpaque(t *testing.T) {
	img := make([]PremulRGBA8, 8*8)
	wideTiles := make([]WideTile, 2)
	blue := PremulRGBA8{B: 255, A: 255}
	wideTiles[0].Commands = append(wideTiles[0].Commands, SparseFill{X: 0, Width: 1, Color: blue})

	if err := RasterizeCPU(8, 8, img, nil, wideTiles); err != nil {
		t.Fatal(err)
	}
	// The fill covers pixels x in [0,4), y in [0,4).
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := PremulRGBA8{}
			if x < 4 && y < 4 {
				want = blue
			}
			if img[y*8+x] != want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, img[y*8+x], want)
			}
		}
	}
}

func TestRasterizeCPUSampleColumnMajorLayout(t *testing.T) {
	img := make([]PremulRGBA8, 8*4)
	wideTiles := make([]WideTile, 1)
	white := PremulRGBA8{R: 255, G: 255, B: 255, A: 255}

	// One tile's mask: only pixel column 1, sub-row 2 is set.
	alphas := make([]uint8, TileWidth*TileHeight)
	alphas[1*TileHeight+2] = 255
	wideTiles[0].Commands = append(wideTiles[0].Commands, Sample{X: 0, Width: 1, Color: white, AlphaIdx: 0})

	if err := RasterizeCPU(8, 4, img, alphas, wideTiles); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			want := PremulRGBA8{}
			if x == 1 && y == 2 {
				want = white
			}
			if img[y*8+x] != want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, img[y*8+x], want)
			}
		}
	}
}

func TestRasterizeCPUSparseSampleColumn(t *testing.T) {
	img := make([]PremulRGBA8, 8*4)
	wideTiles := make([]WideTile, 1)
	white := PremulRGBA8{R: 255, G: 255, B: 255, A: 255}
	wideTiles[0].Commands = append(wideTiles[0].Commands, SparseSample{
		X: 0, Width: 2, Color: white,
		AlphaColumn: [TileHeight]uint8{255, 128, 0, 64},
	})

	if err := RasterizeCPU(8, 4, img, nil, wideTiles); err != nil {
		t.Fatal(err)
	}
	wantPerRow := [TileHeight]uint8{255, 128, 0, 64}
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			got := img[y*8+x]
			if got.A != wantPerRow[y] {
				t.Fatalf("pixel (%d,%d) alpha = %d, want %d", x, y, got.A, wantPerRow[y])
			}
		}
	}
}

func TestRasterizeCPUSourceOverBlend(t *testing.T) {
	img := make([]PremulRGBA8, 4*4)
	wideTiles := make([]WideTile, 1)
	blue := PremulRGBA8{B: 255, A: 255}
	halfRed := PremulRGBA8{R: 128, A: 128}
	wideTiles[0].Commands = append(wideTiles[0].Commands,
		SparseFill{X: 0, Width: 1, Color: blue},
		SparseFill{X: 0, Width: 1, Color: halfRed},
	)

	if err := RasterizeCPU(4, 4, img, nil, wideTiles); err != nil {
		t.Fatal(err)
	}
	got := img[0]
	if got.R != 128 || got.G != 0 || got.A != 255 {
		t.Errorf("blend = %+v, want R=128 G=0 A=255", got)
	}
	if got.B < 126 || got.B > 128 {
		t.Errorf("blend B = %d, want ~127", got.B)
	}
}

func TestRasterizeCPUClipsLastColumnAndRow(t *testing.T) {
	// 6x6 canvas: one wide-tile column, two rows; the second row band only
	// contributes 2 pixel rows and the tile grid extends past x=6.
	img := make([]PremulRGBA8, 6*6)
	wideTiles := make([]WideTile, 2)
	red := PremulRGBA8{R: 255, A: 255}
	wideTiles[0].Commands = append(wideTiles[0].Commands, SparseFill{X: 0, Width: 2, Color: red})
	wideTiles[1].Commands = append(wideTiles[1].Commands, SparseFill{X: 0, Width: 2, Color: red})

	if err := RasterizeCPU(6, 6, img, nil, wideTiles); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if img[y*6+x].R != 255 {
				t.Fatalf("pixel (%d,%d) not filled", x, y)
			}
		}
	}
}
