// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"testing"

	"github.com/gogpu/bintje"
)

func TestPackCommandStream(t *testing.T) {
	r := &Renderer{width: 128, height: 4}

	wideTiles := []bintje.WideTile{{
		Commands: []bintje.Command{
			bintje.Sample{X: 1, Width: 2, Color: bintje.PremulRGBA8{R: 255, A: 255}, AlphaIdx: 32},
			bintje.SparseFill{X: 4, Width: 3, Color: bintje.PremulRGBA8{B: 255, A: 255}},
			bintje.SparseSample{X: 8, Width: 1, Color: bintje.PremulRGBA8{G: 128, A: 128},
				AlphaColumn: [4]uint8{1, 2, 3, 4}},
			bintje.PushClip{},
		},
	}}
	masks := []uint8{0, 64, 128, 255, 9}

	r.pack(bintje.Commands{WideTiles: wideTiles, AlphaMasks: masks})

	if len(r.ranges) != 2 || r.ranges[0] != 0 || r.ranges[1] != 3 {
		t.Fatalf("ranges = %v, want [0 3] (clip command excluded)", r.ranges)
	}
	if len(r.words) != 3*4 {
		t.Fatalf("words = %d, want 12", len(r.words))
	}

	// Sample command.
	if r.words[0] != gpuCmdSample {
		t.Errorf("kind = %d", r.words[0])
	}
	if r.words[1] != 1|2<<16 {
		t.Errorf("geometry word = %#x", r.words[1])
	}
	if r.words[2] != 0xff0000ff {
		t.Errorf("color word = %#x, want red", r.words[2])
	}
	if r.words[3] != 32 {
		t.Errorf("alpha idx = %d", r.words[3])
	}

	// SparseSample alpha column packing.
	if r.words[11] != 1|2<<8|3<<16|4<<24 {
		t.Errorf("alpha column word = %#x", r.words[11])
	}

	// Alpha pool packing: two words, little-endian bytes.
	if len(r.alphas) != 2 {
		t.Fatalf("alphas = %v", r.alphas)
	}
	if r.alphas[0] != 0|64<<8|128<<16|255<<24 {
		t.Errorf("alpha word 0 = %#x", r.alphas[0])
	}
	if r.alphas[1] != 9 {
		t.Errorf("alpha word 1 = %#x", r.alphas[1])
	}
}

func TestWordsToBytesLittleEndian(t *testing.T) {
	got := wordsToBytes([]uint32{0x04030201})
	want := []byte{1, 2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFromProviderRejectsNil(t *testing.T) {
	if _, err := FromProvider(nil); err != ErrNoGPU {
		t.Errorf("FromProvider(nil) = %v, want ErrNoGPU", err)
	}
}

func TestNewDeviceRejectsNilHandles(t *testing.T) {
	if _, err := NewDevice(nil, nil); err != ErrNoGPU {
		t.Errorf("NewDevice(nil, nil) = %v, want ErrNoGPU", err)
	}
}

func TestRasterizeUninitialized(t *testing.T) {
	r := &Renderer{width: 8, height: 8}
	dst := make([]bintje.PremulRGBA8, 64)
	if err := r.Rasterize(bintje.Commands{}, dst); err != ErrNotInitialized {
		t.Errorf("uninitialized rasterize = %v, want ErrNotInitialized", err)
	}
}
