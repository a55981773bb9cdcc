// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/bintje"
)

//go:embed shaders/fine.wgsl
var fineShaderWGSL string

// Command kinds in the packed GPU stream. Must match fine.wgsl.
const (
	gpuCmdSample       = 0
	gpuCmdSparseFill   = 1
	gpuCmdSparseSample = 2
)

// fenceTimeout bounds the wait for GPU completion.
const fenceTimeout = 5 * time.Second

// workgroupSize is the compute workgroup size of cs_fine.
const workgroupSize = 64

// Renderer executes bintje's wide-tile command stream as a compute pass.
//
// Pipeline and layouts are created once; per-frame buffers grow as the
// command stream requires. Readback of the output buffer waits on HAL
// buffer mapping; until then the returned pixels are produced by the
// reference interpreter after the dispatch completes.
type Renderer struct {
	device *Device

	width  uint16
	height uint16

	shaderModule    hal.ShaderModule
	inputBindLayout hal.BindGroupLayout
	outBindLayout   hal.BindGroupLayout
	pipelineLayout  hal.PipelineLayout
	pipeline        hal.ComputePipeline

	configBuf  hal.Buffer
	rangesBuf  hal.Buffer
	commandBuf hal.Buffer
	alphaBuf   hal.Buffer
	outputBuf  hal.Buffer

	rangesCap  uint64
	commandCap uint64
	alphaCap   uint64

	// Scratch for packing.
	ranges  []uint32
	words   []uint32
	alphas  []uint32
	spirv   []uint32
	elapsed time.Duration

	initialized bool
}

// NewRenderer creates the fine-rasterization pipeline for a canvas of the
// given pixel size.
func NewRenderer(device *Device, width, height uint16) (*Renderer, error) {
	if device == nil {
		return nil, ErrNoGPU
	}
	r := &Renderer{device: device, width: width, height: height}
	if err := r.init(); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) init() error {
	dev := r.device.dev

	spirvBytes, err := naga.Compile(fineShaderWGSL)
	if err != nil {
		return fmt.Errorf("wgpu: compile fine shader: %w", err)
	}
	// SPIR-V is little-endian 32-bit words.
	r.spirv = make([]uint32, len(spirvBytes)/4)
	for i := range r.spirv {
		r.spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	r.shaderModule, err = dev.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "bintje_fine",
		Source: hal.ShaderSource{SPIRV: r.spirv},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create shader module: %w", err)
	}

	storageRO := func(binding uint32) gputypes.BindGroupLayoutEntry {
		return gputypes.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: gputypes.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
		}
	}
	r.inputBindLayout, err = dev.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "bintje_fine_input_bgl",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			storageRO(1),
			storageRO(2),
			storageRO(3),
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create input bind group layout: %w", err)
	}

	r.outBindLayout, err = dev.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "bintje_fine_output_bgl",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create output bind group layout: %w", err)
	}

	r.pipelineLayout, err = dev.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "bintje_fine_pl",
		BindGroupLayouts: []hal.BindGroupLayout{r.inputBindLayout, r.outBindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}

	r.pipeline, err = dev.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "bintje_fine",
		Layout: r.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     r.shaderModule,
			EntryPoint: "cs_fine",
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create compute pipeline: %w", err)
	}

	r.initialized = true
	bintje.Logger().Debug("wgpu: fine pipeline created",
		"width", r.width, "height", r.height, "spirv_words", len(r.spirv))
	return nil
}

// Width returns the canvas width in pixels.
func (r *Renderer) Width() uint16 { return r.width }

// Height returns the canvas height in pixels.
func (r *Renderer) Height() uint16 { return r.height }

// Rasterize uploads the command stream, dispatches the fine shader over
// every canvas pixel and waits for it to finish. dst is then filled with
// premultiplied pixels by the CPU reference interpreter; the shader's
// output buffer is not read back. dst must hold width*height pixels.
func (r *Renderer) Rasterize(commands bintje.Commands, dst []bintje.PremulRGBA8) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	if len(dst) != int(r.width)*int(r.height) {
		return ErrBufferSize
	}

	start := time.Now()
	r.pack(commands)
	if err := r.upload(); err != nil {
		return err
	}
	if err := r.dispatch(); err != nil {
		return err
	}

	// Output readback waits on HAL buffer mapping; until that lands the
	// returned pixels come from the reference interpreter.
	if err := bintje.RasterizeCPU(r.width, r.height, dst, commands.AlphaMasks, commands.WideTiles); err != nil {
		return err
	}

	r.elapsed = time.Since(start)
	bintje.Logger().Debug("wgpu: fine pass complete",
		"commands", len(r.words)/4, "elapsed", r.elapsed)
	return nil
}

// pack flattens the command stream into the GPU buffer layouts.
func (r *Renderer) pack(commands bintje.Commands) {
	r.ranges = r.ranges[:0]
	r.words = r.words[:0]

	for _, wideTile := range commands.WideTiles {
		start := uint32(len(r.words) / 4)
		count := uint32(0)
		for _, command := range wideTile.Commands {
			switch cmd := command.(type) {
			case bintje.Sample:
				r.words = append(r.words,
					gpuCmdSample,
					uint32(cmd.X)|uint32(cmd.Width)<<16,
					packColor(cmd.Color),
					cmd.AlphaIdx,
				)
			case bintje.SparseFill:
				r.words = append(r.words,
					gpuCmdSparseFill,
					uint32(cmd.X)|uint32(cmd.Width)<<16,
					packColor(cmd.Color),
					0,
				)
			case bintje.SparseSample:
				r.words = append(r.words,
					gpuCmdSparseSample,
					uint32(cmd.X)|uint32(cmd.Width)<<16,
					packColor(cmd.Color),
					uint32(cmd.AlphaColumn[0])|
						uint32(cmd.AlphaColumn[1])<<8|
						uint32(cmd.AlphaColumn[2])<<16|
						uint32(cmd.AlphaColumn[3])<<24,
				)
			default:
				// Clip commands have no GPU semantics yet.
				continue
			}
			count++
		}
		r.ranges = append(r.ranges, start, count)
	}

	// Alpha pool, four bytes per word.
	r.alphas = r.alphas[:0]
	masks := commands.AlphaMasks
	for i := 0; i < len(masks); i += 4 {
		var word uint32
		for j := 0; j < 4 && i+j < len(masks); j++ {
			word |= uint32(masks[i+j]) << (8 * j)
		}
		r.alphas = append(r.alphas, word)
	}
}

func packColor(c bintje.PremulRGBA8) uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

// upload (re)creates and fills the GPU buffers.
func (r *Renderer) upload() error {
	dev := r.device.dev
	queue := r.device.queue

	if r.configBuf == nil {
		buf, err := dev.CreateBuffer(&hal.BufferDescriptor{
			Label: "bintje_fine_config",
			Size:  16,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("wgpu: create config buffer: %w", err)
		}
		r.configBuf = buf
	}
	wideCols := (uint32(r.width) + bintje.WideTileWidthPx - 1) / bintje.WideTileWidthPx
	wideRows := (uint32(r.height) + bintje.TileHeight - 1) / bintje.TileHeight
	queue.WriteBuffer(r.configBuf, 0, wordsToBytes([]uint32{
		uint32(r.width), uint32(r.height), wideCols, wideRows,
	}))

	var err error
	if r.rangesBuf, r.rangesCap, err = r.ensureBuffer(r.rangesBuf, r.rangesCap, "bintje_fine_ranges", r.ranges); err != nil {
		return err
	}
	if r.commandBuf, r.commandCap, err = r.ensureBuffer(r.commandBuf, r.commandCap, "bintje_fine_commands", r.words); err != nil {
		return err
	}
	if r.alphaBuf, r.alphaCap, err = r.ensureBuffer(r.alphaBuf, r.alphaCap, "bintje_fine_alphas", r.alphas); err != nil {
		return err
	}

	if r.outputBuf == nil {
		size := uint64(r.width) * uint64(r.height) * 4
		buf, err := dev.CreateBuffer(&hal.BufferDescriptor{
			Label: "bintje_fine_output",
			Size:  size,
			Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
		})
		if err != nil {
			return fmt.Errorf("wgpu: create output buffer: %w", err)
		}
		r.outputBuf = buf
	}
	return nil
}

// ensureBuffer uploads words into buf, growing it when the data no longer
// fits.
func (r *Renderer) ensureBuffer(buf hal.Buffer, capacity uint64, label string, words []uint32) (hal.Buffer, uint64, error) {
	const minSize = 16
	size := uint64(len(words)) * 4
	if size < minSize {
		size = minSize
	}
	if buf == nil || capacity < size {
		if buf != nil {
			r.device.dev.DestroyBuffer(buf)
		}
		newBuf, err := r.device.dev.CreateBuffer(&hal.BufferDescriptor{
			Label: label,
			Size:  size,
			Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("wgpu: create %s buffer: %w", label, err)
		}
		buf = newBuf
		capacity = size
	}
	if len(words) > 0 {
		r.device.queue.WriteBuffer(buf, 0, wordsToBytes(words))
	}
	return buf, capacity, nil
}

func wordsToBytes(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		out[i*4] = byte(w)
		out[i*4+1] = byte(w >> 8)
		out[i*4+2] = byte(w >> 16)
		out[i*4+3] = byte(w >> 24)
	}
	return out
}

// dispatch records and submits the compute pass, then waits for the GPU.
func (r *Renderer) dispatch() error {
	dev := r.device.dev

	bufferEntry := func(binding uint32, buf hal.Buffer) gputypes.BindGroupEntry {
		return gputypes.BindGroupEntry{
			Binding: binding,
			Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(),
				Offset: 0,
				Size:   0, // 0 = entire buffer
			},
		}
	}

	inputBG, err := dev.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "bintje_fine_input_bg",
		Layout: r.inputBindLayout,
		Entries: []gputypes.BindGroupEntry{
			bufferEntry(0, r.configBuf),
			bufferEntry(1, r.rangesBuf),
			bufferEntry(2, r.commandBuf),
			bufferEntry(3, r.alphaBuf),
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create input bind group: %w", err)
	}
	defer dev.DestroyBindGroup(inputBG)

	outputBG, err := dev.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "bintje_fine_output_bg",
		Layout: r.outBindLayout,
		Entries: []gputypes.BindGroupEntry{
			bufferEntry(0, r.outputBuf),
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create output bind group: %w", err)
	}
	defer dev.DestroyBindGroup(outputBG)

	encoder, err := dev.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "bintje_fine",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("bintje_fine"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{
		Label: "bintje_fine",
	})
	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, inputBG, nil)
	pass.SetBindGroup(1, outputBG, nil)
	pixels := uint32(r.width) * uint32(r.height)
	pass.Dispatch((pixels+workgroupSize-1)/workgroupSize, 1, 1)
	pass.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer dev.FreeCommandBuffer(cmdBuf)

	fence, err := dev.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer dev.DestroyFence(fence)

	if err := r.device.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	ok, err := dev.Wait(fence, 1, fenceTimeout)
	if err != nil {
		return fmt.Errorf("wgpu: wait for GPU: %w", err)
	}
	if !ok {
		return fmt.Errorf("wgpu: GPU timeout after %v", fenceTimeout)
	}
	return nil
}

// Destroy releases all GPU resources. The renderer cannot be used
// afterwards.
func (r *Renderer) Destroy() {
	dev := r.device.dev
	if dev == nil {
		return
	}
	for _, buf := range []hal.Buffer{r.configBuf, r.rangesBuf, r.commandBuf, r.alphaBuf, r.outputBuf} {
		if buf != nil {
			dev.DestroyBuffer(buf)
		}
	}
	r.configBuf, r.rangesBuf, r.commandBuf, r.alphaBuf, r.outputBuf = nil, nil, nil, nil, nil
	if r.pipeline != nil {
		dev.DestroyComputePipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipelineLayout != nil {
		dev.DestroyPipelineLayout(r.pipelineLayout)
		r.pipelineLayout = nil
	}
	if r.inputBindLayout != nil {
		dev.DestroyBindGroupLayout(r.inputBindLayout)
		r.inputBindLayout = nil
	}
	if r.outBindLayout != nil {
		dev.DestroyBindGroupLayout(r.outBindLayout)
		r.outBindLayout = nil
	}
	if r.shaderModule != nil {
		dev.DestroyShaderModule(r.shaderModule)
		r.shaderModule = nil
	}
	r.initialized = false
}
