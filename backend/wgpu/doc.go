// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu consumes bintje's wide-tile command stream on the GPU.
//
// The fine-rasterization shader walks each wide tile's command list per
// pixel and composites alpha-sampled fills, sparse fills and sparse
// alpha-column fills exactly like the CPU reference. WGSL is compiled to
// SPIR-V with naga and executed as a single compute pass over the canvas.
//
// The device and queue are received from the host, never created here:
// pass HAL handles to [NewDevice], or a gpucontext.DeviceProvider that
// exposes them through a HAL method to [FromProvider], then hand the
// resulting [Device] to [NewRenderer].
package wgpu
