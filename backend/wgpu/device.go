// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// Package errors.
var (
	// ErrNoGPU is returned when no usable GPU device is available.
	ErrNoGPU = errors.New("wgpu: no GPU device available")

	// ErrNotInitialized is returned when Rasterize is called on a
	// destroyed renderer.
	ErrNotInitialized = errors.New("wgpu: renderer not initialized")

	// ErrBufferSize is returned when the destination buffer does not
	// match the configured canvas size.
	ErrBufferSize = errors.New("wgpu: pixel buffer size mismatch")
)

// Device bundles the HAL device and queue the renderer executes on.
// Both are received from the host application; this package never creates
// its own device.
type Device struct {
	dev   hal.Device
	queue hal.Queue
}

// NewDevice wraps host-owned HAL handles.
func NewDevice(dev hal.Device, queue hal.Queue) (*Device, error) {
	if dev == nil || queue == nil {
		return nil, ErrNoGPU
	}
	return &Device{dev: dev, queue: queue}, nil
}

// halSource is implemented by device providers that expose their
// underlying wgpu HAL handles.
type halSource interface {
	HAL() (hal.Device, hal.Queue)
}

// FromProvider obtains a Device from a host gpucontext.DeviceProvider.
// The provider must expose its HAL handles via a
// HAL() (hal.Device, hal.Queue) method; otherwise ErrNoGPU is returned.
func FromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	if provider == nil {
		return nil, ErrNoGPU
	}
	if src, ok := provider.(halSource); ok {
		return NewDevice(src.HAL())
	}
	return nil, ErrNoGPU
}
