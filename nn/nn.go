// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/layers/internal/nn"
	"github.com/born-ml/layers/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter is a named weight or bias tensor.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Errors

// Configuration and padding errors.
var (
	ErrInvalidChannels = nn.ErrInvalidChannels
	ErrGroupsMismatch  = nn.ErrGroupsMismatch
	ErrInvalidKernel   = nn.ErrInvalidKernel
	ErrInvalidStride   = nn.ErrInvalidStride
	ErrInvalidPadding  = nn.ErrInvalidPadding
	ErrInvalidDilation = nn.ErrInvalidDilation
	ErrPaddingTooLarge = nn.ErrPaddingTooLarge
	ErrInvalidShape    = nn.ErrInvalidShape
)

// Convolutions

// PaddingMode selects how Conv2D fills the border around its input.
type PaddingMode = nn.PaddingMode

// Padding modes.
const (
	PaddingZeros    PaddingMode = nn.PaddingZeros
	PaddingCircular PaddingMode = nn.PaddingCircular
)

// Conv1DConfig configures a Conv1D layer.
type Conv1DConfig = nn.Conv1DConfig

// Conv1D represents a 1D convolutional layer over [N, L, C] inputs.
type Conv1D[B tensor.Backend] = nn.Conv1D[B]

// NewConv1D creates a new 1D convolutional layer.
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewConv1D(nn.Conv1DConfig{InChannels: 8, OutChannels: 16, KernelSize: 3, Padding: 1}, backend)
func NewConv1D[B tensor.Backend](cfg Conv1DConfig, backend B) *Conv1D[B] {
	return nn.NewConv1D(cfg, backend)
}

// Conv2DConfig configures a Conv2D layer.
type Conv2DConfig = nn.Conv2DConfig

// Conv2D represents a 2D convolutional layer over [N, H, W, C] inputs.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D creates a new 2D convolutional layer.
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewConv2D(nn.Conv2DConfig{InChannels: 1, OutChannels: 32, KernelSize: [2]int{3, 3}, Padding: [2]int{1, 1}, Bias: true}, backend)
func NewConv2D[B tensor.Backend](cfg Conv2DConfig, backend B) *Conv2D[B] {
	return nn.NewConv2D(cfg, backend)
}

// Conv3DConfig configures a Conv3D layer.
type Conv3DConfig = nn.Conv3DConfig

// Conv3D represents a 3D convolutional layer over [N, D, H, W, C] inputs.
type Conv3D[B tensor.Backend] = nn.Conv3D[B]

// NewConv3D creates a new 3D convolutional layer.
func NewConv3D[B tensor.Backend](cfg Conv3DConfig, backend B) *Conv3D[B] {
	return nn.NewConv3D(cfg, backend)
}

// CircularPad2D pads the height and width of an NHWC tensor by wrapping
// values from the opposite edge.
//
// Example:
//
//	y, err := nn.CircularPad2D(x, 1, 1) // [N, H, W, C] -> [N, H+2, W+2, C]
func CircularPad2D[B tensor.Backend](x *tensor.Tensor[float32, B], padH, padW int) (*tensor.Tensor[float32, B], error) {
	return nn.CircularPad2D(x, padH, padW)
}

// Normalization

// DefaultRMSNormEps is the default epsilon for RMSNorm.
const DefaultRMSNormEps = nn.DefaultRMSNormEps

// RMSNorm represents Root Mean Square Normalization over the last axis.
type RMSNorm[B tensor.Backend] = nn.RMSNorm[B]

// NewRMSNorm creates a new RMSNorm layer.
//
// Example:
//
//	backend := cpu.New()
//	norm := nn.NewRMSNorm(768, nn.DefaultRMSNormEps, backend)
func NewRMSNorm[B tensor.Backend](dims int, eps float32, backend B) *RMSNorm[B] {
	return nn.NewRMSNorm(dims, eps, backend)
}

// Containers

// Sequential chains modules, feeding each output into the next module.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a new Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}
