// Package nn implements neural network layers for the Born ML Framework.
//
// This package provides:
//   - Module interface: the forward capability shared by all layers
//   - Parameter: named weight and bias tensors
//   - Conv1D, Conv2D, Conv3D: channels-last convolutions with stride,
//     padding, dilation and groups
//   - RMSNorm: root mean square normalization over the last axis
//   - CircularPad2D: wrap-around padding for NHWC tensors
//   - Sequential: container for stacking layers
//
// Layers are generic over the tensor backend, so any tensor.Backend
// implementation can run them.
package nn

import (
	"github.com/born-ml/layers/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules can be composed to build larger networks:
//
//	model := nn.NewSequential[*cpu.CPUBackend](
//	    nn.NewConv2D(nn.Conv2DConfig{InChannels: 3, OutChannels: 16, KernelSize: [2]int{3, 3}}, backend),
//	    nn.NewRMSNorm(16, nn.DefaultRMSNormEps, backend),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	// The input is never modified.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
}

// parameterized is implemented by modules that own parameters.
type parameterized[B tensor.Backend] interface {
	Parameters() []*Parameter[B]
}
