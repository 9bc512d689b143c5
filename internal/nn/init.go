package nn

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/born-ml/layers/internal/tensor"
)

// UniformInit draws weights from U(-s, s) with s = sqrt(1/fanIn).
//
// fanIn is the number of inputs contributing to one output: input channels
// times the kernel volume for convolutions.
//
// src is the random source; nil uses the fixed-seed x/exp/rand global source.
func UniformInit[B tensor.Backend](fanIn int, shape tensor.Shape, src rand.Source, backend B) *tensor.Tensor[float32, B] {
	scale := math.Sqrt(1.0 / float64(fanIn))
	return tensor.Uniform[float32](shape, -scale, scale, src, backend)
}

// Zeros creates a float32 tensor filled with zeros.
//
// This is commonly used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a float32 tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}
