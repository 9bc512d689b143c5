package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/layers/internal/tensor"
)

// Sqrt computes element-wise square root: sqrt(x).
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat("sqrt", x, math.Sqrt)
}

// Rsqrt computes element-wise reciprocal square root: 1/sqrt(x).
//
// Follows IEEE semantics: rsqrt(0) = +Inf, rsqrt(x<0) = NaN.
func (cpu *CPUBackend) Rsqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat("rsqrt", x, func(v float64) float64 {
		return 1 / math.Sqrt(v)
	})
}

func (cpu *CPUBackend) unaryFloat(name string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result := cpu.newResult(name, x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		dst := result.AsFloat32()
		for i, v := range x.AsFloat32() {
			dst[i] = float32(f(float64(v)))
		}
	case tensor.Float64:
		dst := result.AsFloat64()
		for i, v := range x.AsFloat64() {
			dst[i] = f(v)
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", name, x.DType()))
	}

	return result
}
