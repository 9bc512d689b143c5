package cpu

import (
	"fmt"

	"github.com/born-ml/layers/internal/tensor"
)

// MulScalar multiplies each element of the tensor by a scalar value.
// The scalar's Go type must match the tensor dtype.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalar("mulScalar", x, scalar, opMul)
}

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalar("addScalar", x, scalar, opAdd)
}

func (cpu *CPUBackend) scalar(name string, x *tensor.RawTensor, scalar any, op binaryOp) *tensor.RawTensor {
	result := cpu.newResult(name, x.Shape(), x.DType())

	var ok bool
	switch x.DType() {
	case tensor.Float32:
		ok = applyScalar(result.AsFloat32(), x.AsFloat32(), scalar, op)
	case tensor.Float64:
		ok = applyScalar(result.AsFloat64(), x.AsFloat64(), scalar, op)
	case tensor.Int32:
		ok = applyScalar(result.AsInt32(), x.AsInt32(), scalar, op)
	case tensor.Int64:
		ok = applyScalar(result.AsInt64(), x.AsInt64(), scalar, op)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %v", name, x.DType()))
	}
	if !ok {
		panic(fmt.Sprintf("%s: scalar of type %T does not match dtype %s", name, scalar, x.DType()))
	}

	return result
}

func applyScalar[T number](dst, src []T, scalar any, op binaryOp) bool {
	s, ok := scalar.(T)
	if !ok {
		return false
	}
	switch op {
	case opAdd:
		for i, v := range src {
			dst[i] = v + s
		}
	case opMul:
		for i, v := range src {
			dst[i] = v * s
		}
	}
	return true
}
