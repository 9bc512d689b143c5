package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/layers/internal/tensor"
)

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Example:
//
//	y := backend.SumDim(x, -1, true)   // [2, 3, 4] -> [2, 3, 1]
//	z := backend.SumDim(x, -1, false)  // [2, 3, 4] -> [2, 3]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	dim, err := shape.NormalizeDim(dim)
	if err != nil {
		panic(fmt.Sprintf("sumdim: %v", err))
	}

	var outShape tensor.Shape
	if keepDim {
		outShape = shape.Clone()
		outShape[dim] = 1
	} else {
		outShape = make(tensor.Shape, 0, len(shape)-1)
		outShape = append(outShape, shape[:dim]...)
		outShape = append(outShape, shape[dim+1:]...)
	}

	result := cpu.newResult("sumdim", outShape, x.DType())
	outer, size, inner := splitAxis(shape, dim)

	switch x.DType() {
	case tensor.Float32:
		sumDim(result.AsFloat32(), x.AsFloat32(), outer, size, inner)
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		if inner == 1 {
			// Reducing the innermost axis: every row is contiguous.
			for o := 0; o < outer; o++ {
				dst[o] = floats.Sum(src[o*size : (o+1)*size])
			}
			break
		}
		sumDim(dst, src, outer, size, inner)
	default:
		panic(fmt.Sprintf("sumdim: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

func sumDim[T number](dst, src []T, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		base := o * size * inner
		for i := 0; i < inner; i++ {
			var s T
			for k := 0; k < size; k++ {
				s += src[base+k*inner+i]
			}
			dst[o*inner+i] = s
		}
	}
}

// splitAxis views shape as [outer, shape[dim], inner].
func splitAxis(shape tensor.Shape, dim int) (outer, size, inner int) {
	outer, inner = 1, 1
	for _, d := range shape[:dim] {
		outer *= d
	}
	for _, d := range shape[dim+1:] {
		inner *= d
	}
	return outer, shape[dim], inner
}
