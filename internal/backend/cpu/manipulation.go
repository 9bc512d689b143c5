package cpu

import (
	"fmt"

	"github.com/born-ml/layers/internal/tensor"
)

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along the concatenation dimension.
// Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	c := backend.Cat([]*tensor.RawTensor{a, b}, 1) // [2, 3] ++ [2, 5] -> [2, 8]
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()

	dim, err := shape.NormalizeDim(dim)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	totalDim := 0
	for i, t := range tensors {
		tShape := t.Shape()
		if len(tShape) != ndim {
			panic(fmt.Sprintf("cat: tensor %d has %d dimensions, expected %d", i, len(tShape), ndim))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}

		for d := 0; d < ndim; d++ {
			if d == dim {
				totalDim += tShape[d]
			} else if tShape[d] != shape[d] {
				panic(fmt.Sprintf("cat: tensor %d dimension %d is %d, expected %d", i, d, tShape[d], shape[d]))
			}
		}
	}

	outShape := shape.Clone()
	outShape[dim] = totalDim
	result := cpu.newResult("cat", outShape, dtype)

	// Row-major layout: each tensor contributes one contiguous block of
	// shape[dim]*inner elements per outer index.
	elem := dtype.Size()
	outer, _, inner := splitAxis(shape, dim)
	dst := result.Data()
	outRow := totalDim * inner * elem

	offset := 0
	for _, t := range tensors {
		block := t.Shape()[dim] * inner * elem
		src := t.Data()
		for o := 0; o < outer; o++ {
			copy(dst[o*outRow+offset:o*outRow+offset+block], src[o*block:(o+1)*block])
		}
		offset += block
	}

	return result
}

// Slice returns the half-open range [start, end) of axis dim.
//
// Unlike NumPy slicing, out-of-range bounds are an error rather than being
// clamped, and the range must be non-empty.
func (cpu *CPUBackend) Slice(x *tensor.RawTensor, dim, start, end int) *tensor.RawTensor {
	shape := x.Shape()
	dim, err := shape.NormalizeDim(dim)
	if err != nil {
		panic(fmt.Sprintf("slice: %v", err))
	}
	if start < 0 || end > shape[dim] || start >= end {
		panic(fmt.Sprintf("slice: range [%d, %d) invalid for dimension %d of size %d", start, end, dim, shape[dim]))
	}

	outShape := shape.Clone()
	outShape[dim] = end - start
	result := cpu.newResult("slice", outShape, x.DType())

	elem := x.DType().Size()
	outer, size, inner := splitAxis(shape, dim)
	src, dst := x.Data(), result.Data()
	inRow := size * inner * elem
	block := (end - start) * inner * elem
	skip := start * inner * elem

	for o := 0; o < outer; o++ {
		copy(dst[o*block:(o+1)*block], src[o*inRow+skip:o*inRow+skip+block])
	}

	return result
}
