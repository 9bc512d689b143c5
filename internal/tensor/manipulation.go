package tensor

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along the concatenation dimension.
// Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	a := tensor.Zeros[float32](Shape{2, 3}, backend)
//	b := tensor.Zeros[float32](Shape{2, 5}, backend)
//	c := tensor.Cat([]*Tensor[float32, B]{a, b}, 1) // Shape: [2, 8]
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	if len(tensors) == 1 {
		return tensors[0].Clone()
	}

	rawTensors := make([]*RawTensor, len(tensors))
	backend := tensors[0].backend
	for i, t := range tensors {
		rawTensors[i] = t.raw
	}

	return New[T, B](backend.Cat(rawTensors, dim), backend)
}

// Slice returns the half-open range [start, end) of axis dim as a new tensor.
// Every other axis is kept whole. Supports negative dim indexing.
//
// Example:
//
//	x := tensor.Zeros[float32](Shape{1, 4, 4, 1}, backend)
//	top := x.Slice(1, 3, 4) // last row: Shape [1, 1, 4, 1]
func (t *Tensor[T, B]) Slice(dim, start, end int) *Tensor[T, B] {
	return New[T, B](t.backend.Slice(t.raw, dim, start, end), t.backend)
}
