package tensor

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		panic(err)
	}

	// Data is already zero-initialized by make()
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
//
// Example:
//
//	t := tensor.Ones[float64](Shape{2, 3}, backend)
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, 1, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Uniform creates a tensor with values drawn uniformly from [low, high).
// Only float types are supported.
//
// src is the random source; nil uses the global source of golang.org/x/exp/rand,
// which starts from a fixed seed, so repeated runs draw the same values.
// Pass a seeded source for reproducible initialization:
//
//	w := tensor.Uniform[float32](Shape{8, 3, 3, 4}, -0.1, 0.1, rand.NewSource(42), backend)
func Uniform[T DType, B Backend](shape Shape, low, high float64, src rand.Source, b B) *Tensor[T, B] {
	if !(low < high) {
		panic(fmt.Sprintf("uniform: invalid range [%v, %v)", low, high))
	}

	t := Zeros[T, B](shape, b)
	dist := distuv.Uniform{Min: low, Max: high, Src: src}

	switch data := any(t.Data()).(type) {
	case []float32:
		for i := range data {
			data[i] = float32(dist.Rand())
		}
	case []float64:
		for i := range data {
			data[i] = dist.Rand()
		}
	default:
		panic("Uniform only supports float32 and float64 types")
	}
	return t
}
