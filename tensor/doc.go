// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensors for the Born layers library.
//
// # Overview
//
// This package exposes:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting for Add and Mul
//   - Channels-last convolution primitives (Conv1D, Conv2D, Conv3D)
//   - A Backend interface that compute engines implement
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/layers/backend/cpu"
//	    "github.com/born-ml/layers/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//	}
//
// # Layout
//
// Convolutions use channels-last layouts: [N, L, C], [N, H, W, C] and
// [N, D, H, W, C]. Weights are [O, K..., C/groups].
//
// # Available Operations
//
//	y := x.Add(b)             // broadcasting add
//	y := x.Mul(b)             // broadcasting multiply
//	y := x.AddScalar(1)       // add scalar
//	y := x.MulScalar(0.5)     // multiply by scalar
//	y := x.Square()           // x*x
//	y := x.Sqrt()             // square root
//	y := x.Rsqrt()            // reciprocal square root
//	y := x.Pow(2)             // 2 or 0.5 only
//	y := x.SumDim(-1, true)   // reduce one axis
//	y := x.Reshape(1, 1, 8)   // same data, new shape
//	y := x.Slice(1, 0, 2)     // narrow one axis
//	y := tensor.Cat(ts, 1)    // concatenate
//
// # Immutability
//
// Operations never modify their inputs. Data() returns a view that callers
// may write to, for example to load weights.
package tensor
