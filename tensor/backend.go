// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/layers/internal/tensor"

// Backend defines the interface that compute backends implement.
//
// The operation set is what the layers in package nn need: broadcasting
// Add and Mul, scalar Add and Mul, Sqrt, Rsqrt, SumDim, Reshape, Slice,
// Cat and the channels-last Conv1D, Conv2D and Conv3D primitives.
//
// Implementations:
//   - backend/cpu: Pure Go reference engine
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(x)  // Uses backend.Add under the hood
type Backend = tensor.Backend
