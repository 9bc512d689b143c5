// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Direct channels-last convolutions with stride, padding, dilation and groups
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/layers/backend/cpu"
//	    "github.com/born-ml/layers/nn"
//	    "github.com/born-ml/layers/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{1, 28, 28, 1}, backend)
//	    conv := nn.NewConv2D(nn.Conv2DConfig{InChannels: 1, OutChannels: 8, KernelSize: [2]int{3, 3}}, backend)
//	    y := conv.Forward(x)
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Operations allocate their
// results and never write to their inputs.
package cpu
