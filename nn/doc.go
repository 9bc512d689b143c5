// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers for the Born layers library.
//
// # Overview
//
// Layers are generic over the tensor backend and operate on channels-last
// float32 tensors:
//   - Conv1D: [N, L, C] -> [N, L', O]
//   - Conv2D: [N, H, W, C] -> [N, H', W', O], zero or circular padding
//   - Conv3D: [N, D, H, W, C] -> [N, D', H', W', O]
//   - RMSNorm: normalizes the last axis to unit root mean square
//   - Sequential: chains modules
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
//	    model := nn.NewSequential[*cpu.Backend](
//	        nn.NewConv2D(nn.Conv2DConfig{
//	            InChannels:  3,
//	            OutChannels: 16,
//	            KernelSize:  [2]int{3, 3},
//	            Padding:     [2]int{1, 1},
//	            PaddingMode: nn.PaddingCircular,
//	            Bias:        true,
//	        }, backend),
//	        nn.NewRMSNorm(16, nn.DefaultRMSNormEps, backend),
//	    )
//
//	    x := tensor.Zeros[float32](tensor.Shape{1, 32, 32, 3}, backend)
//	    y := model.Forward(x) // [1, 32, 32, 16]
//	}
//
// # Configuration Errors
//
// Constructors panic on invalid configuration. Call Validate on the config
// to get an error instead; it wraps ErrInvalidChannels, ErrGroupsMismatch
// and the other Err* values, testable with errors.Is.
//
// # Reproducibility
//
// Weight initialization draws from the config's Source. Pass a seeded
// golang.org/x/exp/rand source for reproducible weights. A nil Source
// falls back to the x/exp/rand global source, which also starts from a
// fixed seed.
package nn
