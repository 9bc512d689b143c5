// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/layers/internal/backend/cpu"
	"github.com/born-ml/layers/internal/parallel"
	"github.com/born-ml/layers/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go implementations of the tensor operations,
// with convolutions fanned out across goroutines.
type Backend = internalcpu.CPUBackend

// ParallelConfig controls how the convolution kernels split work across
// goroutines.
type ParallelConfig = parallel.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/layers/backend/cpu"
//	    "github.com/born-ml/layers/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
func NewWithConfig(cfg ParallelConfig) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultParallelConfig returns the settings New uses: one worker per CPU.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// SequentialConfig returns settings that run every kernel on the calling
// goroutine.
func SequentialConfig() ParallelConfig {
	return parallel.Sequential()
}
