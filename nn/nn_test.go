// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/born-ml/layers/backend/cpu"
	"github.com/born-ml/layers/nn"
	"github.com/born-ml/layers/tensor"
)

// Compile-time interface checks.
var (
	_ nn.Module[*cpu.Backend] = (*nn.Conv1D[*cpu.Backend])(nil)
	_ nn.Module[*cpu.Backend] = (*nn.Conv2D[*cpu.Backend])(nil)
	_ nn.Module[*cpu.Backend] = (*nn.Conv3D[*cpu.Backend])(nil)
	_ nn.Module[*cpu.Backend] = (*nn.RMSNorm[*cpu.Backend])(nil)
	_ nn.Module[*cpu.Backend] = (*nn.Sequential[*cpu.Backend])(nil)
)

func TestPublicLayers(t *testing.T) {
	backend := cpu.New()

	model := nn.NewSequential[*cpu.Backend](
		nn.NewConv2D(nn.Conv2DConfig{
			InChannels:  3,
			OutChannels: 8,
			KernelSize:  [2]int{3, 3},
			Padding:     [2]int{1, 1},
			PaddingMode: nn.PaddingCircular,
			Bias:        true,
			Source:      rand.NewSource(1),
		}, backend),
		nn.NewRMSNorm(8, nn.DefaultRMSNormEps, backend),
	)

	x := tensor.Uniform[float32](tensor.Shape{2, 6, 6, 3}, -1, 1, rand.NewSource(2), backend)
	y := model.Forward(x)

	assert.True(t, y.Shape().Equal(tensor.Shape{2, 6, 6, 8}))
	assert.Len(t, model.Parameters(), 3)
}

func TestPublicConfigValidation(t *testing.T) {
	err := nn.Conv1DConfig{InChannels: 3, OutChannels: 3, KernelSize: 3, Groups: 2}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, nn.ErrGroupsMismatch))

	backend := cpu.New()
	_, err = nn.CircularPad2D(tensor.Zeros[float32](tensor.Shape{1, 2, 2, 1}, backend), 3, 0)
	assert.ErrorIs(t, err, nn.ErrPaddingTooLarge)
}

func TestPublicConv1DAndConv3D(t *testing.T) {
	backend := cpu.New()

	c1 := nn.NewConv1D(nn.Conv1DConfig{InChannels: 4, OutChannels: 2, KernelSize: 3}, backend)
	assert.True(t, c1.Forward(tensor.Zeros[float32](tensor.Shape{1, 10, 4}, backend)).Shape().Equal(tensor.Shape{1, 8, 2}))

	c3 := nn.NewConv3D(nn.Conv3DConfig{InChannels: 2, OutChannels: 4, KernelSize: [3]int{1, 3, 3}, Groups: 2}, backend)
	assert.True(t, c3.Forward(tensor.Zeros[float32](tensor.Shape{1, 2, 5, 5, 2}, backend)).Shape().Equal(tensor.Shape{1, 2, 3, 3, 4}))
}
