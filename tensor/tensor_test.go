// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/layers/backend/cpu"
	"github.com/born-ml/layers/tensor"
)

// TestBackendInterface verifies that cpu.Backend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.Backend)(nil)
}

func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	assert.True(t, raw.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, tensor.Float32, raw.DType())
	assert.Equal(t, tensor.CPU, raw.Device())
	assert.Equal(t, 6, raw.NumElements())
	assert.Equal(t, 24, raw.ByteSize())

	raw.AsFloat32()[0] = 1
	clone := raw.Clone()
	clone.AsFloat32()[0] = 2
	assert.Equal(t, float32(1), raw.AsFloat32()[0])
}

func TestPublicCreationAndOps(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	ones := tensor.Ones[float32](tensor.Shape{2}, backend)

	y := x.Add(ones).MulScalar(2)
	assert.Equal(t, []float32{4, 6, 8, 10}, y.Data())

	c := tensor.Cat([]*tensor.Tensor[float32, *cpu.Backend]{x, y}, 0)
	assert.True(t, c.Shape().Equal(tensor.Shape{4, 2}))

	assert.Equal(t, 16, tensor.ConvOutputSize(32, 3, 2, 1, 1))
}
