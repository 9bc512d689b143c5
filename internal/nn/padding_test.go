package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/layers/internal/backend/cpu"
	"github.com/born-ml/layers/internal/tensor"
)

type cpuTensor = tensor.Tensor[float32, *cpu.CPUBackend]

// grid4x4 returns a [1, 4, 4, 1] tensor holding 1..16 row-major.
func grid4x4(t *testing.T, backend *cpu.CPUBackend) *cpuTensor {
	t.Helper()
	data := make([]float32, 16)
	for i := range data {
		data[i] = float32(i + 1)
	}
	x, err := tensor.FromSlice(data, tensor.Shape{1, 4, 4, 1}, backend)
	require.NoError(t, err)
	return x
}

func TestCircularPad2D_Identity(t *testing.T) {
	backend := cpu.New()
	x := grid4x4(t, backend)

	y, err := CircularPad2D(x, 0, 0)
	require.NoError(t, err)

	assert.True(t, y.Shape().Equal(x.Shape()))
	assert.Equal(t, x.Data(), y.Data())
}

func TestCircularPad2D_HeightOnly(t *testing.T) {
	backend := cpu.New()
	x := grid4x4(t, backend)
	const h = 1

	y, err := CircularPad2D(x, h, 0)
	require.NoError(t, err)
	require.True(t, y.Shape().Equal(tensor.Shape{1, 4 + 2*h, 4, 1}))

	for col := 0; col < 4; col++ {
		// Top border is the last input row, bottom border the first.
		assert.Equal(t, x.At(0, 3, col, 0), y.At(0, 0, col, 0))
		assert.Equal(t, x.At(0, 0, col, 0), y.At(0, 4+h, col, 0))
		for row := 0; row < 4; row++ {
			assert.Equal(t, x.At(0, row, col, 0), y.At(0, row+h, col, 0))
		}
	}
}

func TestCircularPad2D_BothAxes(t *testing.T) {
	backend := cpu.New()
	x := grid4x4(t, backend)

	y, err := CircularPad2D(x, 1, 2)
	require.NoError(t, err)
	require.True(t, y.Shape().Equal(tensor.Shape{1, 6, 8, 1}))

	for row := 0; row < 6; row++ {
		for col := 0; col < 8; col++ {
			srcRow := (row - 1 + 4) % 4
			srcCol := (col - 2 + 4) % 4
			assert.Equal(t, x.At(0, srcRow, srcCol, 0), y.At(0, row, col, 0), "(%d, %d)", row, col)
		}
	}

	// Input untouched.
	assert.Equal(t, grid4x4(t, backend).Data(), x.Data())
}

func TestCircularPad2D_FullAxis(t *testing.T) {
	backend := cpu.New()
	x := grid4x4(t, backend)

	y, err := CircularPad2D(x, 4, 0)
	require.NoError(t, err)
	require.True(t, y.Shape().Equal(tensor.Shape{1, 12, 4, 1}))

	// Three stacked copies of the input.
	for i := 0; i < 3; i++ {
		assert.Equal(t, x.Data(), y.Data()[i*16:(i+1)*16])
	}
}

func TestCircularPad2D_Errors(t *testing.T) {
	backend := cpu.New()
	x := grid4x4(t, backend)

	_, err := CircularPad2D(x, 5, 0)
	assert.ErrorIs(t, err, ErrPaddingTooLarge)

	_, err = CircularPad2D(x, 0, 5)
	assert.ErrorIs(t, err, ErrPaddingTooLarge)

	_, err = CircularPad2D(x, -1, 0)
	assert.ErrorIs(t, err, ErrInvalidPadding)

	_, err = CircularPad2D(tensor.Zeros[float32](tensor.Shape{4, 4}, backend), 1, 1)
	assert.ErrorIs(t, err, ErrInvalidShape)
}
