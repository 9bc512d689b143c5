package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/born-ml/layers/internal/parallel"
	"github.com/born-ml/layers/internal/tensor"
)

func randRaw(t *testing.T, shape tensor.Shape, seed uint64) *tensor.RawTensor {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float32, shape.NumElements())
	for i := range data {
		data[i] = float32(rng.Float64()*2 - 1)
	}
	return raw32(t, shape, data...)
}

func ones32(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// naiveConv2D is a straightforward NHWC reference with zero padding.
func naiveConv2D(in, w *tensor.RawTensor, stride, padding, dilation [2]int, groups int) ([]float32, tensor.Shape) {
	is, ws := in.Shape(), w.Shape()
	n, h, wd, c := is[0], is[1], is[2], is[3]
	o, kh, kw, cg := ws[0], ws[1], ws[2], ws[3]
	og := o / groups
	oh := tensor.ConvOutputSize(h, kh, stride[0], padding[0], dilation[0])
	ow := tensor.ConvOutputSize(wd, kw, stride[1], padding[1], dilation[1])

	x, k := in.AsFloat32(), w.AsFloat32()
	out := make([]float32, n*oh*ow*o)
	for b := 0; b < n; b++ {
		for y := 0; y < oh; y++ {
			for z := 0; z < ow; z++ {
				for oc := 0; oc < o; oc++ {
					g := oc / og
					var sum float32
					for i := 0; i < kh; i++ {
						for j := 0; j < kw; j++ {
							py := y*stride[0] - padding[0] + i*dilation[0]
							pz := z*stride[1] - padding[1] + j*dilation[1]
							if py < 0 || py >= h || pz < 0 || pz >= wd {
								continue
							}
							for ic := 0; ic < cg; ic++ {
								xv := x[((b*h+py)*wd+pz)*c+g*cg+ic]
								kv := k[((oc*kh+i)*kw+j)*cg+ic]
								sum += xv * kv
							}
						}
					}
					out[((b*oh+y)*ow+z)*o+oc] = sum
				}
			}
		}
	}
	return out, tensor.Shape{n, oh, ow, o}
}

// TestConv2D_KnownValues checks a hand-computed single-channel case.
func TestConv2D_KnownValues(t *testing.T) {
	backend := New()

	// Input [1, 3, 3, 1]:
	// 1 2 3
	// 4 5 6
	// 7 8 9
	input := raw32(t, tensor.Shape{1, 3, 3, 1}, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	// Kernel [1, 2, 2, 1]:
	// 1 2
	// 3 4
	kernel := raw32(t, tensor.Shape{1, 2, 2, 1}, 1, 2, 3, 4)

	output := backend.Conv2D(input, kernel, [2]int{1, 1}, [2]int{0, 0}, [2]int{1, 1}, 1)

	// [0,0]: 1*1 + 2*2 + 3*4 + 4*5 = 37
	// [0,1]: 1*2 + 2*3 + 3*5 + 4*6 = 47
	// [1,0]: 1*4 + 2*5 + 3*7 + 4*8 = 67
	// [1,1]: 1*5 + 2*6 + 3*8 + 4*9 = 77
	assert.True(t, output.Shape().Equal(tensor.Shape{1, 2, 2, 1}))
	assert.Equal(t, []float32{37, 47, 67, 77}, output.AsFloat32())
}

func TestConv2D_MatchesReference(t *testing.T) {
	tests := []struct {
		name     string
		input    tensor.Shape
		weight   tensor.Shape
		stride   [2]int
		padding  [2]int
		dilation [2]int
		groups   int
	}{
		{"basic", tensor.Shape{2, 5, 5, 3}, tensor.Shape{4, 3, 3, 3}, [2]int{1, 1}, [2]int{0, 0}, [2]int{1, 1}, 1},
		{"padded", tensor.Shape{1, 4, 6, 2}, tensor.Shape{3, 3, 3, 2}, [2]int{1, 1}, [2]int{1, 2}, [2]int{1, 1}, 1},
		{"strided", tensor.Shape{1, 7, 7, 2}, tensor.Shape{2, 3, 2, 2}, [2]int{2, 3}, [2]int{1, 0}, [2]int{1, 1}, 1},
		{"dilated", tensor.Shape{1, 8, 8, 1}, tensor.Shape{2, 3, 3, 1}, [2]int{1, 1}, [2]int{2, 2}, [2]int{2, 2}, 1},
		{"grouped", tensor.Shape{2, 5, 5, 4}, tensor.Shape{6, 3, 3, 2}, [2]int{1, 1}, [2]int{1, 1}, [2]int{1, 1}, 2},
		{"depthwise", tensor.Shape{1, 4, 4, 3}, tensor.Shape{3, 2, 2, 1}, [2]int{1, 1}, [2]int{0, 0}, [2]int{1, 1}, 3},
	}

	backend := New()
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := randRaw(t, tt.input, uint64(2*i+1))
			weight := randRaw(t, tt.weight, uint64(2*i+2))

			got := backend.Conv2D(input, weight, tt.stride, tt.padding, tt.dilation, tt.groups)
			want, wantShape := naiveConv2D(input, weight, tt.stride, tt.padding, tt.dilation, tt.groups)

			require.True(t, got.Shape().Equal(wantShape), "shape %v, want %v", got.Shape(), wantShape)
			assert.InDeltaSlice(t, want, got.AsFloat32(), 1e-4)
		})
	}
}

func TestConv2D_ParallelMatchesSequential(t *testing.T) {
	input := randRaw(t, tensor.Shape{4, 9, 9, 3}, 7)
	weight := randRaw(t, tensor.Shape{5, 3, 3, 3}, 8)
	stride, padding, dilation := [2]int{1, 1}, [2]int{1, 1}, [2]int{1, 1}

	par := NewWithConfig(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 4})
	seq := NewWithConfig(parallel.Sequential())

	assert.Equal(t,
		seq.Conv2D(input, weight, stride, padding, dilation, 1).AsFloat32(),
		par.Conv2D(input, weight, stride, padding, dilation, 1).AsFloat32())
}

func TestConv1D_KnownValues(t *testing.T) {
	backend := New()

	// Input [1, 5, 1] = 1..5, kernel [1, 3, 1] = [1, 0, -1], padding 1.
	input := raw32(t, tensor.Shape{1, 5, 1}, 1, 2, 3, 4, 5)
	kernel := raw32(t, tensor.Shape{1, 3, 1}, 1, 0, -1)

	output := backend.Conv1D(input, kernel, 1, 1, 1, 1)

	// out[i] = x[i-1] - x[i+1] with zeros outside.
	assert.True(t, output.Shape().Equal(tensor.Shape{1, 5, 1}))
	assert.Equal(t, []float32{-2, -2, -2, -2, 4}, output.AsFloat32())
}

func TestConv1D_StrideAndChannels(t *testing.T) {
	backend := New()

	// Two input channels, the kernel sums both channels at a single tap.
	input := raw32(t, tensor.Shape{1, 4, 2}, 1, 10, 2, 20, 3, 30, 4, 40)
	kernel := raw32(t, tensor.Shape{1, 1, 2}, 1, 1)

	output := backend.Conv1D(input, kernel, 2, 0, 1, 1)

	assert.True(t, output.Shape().Equal(tensor.Shape{1, 2, 1}))
	assert.Equal(t, []float32{11, 33}, output.AsFloat32())
}

func TestConv3D_OutputShapeAndSum(t *testing.T) {
	backend := New()

	input := raw32(t, tensor.Shape{1, 3, 4, 5, 2}, ones32(120)...)
	kernel := raw32(t, tensor.Shape{3, 2, 2, 2, 2}, ones32(48)...)

	output := backend.Conv3D(input, kernel, [3]int{1, 1, 1}, [3]int{0, 0, 0}, [3]int{1, 1, 1}, 1)

	// Every output sums a full 2x2x2x2 window of ones.
	require.True(t, output.Shape().Equal(tensor.Shape{1, 2, 3, 4, 3}))
	for i, v := range output.AsFloat32() {
		if v != 16 {
			t.Fatalf("output[%d] = %v, want 16", i, v)
		}
	}
}

func TestConv3D_PaddingCountsOnlyInsideTaps(t *testing.T) {
	backend := New()

	input := raw32(t, tensor.Shape{1, 1, 1, 1, 1}, 5)
	kernel := raw32(t, tensor.Shape{1, 3, 3, 3, 1}, iota32(27)...)

	output := backend.Conv3D(input, kernel, [3]int{1, 1, 1}, [3]int{1, 1, 1}, [3]int{1, 1, 1}, 1)

	// Only the centre tap (index 13) overlaps the single input voxel.
	assert.True(t, output.Shape().Equal(tensor.Shape{1, 1, 1, 1, 1}))
	assert.Equal(t, []float32{65}, output.AsFloat32())
}

func TestConv2D_Float64(t *testing.T) {
	backend := New()

	input, err := tensor.NewRaw(tensor.Shape{1, 2, 2, 1}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	copy(input.AsFloat64(), []float64{1, 2, 3, 4})
	kernel, err := tensor.NewRaw(tensor.Shape{1, 2, 2, 1}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	copy(kernel.AsFloat64(), []float64{1, 1, 1, 1})

	output := backend.Conv2D(input, kernel, [2]int{1, 1}, [2]int{0, 0}, [2]int{1, 1}, 1)

	assert.Equal(t, []float64{10}, output.AsFloat64())
}

func TestConv_InvalidArgumentsPanic(t *testing.T) {
	backend := New()
	input := raw32(t, tensor.Shape{1, 4, 4, 4}, iota32(64)...)
	one := [2]int{1, 1}
	zero := [2]int{0, 0}

	tests := []struct {
		name string
		fn   func()
	}{
		{"wrong input rank", func() {
			backend.Conv2D(raw32(t, tensor.Shape{4, 4, 4}, iota32(64)...), raw32(t, tensor.Shape{1, 1, 1, 4}, 1, 1, 1, 1), one, zero, one, 1)
		}},
		{"channel mismatch", func() {
			backend.Conv2D(input, raw32(t, tensor.Shape{1, 1, 1, 3}, 1, 1, 1), one, zero, one, 1)
		}},
		{"groups do not divide", func() {
			backend.Conv2D(input, raw32(t, tensor.Shape{1, 1, 1, 1}, 1), one, zero, one, 3)
		}},
		{"kernel larger than input", func() {
			backend.Conv2D(input, raw32(t, tensor.Shape{1, 5, 5, 4}, iota32(100)...), one, zero, one, 1)
		}},
		{"zero stride", func() {
			backend.Conv2D(input, raw32(t, tensor.Shape{1, 1, 1, 4}, 1, 1, 1, 1), zero, zero, one, 1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
}
