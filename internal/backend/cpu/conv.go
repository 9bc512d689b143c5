package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/layers/internal/parallel"
	"github.com/born-ml/layers/internal/tensor"
)

// Conv1D performs 1D convolution over a channels-last input.
//
// Input shape:  [N, L, C]
// Weight shape: [O, K, C/groups]
// Output shape: [N, L_out, O]
func (cpu *CPUBackend) Conv1D(input, weight *tensor.RawTensor, stride, padding, dilation, groups int) *tensor.RawTensor {
	return cpu.conv("conv1d", input, weight, []int{stride}, []int{padding}, []int{dilation}, groups)
}

// Conv2D performs 2D convolution over a channels-last input.
//
// Input shape:  [N, H, W, C]
// Weight shape: [O, KH, KW, C/groups]
// Output shape: [N, H_out, W_out, O]
//
// Where:
//
//	H_out = (H + 2*padding[0] - dilation[0]*(KH-1) - 1) / stride[0] + 1
//	W_out = (W + 2*padding[1] - dilation[1]*(KW-1) - 1) / stride[1] + 1
func (cpu *CPUBackend) Conv2D(input, weight *tensor.RawTensor, stride, padding, dilation [2]int, groups int) *tensor.RawTensor {
	return cpu.conv("conv2d", input, weight, stride[:], padding[:], dilation[:], groups)
}

// Conv3D performs 3D convolution over a channels-last input.
//
// Input shape:  [N, D, H, W, C]
// Weight shape: [O, KD, KH, KW, C/groups]
// Output shape: [N, D_out, H_out, W_out, O]
func (cpu *CPUBackend) Conv3D(input, weight *tensor.RawTensor, stride, padding, dilation [3]int, groups int) *tensor.RawTensor {
	return cpu.conv("conv3d", input, weight, stride[:], padding[:], dilation[:], groups)
}

// convGeometry describes one N-d channels-last convolution.
type convGeometry struct {
	batch       int
	inChannels  int
	outChannels int
	groups      int

	inSize   tensor.Shape // spatial extents of the input
	kernel   tensor.Shape // spatial extents of the kernel
	outSize  tensor.Shape // spatial extents of the output
	stride   []int
	padding  []int
	dilation []int
}

//nolint:gocyclo,cyclop // shape validation is a flat list of checks
func (cpu *CPUBackend) conv(name string, input, weight *tensor.RawTensor, stride, padding, dilation []int, groups int) *tensor.RawTensor {
	spatial := len(stride)
	inShape := input.Shape()
	wShape := weight.Shape()

	if len(inShape) != spatial+2 {
		panic(fmt.Sprintf("%s: input must be %dD (channels-last), got %dD %v", name, spatial+2, len(inShape), inShape))
	}
	if len(wShape) != spatial+2 {
		panic(fmt.Sprintf("%s: weight must be %dD, got %dD %v", name, spatial+2, len(wShape), wShape))
	}
	if input.DType() != weight.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch input %s vs weight %s", name, input.DType(), weight.DType()))
	}
	if groups <= 0 {
		panic(fmt.Sprintf("%s: invalid groups %d", name, groups))
	}

	g := convGeometry{
		batch:       inShape[0],
		inChannels:  inShape[spatial+1],
		outChannels: wShape[0],
		groups:      groups,
		inSize:      inShape[1 : spatial+1].Clone(),
		kernel:      wShape[1 : spatial+1].Clone(),
		outSize:     make(tensor.Shape, spatial),
		stride:      stride,
		padding:     padding,
		dilation:    dilation,
	}

	if g.inChannels%groups != 0 || g.outChannels%groups != 0 {
		panic(fmt.Sprintf("%s: channels in=%d out=%d not divisible by groups=%d", name, g.inChannels, g.outChannels, groups))
	}
	if wShape[spatial+1] != g.inChannels/groups {
		panic(fmt.Sprintf("%s: weight expects %d input channels per group, input has %d channels in %d groups",
			name, wShape[spatial+1], g.inChannels, groups))
	}

	for d := 0; d < spatial; d++ {
		if stride[d] <= 0 || dilation[d] <= 0 || padding[d] < 0 {
			panic(fmt.Sprintf("%s: invalid stride=%v padding=%v dilation=%v", name, stride, padding, dilation))
		}
		g.outSize[d] = tensor.ConvOutputSize(g.inSize[d], g.kernel[d], stride[d], padding[d], dilation[d])
		if g.outSize[d] <= 0 {
			panic(fmt.Sprintf("%s: kernel %v does not fit input %v (padding=%v, dilation=%v)",
				name, g.kernel, g.inSize, padding, dilation))
		}
	}

	outShape := make(tensor.Shape, 0, spatial+2)
	outShape = append(outShape, g.batch)
	outShape = append(outShape, g.outSize...)
	outShape = append(outShape, g.outChannels)
	output := cpu.newResult(name, outShape, input.DType())

	switch input.DType() {
	case tensor.Float32:
		convChannelsLast(output.AsFloat32(), input.AsFloat32(), weight.AsFloat32(), &g, dot32, cpu.parallel)
	case tensor.Float64:
		convChannelsLast(output.AsFloat64(), input.AsFloat64(), weight.AsFloat64(), &g, dot64, cpu.parallel)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, input.DType()))
	}

	return output
}

// convChannelsLast is a direct convolution. Every (batch, output position)
// pair is one task that owns the out[task*O : (task+1)*O] row, so tasks never
// share output memory.
//
// For a kernel tap that lands inside the input, the contribution to output
// channel o of group g is the dot product of the input pixel's channel slice
// [g*Cg, (g+1)*Cg) with weight[o, tap, :]. Both vectors are contiguous in the
// channels-last layout. Taps that land in the zero padding contribute nothing.
func convChannelsLast[T float32 | float64](out, in, w []T, g *convGeometry, dot func(x, y []T) T, cfg parallel.Config) {
	rank := len(g.inSize)
	cg := g.inChannels / g.groups
	og := g.outChannels / g.groups

	inShape := make(tensor.Shape, 0, rank+2)
	inShape = append(append(append(inShape, g.batch), g.inSize...), g.inChannels)
	inStrides := inShape.ComputeStrides()

	wShape := make(tensor.Shape, 0, rank+2)
	wShape = append(append(append(wShape, g.outChannels), g.kernel...), cg)
	wStrides := wShape.ComputeStrides()

	positions := g.outSize.NumElements()
	taps := g.kernel.NumElements()

	parallel.For(g.batch*positions, func(task int) {
		n := task / positions
		acc := out[task*g.outChannels : (task+1)*g.outChannels]

		q := make([]int, rank)
		k := make([]int, rank)
		unravel(task%positions, g.outSize, q)

		for tap := 0; tap < taps; tap++ {
			unravel(tap, g.kernel, k)

			inOff := n * inStrides[0]
			wOff := 0
			inside := true
			for d := 0; d < rank; d++ {
				p := q[d]*g.stride[d] - g.padding[d] + k[d]*g.dilation[d]
				if p < 0 || p >= g.inSize[d] {
					inside = false
					break
				}
				inOff += p * inStrides[d+1]
				wOff += k[d] * wStrides[d+1]
			}
			if !inside {
				continue
			}

			for o := 0; o < g.outChannels; o++ {
				x := inOff + (o/og)*cg
				y := o*wStrides[0] + wOff
				acc[o] += dot(in[x:x+cg], w[y:y+cg])
			}
		}
	}, cfg)
}

// unravel converts a flat row-major index into coordinates over dims.
func unravel(idx int, dims tensor.Shape, coords []int) {
	for d := len(dims) - 1; d >= 0; d-- {
		coords[d] = idx % dims[d]
		idx /= dims[d]
	}
}

func dot32(x, y []float32) float32 {
	return blas32.Dot(
		blas32.Vector{N: len(x), Inc: 1, Data: x},
		blas32.Vector{N: len(y), Inc: 1, Data: y},
	)
}

func dot64(x, y []float64) float64 {
	return blas64.Dot(
		blas64.Vector{N: len(x), Inc: 1, Data: x},
		blas64.Vector{N: len(y), Inc: 1, Data: y},
	)
}
