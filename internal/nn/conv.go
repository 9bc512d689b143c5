package nn

import (
	"fmt"

	"github.com/born-ml/layers/internal/tensor"
)

// PaddingMode selects how Conv2D fills the border around its input.
type PaddingMode int

const (
	// PaddingZeros pads with zeros inside the convolution primitive.
	PaddingZeros PaddingMode = iota
	// PaddingCircular wraps values from the opposite edge (see CircularPad2D).
	PaddingCircular
)

// String returns the mode name.
func (m PaddingMode) String() string {
	switch m {
	case PaddingZeros:
		return "zeros"
	case PaddingCircular:
		return "circular"
	default:
		return fmt.Sprintf("PaddingMode(%d)", int(m))
	}
}

// convGeometry is the dimension-independent view of a conv config used
// for validation.
type convGeometry struct {
	in, out, groups int
	kernel          []int
	stride          []int
	padding         []int
	dilation        []int
}

func (g convGeometry) validate() error {
	if g.in <= 0 || g.out <= 0 {
		return fmt.Errorf("in=%d, out=%d: %w", g.in, g.out, ErrInvalidChannels)
	}
	if g.groups <= 0 {
		return fmt.Errorf("groups=%d must be positive: %w", g.groups, ErrGroupsMismatch)
	}
	if g.in%g.groups != 0 {
		return fmt.Errorf("in_channels %d %% groups %d != 0: %w", g.in, g.groups, ErrGroupsMismatch)
	}
	if g.out%g.groups != 0 {
		return fmt.Errorf("out_channels %d %% groups %d != 0: %w", g.out, g.groups, ErrGroupsMismatch)
	}
	for i := range g.kernel {
		if g.kernel[i] <= 0 {
			return fmt.Errorf("kernel_size %v: %w", g.kernel, ErrInvalidKernel)
		}
		if g.stride[i] <= 0 {
			return fmt.Errorf("stride %v: %w", g.stride, ErrInvalidStride)
		}
		if g.padding[i] < 0 {
			return fmt.Errorf("padding %v: %w", g.padding, ErrInvalidPadding)
		}
		if g.dilation[i] <= 0 {
			return fmt.Errorf("dilation %v: %w", g.dilation, ErrInvalidDilation)
		}
	}
	return nil
}

// fanIn is the number of inputs per output element: in_channels times the
// kernel volume.
func (g convGeometry) fanIn() int {
	n := g.in
	for _, k := range g.kernel {
		n *= k
	}
	return n
}

// orOne replaces zero entries with 1.
func orOne(v int) int {
	if v == 0 {
		return 1
	}
	return v
}

// addBias broadcasts a [O] bias over the channel (last) axis.
func addBias[B tensor.Backend](out *tensor.Tensor[float32, B], bias *Parameter[B]) *tensor.Tensor[float32, B] {
	if bias == nil {
		return out
	}
	return out.Add(bias.Tensor())
}

func convParameters[B tensor.Backend](weight, bias *Parameter[B]) []*Parameter[B] {
	if bias != nil {
		return []*Parameter[B]{weight, bias}
	}
	return []*Parameter[B]{weight}
}

func checkRank(layer string, input tensor.Shape, rank int, layout string) {
	if len(input) != rank {
		panic(fmt.Sprintf("%s: expected %dD input [%s], got shape %v", layer, rank, layout, input))
	}
}
