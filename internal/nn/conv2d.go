package nn

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/born-ml/layers/internal/tensor"
)

// Conv2DConfig configures a Conv2D layer. Per-axis values are [height, width].
//
// Zero Stride, Dilation and Groups entries mean 1.
type Conv2DConfig struct {
	InChannels  int
	OutChannels int
	KernelSize  [2]int
	Stride      [2]int
	Padding     [2]int
	Dilation    [2]int
	Groups      int
	Bias        bool
	PaddingMode PaddingMode
	Source      rand.Source // weight init source; nil uses the x/exp/rand global source, which is fixed-seeded
}

func (c Conv2DConfig) withDefaults() Conv2DConfig {
	for i := range 2 {
		c.Stride[i] = orOne(c.Stride[i])
		c.Dilation[i] = orOne(c.Dilation[i])
	}
	c.Groups = orOne(c.Groups)
	return c
}

func (c Conv2DConfig) geometry() convGeometry {
	return convGeometry{
		in: c.InChannels, out: c.OutChannels, groups: c.Groups,
		kernel:   c.KernelSize[:],
		stride:   c.Stride[:],
		padding:  c.Padding[:],
		dilation: c.Dilation[:],
	}
}

// Validate reports whether the config describes a valid layer.
// Errors wrap the package's Err* sentinels.
func (c Conv2DConfig) Validate() error {
	c = c.withDefaults()
	if c.PaddingMode != PaddingZeros && c.PaddingMode != PaddingCircular {
		return fmt.Errorf("padding mode %v: %w", c.PaddingMode, ErrInvalidPadding)
	}
	return c.geometry().validate()
}

// Conv2D applies a 2D convolution over an input of layout [N, H, W, C].
//
// Weight shape: [out_channels, kernel_h, kernel_w, in_channels/groups]
// Bias shape:   [out_channels]
// Output shape: [N, H', W', out_channels] with, per spatial axis,
//
//	out = (in + 2*padding - dilation*(kernel-1) - 1) / stride + 1
//
// With PaddingCircular the border is filled by CircularPad2D and the
// convolution itself runs unpadded; the output size formula is the same.
//
// Example:
//
//	conv := nn.NewConv2D(nn.Conv2DConfig{
//	    InChannels:  3,
//	    OutChannels: 16,
//	    KernelSize:  [2]int{3, 3},
//	    Padding:     [2]int{1, 1},
//	    Bias:        true,
//	}, backend)
//	y := conv.Forward(x) // [N, 32, 32, 3] -> [N, 32, 32, 16]
type Conv2D[B tensor.Backend] struct {
	cfg Conv2DConfig

	weight *Parameter[B] // [out_channels, kernel_h, kernel_w, in_channels/groups]
	bias   *Parameter[B] // [out_channels] or nil
}

// NewConv2D creates a Conv2D layer.
//
// Weights are drawn from U(-s, s), s = sqrt(1/(in_channels*kernel_h*kernel_w)).
// Bias, when enabled, starts at zero.
//
// Panics if cfg is invalid; call cfg.Validate first for an error instead.
func NewConv2D[B tensor.Backend](cfg Conv2DConfig, backend B) *Conv2D[B] {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("conv2d: %v", err))
	}

	weightShape := tensor.Shape{cfg.OutChannels, cfg.KernelSize[0], cfg.KernelSize[1], cfg.InChannels / cfg.Groups}
	weight := UniformInit(cfg.geometry().fanIn(), weightShape, cfg.Source, backend)

	var bias *Parameter[B]
	if cfg.Bias {
		bias = NewParameter("conv2d.bias", Zeros(tensor.Shape{cfg.OutChannels}, backend))
	}

	return &Conv2D[B]{
		cfg:    cfg,
		weight: NewParameter("conv2d.weight", weight),
		bias:   bias,
	}
}

// Forward convolves input [N, H, W, C] and returns [N, H', W', O].
//
// In circular mode a padding larger than the input panics with an error
// wrapping ErrPaddingTooLarge.
func (c *Conv2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	checkRank("conv2d", input.Shape(), 4, "N,H,W,C")

	padding := c.cfg.Padding
	if c.cfg.PaddingMode == PaddingCircular {
		padded, err := CircularPad2D(input, padding[0], padding[1])
		if err != nil {
			panic(fmt.Sprintf("conv2d: %v", err))
		}
		input = padded
		padding = [2]int{0, 0}
	}

	out := input.Conv2D(c.weight.Tensor(), c.cfg.Stride, padding, c.cfg.Dilation, c.cfg.Groups)
	return addBias(out, c.bias)
}

// OutputSize returns the output height and width for an input of the given size.
func (c *Conv2D[B]) OutputSize(height, width int) (int, int) {
	h := tensor.ConvOutputSize(height, c.cfg.KernelSize[0], c.cfg.Stride[0], c.cfg.Padding[0], c.cfg.Dilation[0])
	w := tensor.ConvOutputSize(width, c.cfg.KernelSize[1], c.cfg.Stride[1], c.cfg.Padding[1], c.cfg.Dilation[1])
	return h, w
}

// Parameters returns the weight and, if present, the bias.
func (c *Conv2D[B]) Parameters() []*Parameter[B] {
	return convParameters(c.weight, c.bias)
}

// Weight returns the weight parameter.
func (c *Conv2D[B]) Weight() *Parameter[B] { return c.weight }

// Bias returns the bias parameter, or nil when the layer has none.
func (c *Conv2D[B]) Bias() *Parameter[B] { return c.bias }

// Config returns the layer configuration with defaults applied.
func (c *Conv2D[B]) Config() Conv2DConfig { return c.cfg }

// String describes the layer's hyperparameters.
func (c *Conv2D[B]) String() string {
	return fmt.Sprintf("Conv2D(in_channels=%d, out_channels=%d, kernel_size=%v, stride=%v, padding=%v, dilation=%v, groups=%d, bias=%t, padding_mode=%v)",
		c.cfg.InChannels, c.cfg.OutChannels, c.cfg.KernelSize, c.cfg.Stride, c.cfg.Padding, c.cfg.Dilation, c.cfg.Groups, c.bias != nil, c.cfg.PaddingMode)
}
