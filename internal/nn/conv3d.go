package nn

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/born-ml/layers/internal/tensor"
)

// Conv3DConfig configures a Conv3D layer. Per-axis values are
// [depth, height, width].
//
// Zero Stride, Dilation and Groups entries mean 1.
type Conv3DConfig struct {
	InChannels  int
	OutChannels int
	KernelSize  [3]int
	Stride      [3]int
	Padding     [3]int
	Dilation    [3]int
	Groups      int
	Bias        bool
	Source      rand.Source // weight init source; nil uses the x/exp/rand global source, which is fixed-seeded
}

func (c Conv3DConfig) withDefaults() Conv3DConfig {
	for i := range 3 {
		c.Stride[i] = orOne(c.Stride[i])
		c.Dilation[i] = orOne(c.Dilation[i])
	}
	c.Groups = orOne(c.Groups)
	return c
}

func (c Conv3DConfig) geometry() convGeometry {
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
func (c Conv3DConfig) Validate() error {
	return c.withDefaults().geometry().validate()
}

// Conv3D applies a 3D convolution over an input of layout [N, D, H, W, C].
//
// Weight shape: [out_channels, kernel_d, kernel_h, kernel_w, in_channels/groups]
// Bias shape:   [out_channels]
// Output shape: [N, D', H', W', out_channels]
//
// Like Conv1D and Conv2D, in_channels must be divisible by groups.
type Conv3D[B tensor.Backend] struct {
	cfg Conv3DConfig

	weight *Parameter[B] // [out_channels, kernel_d, kernel_h, kernel_w, in_channels/groups]
	bias   *Parameter[B] // [out_channels] or nil
}

// NewConv3D creates a Conv3D layer.
//
// Weights are drawn from U(-s, s), s = sqrt(1/(in_channels*kernel_d*kernel_h*kernel_w)).
// Bias, when enabled, starts at zero.
//
// Panics if cfg is invalid; call cfg.Validate first for an error instead.
func NewConv3D[B tensor.Backend](cfg Conv3DConfig, backend B) *Conv3D[B] {
	cfg = cfg.withDefaults()
	geom := cfg.geometry()
	if err := geom.validate(); err != nil {
		panic(fmt.Sprintf("conv3d: %v", err))
	}

	k := cfg.KernelSize
	weightShape := tensor.Shape{cfg.OutChannels, k[0], k[1], k[2], cfg.InChannels / cfg.Groups}
	weight := UniformInit(geom.fanIn(), weightShape, cfg.Source, backend)

	var bias *Parameter[B]
	if cfg.Bias {
		bias = NewParameter("conv3d.bias", Zeros(tensor.Shape{cfg.OutChannels}, backend))
	}

	return &Conv3D[B]{
		cfg:    cfg,
		weight: NewParameter("conv3d.weight", weight),
		bias:   bias,
	}
}

// Forward convolves input [N, D, H, W, C] and returns [N, D', H', W', O].
func (c *Conv3D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	checkRank("conv3d", input.Shape(), 5, "N,D,H,W,C")

	out := input.Conv3D(c.weight.Tensor(), c.cfg.Stride, c.cfg.Padding, c.cfg.Dilation, c.cfg.Groups)
	return addBias(out, c.bias)
}

// OutputSize returns the output depth, height and width for an input of
// the given size.
func (c *Conv3D[B]) OutputSize(depth, height, width int) (int, int, int) {
	in := [3]int{depth, height, width}
	var out [3]int
	for i := range 3 {
		out[i] = tensor.ConvOutputSize(in[i], c.cfg.KernelSize[i], c.cfg.Stride[i], c.cfg.Padding[i], c.cfg.Dilation[i])
	}
	return out[0], out[1], out[2]
}

// Parameters returns the weight and, if present, the bias.
func (c *Conv3D[B]) Parameters() []*Parameter[B] {
	return convParameters(c.weight, c.bias)
}

// Weight returns the weight parameter.
func (c *Conv3D[B]) Weight() *Parameter[B] { return c.weight }

// Bias returns the bias parameter, or nil when the layer has none.
func (c *Conv3D[B]) Bias() *Parameter[B] { return c.bias }

// Config returns the layer configuration with defaults applied.
func (c *Conv3D[B]) Config() Conv3DConfig { return c.cfg }

// String describes the layer's hyperparameters.
func (c *Conv3D[B]) String() string {
	return fmt.Sprintf("Conv3D(in_channels=%d, out_channels=%d, kernel_size=%v, stride=%v, padding=%v, dilation=%v, groups=%d, bias=%t)",
		c.cfg.InChannels, c.cfg.OutChannels, c.cfg.KernelSize, c.cfg.Stride, c.cfg.Padding, c.cfg.Dilation, c.cfg.Groups, c.bias != nil)
}
