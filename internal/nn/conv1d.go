package nn

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/born-ml/layers/internal/tensor"
)

// Conv1DConfig configures a Conv1D layer.
//
// Zero Stride, Dilation and Groups mean 1.
type Conv1DConfig struct {
	InChannels  int
	OutChannels int
	KernelSize  int
	Stride      int
	Padding     int
	Dilation    int
	Groups      int
	Bias        bool        // add a learned [OutChannels] bias
	Source      rand.Source // weight init source; nil uses the x/exp/rand global source, which is fixed-seeded
}

func (c Conv1DConfig) withDefaults() Conv1DConfig {
	c.Stride = orOne(c.Stride)
	c.Dilation = orOne(c.Dilation)
	c.Groups = orOne(c.Groups)
	return c
}

func (c Conv1DConfig) geometry() convGeometry {
	return convGeometry{
		in: c.InChannels, out: c.OutChannels, groups: c.Groups,
		kernel:   []int{c.KernelSize},
		stride:   []int{c.Stride},
		padding:  []int{c.Padding},
		dilation: []int{c.Dilation},
	}
}

// Validate reports whether the config describes a valid layer.
// Errors wrap the package's Err* sentinels.
func (c Conv1DConfig) Validate() error {
	return c.withDefaults().geometry().validate()
}

// Conv1D applies a 1D convolution over an input of layout [N, L, C].
//
// Weight shape: [out_channels, kernel_size, in_channels/groups]
// Bias shape:   [out_channels]
// Output shape: [N, L', out_channels] with
//
//	L' = (L + 2*padding - dilation*(kernel_size-1) - 1) / stride + 1
//
// Example:
//
//	conv := nn.NewConv1D(nn.Conv1DConfig{InChannels: 16, OutChannels: 32, KernelSize: 3, Padding: 1, Bias: true}, backend)
//	y := conv.Forward(x) // [N, L, 16] -> [N, L, 32]
type Conv1D[B tensor.Backend] struct {
	cfg Conv1DConfig

	weight *Parameter[B] // [out_channels, kernel_size, in_channels/groups]
	bias   *Parameter[B] // [out_channels] or nil
}

// NewConv1D creates a Conv1D layer.
//
// Weights are drawn from U(-s, s), s = sqrt(1/(in_channels*kernel_size)).
// Bias, when enabled, starts at zero.
//
// Panics if cfg is invalid; call cfg.Validate first for an error instead.
func NewConv1D[B tensor.Backend](cfg Conv1DConfig, backend B) *Conv1D[B] {
	cfg = cfg.withDefaults()
	geom := cfg.geometry()
	if err := geom.validate(); err != nil {
		panic(fmt.Sprintf("conv1d: %v", err))
	}

	weightShape := tensor.Shape{cfg.OutChannels, cfg.KernelSize, cfg.InChannels / cfg.Groups}
	weight := UniformInit(geom.fanIn(), weightShape, cfg.Source, backend)

	var bias *Parameter[B]
	if cfg.Bias {
		bias = NewParameter("conv1d.bias", Zeros(tensor.Shape{cfg.OutChannels}, backend))
	}

	return &Conv1D[B]{
		cfg:    cfg,
		weight: NewParameter("conv1d.weight", weight),
		bias:   bias,
	}
}

// Forward convolves input [N, L, C] and returns [N, L', O].
func (c *Conv1D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	checkRank("conv1d", input.Shape(), 3, "N,L,C")

	out := input.Conv1D(c.weight.Tensor(), c.cfg.Stride, c.cfg.Padding, c.cfg.Dilation, c.cfg.Groups)
	return addBias(out, c.bias)
}

// OutputSize returns the output length for an input of the given length.
func (c *Conv1D[B]) OutputSize(length int) int {
	return tensor.ConvOutputSize(length, c.cfg.KernelSize, c.cfg.Stride, c.cfg.Padding, c.cfg.Dilation)
}

// Parameters returns the weight and, if present, the bias.
func (c *Conv1D[B]) Parameters() []*Parameter[B] {
	return convParameters(c.weight, c.bias)
}

// Weight returns the weight parameter.
func (c *Conv1D[B]) Weight() *Parameter[B] { return c.weight }

// Bias returns the bias parameter, or nil when the layer has none.
func (c *Conv1D[B]) Bias() *Parameter[B] { return c.bias }

// Config returns the layer configuration with defaults applied.
func (c *Conv1D[B]) Config() Conv1DConfig { return c.cfg }

// String describes the layer's hyperparameters.
func (c *Conv1D[B]) String() string {
	return fmt.Sprintf("Conv1D(in_channels=%d, out_channels=%d, kernel_size=%d, stride=%d, padding=%d, dilation=%d, groups=%d, bias=%t)",
		c.cfg.InChannels, c.cfg.OutChannels, c.cfg.KernelSize, c.cfg.Stride, c.cfg.Padding, c.cfg.Dilation, c.cfg.Groups, c.bias != nil)
}
