package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/born-ml/layers/backend/cpu"
	"github.com/born-ml/layers/nn"
	"github.com/born-ml/layers/tensor"
)

// convFlags are the flag values shared by conv1d, conv2d and conv3d,
// expanded to one entry per spatial axis.
type convFlags struct {
	in, out, groups int
	bias            bool
	kernel          []int
	stride          []int
	padding         []int
	dilation        []int
	input           tensor.Shape
}

func addConvFlags(cmd *cobra.Command) {
	cmd.Flags().Int("in", 4, "Input channels")
	cmd.Flags().Int("out", 8, "Output channels")
	cmd.Flags().IntSlice("kernel", []int{3}, "Kernel size, one value or one per axis")
	cmd.Flags().IntSlice("stride", []int{1}, "Stride, one value or one per axis")
	cmd.Flags().IntSlice("padding", []int{0}, "Padding, one value or one per axis")
	cmd.Flags().IntSlice("dilation", []int{1}, "Dilation, one value or one per axis")
	cmd.Flags().Int("groups", 1, "Channel groups")
	cmd.Flags().Bool("bias", true, "Add a learned bias")
	addInputFlags(cmd)
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().IntSlice("input-shape", nil, "Full input shape, channels last (overrides --batch and --size)")
	cmd.Flags().Int("batch", 1, "Batch size of the random input")
	cmd.Flags().Int("size", 16, "Extent of every spatial axis of the random input")
}

// inputShape resolves the input flags to [batch, size x spatial, channels].
func inputShape(cmd *cobra.Command, spatial, channels int) (tensor.Shape, error) {
	explicit, err := cmd.Flags().GetIntSlice("input-shape")
	if err != nil {
		return nil, err
	}
	if len(explicit) > 0 {
		return tensor.Shape(explicit), nil
	}

	batch, err := cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}
	size, err := cmd.Flags().GetInt("size")
	if err != nil {
		return nil, err
	}

	shape := tensor.Shape{batch}
	for range spatial {
		shape = append(shape, size)
	}
	return append(shape, channels), nil
}

func readConvFlags(cmd *cobra.Command, spatial int) (*convFlags, error) {
	f := &convFlags{}
	var err error

	if f.in, err = cmd.Flags().GetInt("in"); err != nil {
		return nil, err
	}
	if f.out, err = cmd.Flags().GetInt("out"); err != nil {
		return nil, err
	}
	if f.groups, err = cmd.Flags().GetInt("groups"); err != nil {
		return nil, err
	}
	if f.bias, err = cmd.Flags().GetBool("bias"); err != nil {
		return nil, err
	}

	for _, a := range []struct {
		name string
		dst  *[]int
	}{
		{"kernel", &f.kernel},
		{"stride", &f.stride},
		{"padding", &f.padding},
		{"dilation", &f.dilation},
	} {
		vals, err := cmd.Flags().GetIntSlice(a.name)
		if err != nil {
			return nil, err
		}
		if *a.dst, err = axes(a.name, vals, spatial); err != nil {
			return nil, err
		}
	}

	if f.input, err = inputShape(cmd, spatial, f.in); err != nil {
		return nil, err
	}
	if len(f.input) != spatial+2 {
		return nil, fmt.Errorf("input shape %v: want %d dimensions", f.input, spatial+2)
	}
	if c := f.input[len(f.input)-1]; c != f.in {
		return nil, fmt.Errorf("input shape %v: last axis %d does not match --in %d", f.input, c, f.in)
	}
	return f, nil
}

// forward runs one module on random input and writes the report.
func forward(cmd *cobra.Command, env *runEnv, layer nn.Module[*cpu.Backend], params []*nn.Parameter[*cpu.Backend], shape tensor.Shape) error {
	x, err := env.randomInput(shape)
	if err != nil {
		return err
	}

	slog.Debug("forward", "layer", layer, "input", shapeString(shape))

	start := time.Now()
	y := layer.Forward(x)
	elapsed := time.Since(start)

	slog.Info("forward done", "output", shapeString(y.Shape()), "elapsed", elapsed)

	return writeReport(cmd.OutOrStdout(), report{
		layer:   fmt.Sprint(layer),
		input:   shape,
		output:  y,
		params:  params,
		elapsed: elapsed,
		seed:    env.seed,
	})
}

func newConv1DCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conv1d",
		Short: "Run a Conv1D layer on a random [N, L, C] input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := readConvFlags(cmd, 1)
			if err != nil {
				return err
			}
			env, err := newRunEnv(cmd)
			if err != nil {
				return err
			}

			cfg := nn.Conv1DConfig{
				InChannels:  f.in,
				OutChannels: f.out,
				KernelSize:  f.kernel[0],
				Stride:      f.stride[0],
				Padding:     f.padding[0],
				Dilation:    f.dilation[0],
				Groups:      f.groups,
				Bias:        f.bias,
				Source:      env.weights,
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("conv1d: %w", err)
			}

			layer := nn.NewConv1D(cfg, env.backend)
			if l := f.input[1]; layer.OutputSize(l) < 1 {
				return fmt.Errorf("conv1d: kernel does not fit input length %d", l)
			}
			return forward(cmd, env, layer, layer.Parameters(), f.input)
		},
	}
	addConvFlags(cmd)
	return cmd
}

func newConv2DCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conv2d",
		Short: "Run a Conv2D layer on a random [N, H, W, C] input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := readConvFlags(cmd, 2)
			if err != nil {
				return err
			}
			modeFlag, err := cmd.Flags().GetString("padding-mode")
			if err != nil {
				return err
			}
			mode, err := parsePaddingMode(modeFlag)
			if err != nil {
				return err
			}
			env, err := newRunEnv(cmd)
			if err != nil {
				return err
			}

			cfg := nn.Conv2DConfig{
				InChannels:  f.in,
				OutChannels: f.out,
				KernelSize:  [2]int(f.kernel),
				Stride:      [2]int(f.stride),
				Padding:     [2]int(f.padding),
				Dilation:    [2]int(f.dilation),
				Groups:      f.groups,
				Bias:        f.bias,
				PaddingMode: mode,
				Source:      env.weights,
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("conv2d: %w", err)
			}
			if mode == nn.PaddingCircular && (f.padding[0] > f.input[1] || f.padding[1] > f.input[2]) {
				return fmt.Errorf("conv2d: padding %v for input %dx%d: %w", f.padding, f.input[1], f.input[2], nn.ErrPaddingTooLarge)
			}

			layer := nn.NewConv2D(cfg, env.backend)
			if h, w := layer.OutputSize(f.input[1], f.input[2]); h < 1 || w < 1 {
				return fmt.Errorf("conv2d: kernel does not fit input %dx%d", f.input[1], f.input[2])
			}
			return forward(cmd, env, layer, layer.Parameters(), f.input)
		},
	}
	addConvFlags(cmd)
	cmd.Flags().String("padding-mode", "zeros", "Border fill: zeros or circular")
	return cmd
}

func newConv3DCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conv3d",
		Short: "Run a Conv3D layer on a random [N, D, H, W, C] input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := readConvFlags(cmd, 3)
			if err != nil {
				return err
			}
			env, err := newRunEnv(cmd)
			if err != nil {
				return err
			}

			cfg := nn.Conv3DConfig{
				InChannels:  f.in,
				OutChannels: f.out,
				KernelSize:  [3]int(f.kernel),
				Stride:      [3]int(f.stride),
				Padding:     [3]int(f.padding),
				Dilation:    [3]int(f.dilation),
				Groups:      f.groups,
				Bias:        f.bias,
				Source:      env.weights,
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("conv3d: %w", err)
			}

			layer := nn.NewConv3D(cfg, env.backend)
			if d, h, w := layer.OutputSize(f.input[1], f.input[2], f.input[3]); d < 1 || h < 1 || w < 1 {
				return fmt.Errorf("conv3d: kernel does not fit input %dx%dx%d", f.input[1], f.input[2], f.input[3])
			}
			return forward(cmd, env, layer, layer.Parameters(), f.input)
		},
	}
	addConvFlags(cmd)
	return cmd
}

func newRMSNormCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rmsnorm",
		Short: "Run RMSNorm on a random input normalized over its last axis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dims, err := cmd.Flags().GetInt("dims")
			if err != nil {
				return err
			}
			if dims <= 0 {
				return fmt.Errorf("rmsnorm: --dims must be positive, got %d", dims)
			}
			eps, err := cmd.Flags().GetFloat32("eps")
			if err != nil {
				return err
			}
			shape, err := inputShape(cmd, 1, dims)
			if err != nil {
				return err
			}
			if len(shape) == 0 || shape[len(shape)-1] != dims {
				return fmt.Errorf("rmsnorm: input shape %v must end in %d", shape, dims)
			}
			env, err := newRunEnv(cmd)
			if err != nil {
				return err
			}

			layer := nn.NewRMSNorm(dims, eps, env.backend)
			return forward(cmd, env, layer, layer.Parameters(), shape)
		},
	}
	cmd.Flags().Int("dims", 64, "Size of the normalized last axis")
	cmd.Flags().Float32("eps", nn.DefaultRMSNormEps, "Added to the mean square before rsqrt")
	addInputFlags(cmd)
	return cmd
}
