package nn

import (
	"fmt"

	"github.com/born-ml/layers/internal/tensor"
)

// CircularPad2D pads the height and width axes of an NHWC tensor by
// wrapping values from the opposite edge.
//
// Height is wrapped first: the last padH rows become the top border and
// the first padH rows the bottom border. Width is then wrapped the same
// way on the height-padded tensor, so corners come from the diagonally
// opposite corner of the input.
//
// Both pads zero returns x itself. A pad equal to the axis size wraps the
// whole axis once on each side; larger pads return ErrPaddingTooLarge.
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{1, 4, 4, 3}, backend)
//	y, err := nn.CircularPad2D(x, 1, 1) // Shape: [1, 6, 6, 3]
func CircularPad2D[B tensor.Backend](x *tensor.Tensor[float32, B], padH, padW int) (*tensor.Tensor[float32, B], error) {
	shape := x.Shape()
	if len(shape) != 4 {
		return nil, fmt.Errorf("circular pad: expected 4D input [N,H,W,C], got shape %v: %w", shape, ErrInvalidShape)
	}
	if padH < 0 || padW < 0 {
		return nil, fmt.Errorf("circular pad: negative padding (%d, %d): %w", padH, padW, ErrInvalidPadding)
	}
	if padH > shape[1] {
		return nil, fmt.Errorf("circular pad: height padding %d exceeds height %d: %w", padH, shape[1], ErrPaddingTooLarge)
	}
	if padW > shape[2] {
		return nil, fmt.Errorf("circular pad: width padding %d exceeds width %d: %w", padW, shape[2], ErrPaddingTooLarge)
	}

	if padH == 0 && padW == 0 {
		return x, nil
	}

	out := x
	if padH > 0 {
		out = wrapAxis(out, 1, padH)
	}
	if padW > 0 {
		out = wrapAxis(out, 2, padW)
	}
	return out, nil
}

// wrapAxis concatenates [last pad entries, x, first pad entries] along dim.
func wrapAxis[B tensor.Backend](x *tensor.Tensor[float32, B], dim, pad int) *tensor.Tensor[float32, B] {
	size := x.Dim(dim)
	top := x.Slice(dim, size-pad, size)
	bottom := x.Slice(dim, 0, pad)
	return tensor.Cat([]*tensor.Tensor[float32, B]{top, x, bottom}, dim)
}
