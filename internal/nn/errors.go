package nn

import "errors"

// Validation errors returned by layer configs and CircularPad2D.
// Test with errors.Is.
var (
	ErrInvalidChannels = errors.New("invalid channel count")
	ErrGroupsMismatch  = errors.New("channels not divisible by groups")
	ErrInvalidKernel   = errors.New("invalid kernel size")
	ErrInvalidStride   = errors.New("invalid stride")
	ErrInvalidPadding  = errors.New("invalid padding")
	ErrInvalidDilation = errors.New("invalid dilation")
	ErrPaddingTooLarge = errors.New("padding larger than input")
	ErrInvalidShape    = errors.New("invalid input shape")
)
