package tensor

// Conv1D convolves a [N, L, C] input with a [O, K, C/groups] weight.
// Output shape: [N, L', O] with L' = (L + 2*padding - dilation*(K-1) - 1)/stride + 1.
func (t *Tensor[T, B]) Conv1D(weight *Tensor[T, B], stride, padding, dilation, groups int) *Tensor[T, B] {
	return New[T, B](t.backend.Conv1D(t.raw, weight.raw, stride, padding, dilation, groups), t.backend)
}

// Conv2D convolves a [N, H, W, C] input with a [O, KH, KW, C/groups] weight.
// Output shape: [N, H', W', O].
func (t *Tensor[T, B]) Conv2D(weight *Tensor[T, B], stride, padding, dilation [2]int, groups int) *Tensor[T, B] {
	return New[T, B](t.backend.Conv2D(t.raw, weight.raw, stride, padding, dilation, groups), t.backend)
}

// Conv3D convolves a [N, D, H, W, C] input with a [O, KD, KH, KW, C/groups] weight.
// Output shape: [N, D', H', W', O].
func (t *Tensor[T, B]) Conv3D(weight *Tensor[T, B], stride, padding, dilation [3]int, groups int) *Tensor[T, B] {
	return New[T, B](t.backend.Conv3D(t.raw, weight.raw, stride, padding, dilation, groups), t.backend)
}

// ConvOutputSize returns the extent of one spatial output axis.
// A result < 1 means the kernel does not fit.
func ConvOutputSize(in, kernel, stride, padding, dilation int) int {
	span := in + 2*padding - dilation*(kernel-1) - 1
	if span < 0 {
		return 0
	}
	return span/stride + 1
}
