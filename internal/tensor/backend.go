package tensor

// Backend is the tensor engine the layers are written against. It exposes
// exactly the operations the convolution and normalization layers need;
// everything else (creation helpers, typed views) is built on top of NewRaw.
//
// Implementations must not modify their input tensors.
//
// Implementations:
//   - internal/backend/cpu: pure Go, channels-last convolutions
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with scalar)
	AddScalar(x *RawTensor, scalar any) *RawTensor
	MulScalar(x *RawTensor, scalar any) *RawTensor

	// Math operations (element-wise)
	Sqrt(x *RawTensor) *RawTensor  // square root
	Rsqrt(x *RawTensor) *RawTensor // reciprocal square root (1/sqrt(x))

	// Reduction
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor // sum along dimension

	// Shape and manipulation operations
	Reshape(x *RawTensor, newShape Shape) *RawTensor
	Slice(x *RawTensor, dim, start, end int) *RawTensor // half-open range [start, end) along dim
	Cat(tensors []*RawTensor, dim int) *RawTensor      // concatenate along dimension

	// Convolutions over channels-last inputs.
	//
	//	Conv1D: input [N, L, C],       weight [O, K, C/groups]
	//	Conv2D: input [N, H, W, C],    weight [O, KH, KW, C/groups]
	//	Conv3D: input [N, D, H, W, C], weight [O, KD, KH, KW, C/groups]
	//
	// Padding is symmetric zero padding applied to both sides of each spatial axis.
	Conv1D(input, weight *RawTensor, stride, padding, dilation, groups int) *RawTensor
	Conv2D(input, weight *RawTensor, stride, padding, dilation [2]int, groups int) *RawTensor
	Conv3D(input, weight *RawTensor, stride, padding, dilation [3]int, groups int) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
