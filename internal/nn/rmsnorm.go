package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/layers/internal/tensor"
)

// DefaultRMSNormEps is the default epsilon for RMSNorm.
const DefaultRMSNormEps float32 = 1e-5

// RMSNorm applies Root Mean Square Normalization along the last dimension.
//
// Formula: Y = weight * X * rsqrt(sum((X * S)^2) + eps), S = 1/sqrt(N)
//
// Where N is the size of the last dimension. Scaling by S before squaring
// keeps the sum in range for large N or large inputs; the result equals
// X / sqrt(mean(X^2) + eps).
//
// Example:
//
//	norm := nn.NewRMSNorm(768, nn.DefaultRMSNormEps, backend)
//	output := norm.Forward(hidden) // [..., 768] -> [..., 768]
type RMSNorm[B tensor.Backend] struct {
	Weight *Parameter[B] // scale [dims], initialized to ones
	Eps    float32       // numerical stability constant
}

// NewRMSNorm creates a new RMSNorm layer over a last axis of size dims.
//
// Panics if dims is not positive.
func NewRMSNorm[B tensor.Backend](dims int, eps float32, backend B) *RMSNorm[B] {
	if dims <= 0 {
		panic(fmt.Sprintf("rmsnorm: dimensions must be positive, got %d", dims))
	}

	return &RMSNorm[B]{
		Weight: NewParameter("rmsnorm.weight", Ones(tensor.Shape{dims}, backend)),
		Eps:    eps,
	}
}

// Forward normalizes x over its last axis. The output has the shape of x.
//
// Algorithm:
//  1. S = 1/sqrt(N)
//  2. n = rsqrt(sum((x*S)^2, axis=-1, keepDim) + eps)
//  3. output = weight * x * n
func (r *RMSNorm[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	n := x.Dim(-1)
	scale := float32(1 / math.Sqrt(float64(n)))

	sumSq := x.MulScalar(scale).Square().SumDim(-1, true)
	norm := sumSq.AddScalar(r.Eps).Rsqrt()

	return r.Weight.Tensor().Mul(x).Mul(norm)
}

// Dims returns the size of the normalized axis.
func (r *RMSNorm[B]) Dims() int {
	return r.Weight.Shape()[0]
}

// Parameters returns the scale weight.
func (r *RMSNorm[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{r.Weight}
}

// String describes the layer's hyperparameters.
func (r *RMSNorm[B]) String() string {
	return fmt.Sprintf("RMSNorm(dimensions=%d, eps=%v)", r.Dims(), r.Eps)
}
