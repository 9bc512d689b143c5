package nn

import (
	"github.com/born-ml/layers/internal/tensor"
)

// Parameter is a named tensor owned by a layer, such as a weight or bias.
//
// Example:
//
//	weight := nn.NewParameter("conv2d.weight", weightTensor)
//	w := weight.Tensor()
type Parameter[B tensor.Backend] struct {
	name   string                     // Parameter name (e.g., "conv2d.weight")
	tensor *tensor.Tensor[float32, B] // The parameter tensor
}

// NewParameter creates a new parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Shape returns the shape of the parameter tensor.
func (p *Parameter[B]) Shape() tensor.Shape {
	return p.tensor.Shape()
}
