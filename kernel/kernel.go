// Package kernel provides covariance functions for Gaussian process
// regression and the name registry used when restoring a model from disk.
package kernel

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/gaussproc/core/model"
)

// Kernel is a symmetric positive semi-definite similarity function.
//
// Name is written to the parameter file as a type tag and Parameters
// must return values that FromParameters accepts for the same name.
type Kernel[T model.Float] interface {
	Evaluate(x, y []T) T
	Name() string
	Parameters() []T
	Equal(other Kernel[T]) bool
}

// squaredDistance returns ||x-y||^2 accumulated in float64.
func squaredDistance[T model.Float](x, y []T) float64 {
	if xs, ok := any(x).([]float64); ok {
		d := floats.Distance(xs, any(y).([]float64), 2)
		return d * d
	}
	var sum float64
	for i := range x {
		d := float64(x[i]) - float64(y[i])
		sum += d * d
	}
	return sum
}

func equalParameters[T model.Float](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sameKernel reports whether other has the given name and parameters.
func sameKernel[T model.Float](name string, params []T, other Kernel[T]) bool {
	if other == nil {
		return false
	}
	return other.Name() == name && equalParameters(params, other.Parameters())
}

// Gaussian is the squared exponential kernel
//
//	k(x, y) = scale * exp(-0.5 * ||x-y||^2 / sigma^2)
type Gaussian[T model.Float] struct {
	sigma T
	scale T
}

// NewGaussian returns a Gaussian kernel with length-scale sigma and signal
// variance scale.
func NewGaussian[T model.Float](sigma, scale T) *Gaussian[T] {
	return &Gaussian[T]{sigma: sigma, scale: scale}
}

func (g *Gaussian[T]) Evaluate(x, y []T) T {
	s := float64(g.sigma)
	return T(float64(g.scale) * math.Exp(-0.5*squaredDistance(x, y)/(s*s)))
}

func (g *Gaussian[T]) Name() string { return GaussianName }

// Parameters returns [sigma, scale].
func (g *Gaussian[T]) Parameters() []T { return []T{g.sigma, g.scale} }

func (g *Gaussian[T]) Equal(other Kernel[T]) bool {
	return sameKernel(GaussianName, g.Parameters(), other)
}

// Periodic is the exp-sine-squared kernel
//
//	k(x, y) = scale * exp(-sum_i sin^2(pi*(x_i-y_i)/period) / sigma^2)
type Periodic[T model.Float] struct {
	scale  T
	period T
	sigma  T
}

// NewPeriodic returns a periodic kernel.
func NewPeriodic[T model.Float](scale, period, sigma T) *Periodic[T] {
	return &Periodic[T]{scale: scale, period: period, sigma: sigma}
}

func (p *Periodic[T]) Evaluate(x, y []T) T {
	w := math.Pi / float64(p.period)
	var sum float64
	for i := range x {
		s := math.Sin(w * (float64(x[i]) - float64(y[i])))
		sum += s * s
	}
	sg := float64(p.sigma)
	return T(float64(p.scale) * math.Exp(-sum/(sg*sg)))
}

func (p *Periodic[T]) Name() string { return PeriodicName }

// Parameters returns [scale, period, sigma].
func (p *Periodic[T]) Parameters() []T { return []T{p.scale, p.period, p.sigma} }

func (p *Periodic[T]) Equal(other Kernel[T]) bool {
	return sameKernel(PeriodicName, p.Parameters(), other)
}
