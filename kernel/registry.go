package kernel

import (
	"github.com/YuminosukeSato/gaussproc/core/model"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

// Names written to and read from parameter files.
const (
	GaussianName = "GaussianKernel"
	PeriodicName = "PeriodicKernel"
)

// ParameterCount returns the number of parameters the named kernel takes,
// or false if the name is unknown.
func ParameterCount(name string) (int, bool) {
	switch name {
	case GaussianName:
		return 2, true
	case PeriodicName:
		return 3, true
	}
	return 0, false
}

// FromParameters rebuilds a kernel from its name and parameter vector.
// It returns an UnknownKernelError for an unrecognized name or a wrong
// number of parameters.
func FromParameters[T model.Float](name string, params []T) (Kernel[T], error) {
	want, ok := ParameterCount(name)
	if !ok {
		return nil, errors.NewUnknownKernelError(name, 0, len(params))
	}
	if len(params) != want {
		return nil, errors.NewUnknownKernelError(name, want, len(params))
	}

	switch name {
	case GaussianName:
		return NewGaussian(params[0], params[1]), nil
	default:
		return NewPeriodic(params[0], params[1], params[2]), nil
	}
}
