package gp

import (
	"math"

	"github.com/YuminosukeSato/gaussproc/pkg/errors"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
)

// defaultParallelThreshold はこのサンプル数以下で並列化しない閾値です。
const defaultParallelThreshold = 64

type config struct {
	sigma             float64
	invMethod         InversionMethod
	efficientStorage  bool
	debug             bool
	parallelThreshold int
	logger            log.Logger
}

// Option is a function that configures GaussianProcess
type Option func(*config)

// WithSigma sets the observation noise added to the kernel matrix diagonal
func WithSigma(sigma float64) Option {
	return func(c *config) {
		c.sigma = sigma
	}
}

// WithInversionMethod sets how the regularized kernel matrix is inverted
func WithInversionMethod(m InversionMethod) Option {
	return func(c *config) {
		c.invMethod = m
	}
}

// WithEfficientStorage drops the inverted kernel matrix after solving
func WithEfficientStorage(on bool) Option {
	return func(c *config) {
		c.efficientStorage = on
	}
}

// WithDebug enables trace records at Info level
func WithDebug(on bool) Option {
	return func(c *config) {
		c.debug = on
	}
}

// WithLogger sets the logger. The default is log.GetLoggerWithName("gp")
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithParallelThreshold sets the sample count at or below which kernel
// evaluations run sequentially
func WithParallelThreshold(n int) Option {
	return func(c *config) {
		c.parallelThreshold = n
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := config{
		invMethod:         FullPivotLU,
		parallelThreshold: defaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validateSigma(cfg.sigma); err != nil {
		return cfg, err
	}
	if !cfg.invMethod.valid() {
		return cfg, errors.NewValidationError("inversion_method", "unknown method", int(cfg.invMethod))
	}
	if cfg.parallelThreshold < 0 {
		return cfg, errors.NewValidationError("parallel_threshold", "must be non-negative", cfg.parallelThreshold)
	}
	return cfg, nil
}

func validateSigma(sigma float64) error {
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma < 0 {
		return errors.NewValidationError("sigma", "must be a finite non-negative value", sigma)
	}
	return nil
}
