// Package gaussproc provides Gaussian process regression for Go,
// designed for small to medium data sets where exact inference is affordable
// and a calibrated uncertainty estimate matters.
//
// A model learns a mapping from input vectors to output vectors. Predictions
// come with the posterior covariance, a 95% credible interval and the
// Jacobian of the posterior mean.
//
// # Features
//
// - Generic over float32 and float64
// - Gaussian and periodic kernels, resolvable by name
// - Four Gram matrix inversion methods (LU, two SVD variants, eigen decomposition)
// - Lazy training with an explicit Dirty/Ready lifecycle
// - Plain-text persistence with exact round trip
// - Structured logging through zerolog or slog
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gaussproc/gp"
//	    "github.com/YuminosukeSato/gaussproc/kernel"
//	)
//
//	func main() {
//	    model, err := gp.New[float64](kernel.NewGaussian(1.0, 1.0), gp.WithSigma(0.01))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = model.AddSample([]float64{0}, []float64{0})
//	    _ = model.AddSample([]float64{1}, []float64{1})
//	    _ = model.AddSample([]float64{2}, []float64{4})
//
//	    y, err := model.Predict([]float64{1.5})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Prediction:", y)
//	}
//
// # Packages
//
//   - gp: the Gaussian process model, training, prediction and persistence
//   - kernel: covariance functions and the name registry
//   - preprocessing: input standardization
//   - metrics: regression metrics (MSE, RMSE, MAE, R²)
//   - diagnostics: posterior plots
//   - core/model: shared interfaces, scalar constraint and lifecycle
//   - core/parallel: parallel processing utilities
//   - pkg/matio: whitespace-separated matrix files
//   - pkg/errors: error types and numerical checks
//   - pkg/log: structured logging
package gaussproc
