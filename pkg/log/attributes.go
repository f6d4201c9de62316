// Standard attribute keys for Gaussian process operations.
//
// The keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so that records from training, prediction and
// persistence can be filtered consistently.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "GaussianProcess[float64]"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "predict_derivative", "save", "load"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of stored samples.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the input dimension.
	FeaturesKey = "data.features"

	// TargetsKey indicates the output dimension.
	TargetsKey = "data.targets"
)

// Gaussian process configuration
const (
	// KernelKey is the kernel name as written to the parameter file.
	KernelKey = "gp.kernel"

	// KernelParamsKey holds the kernel parameter vector.
	KernelParamsKey = "gp.kernel_params"

	// SigmaKey is the observation noise added to the Gram diagonal.
	SigmaKey = "gp.sigma"

	// InversionMethodKey names the inversion strategy in use.
	InversionMethodKey = "gp.inversion_method"

	// EfficientStorageKey reports whether the core matrix is dropped after solving.
	EfficientStorageKey = "gp.efficient_storage"

	// LogDeterminantKey records log|K + sigma*I|.
	LogDeterminantKey = "gp.log_determinant"
)

// Persistence
const (
	// PathKey is a file path or path prefix.
	PathKey = "io.path"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// R2ScoreKey records R² coefficient of determination.
	R2ScoreKey = "metrics.r2_score"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"

	// SuggestionKey provides hints for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationFit               = "fit"
	OperationPredict           = "predict"
	OperationPredictDerivative = "predict_derivative"
	OperationSave              = "save"
	OperationLoad              = "load"
	OperationCompare           = "compare"

	PhaseTraining  = "training"
	PhaseInference = "inference"
	PhasePersist   = "persistence"

	ErrorNotInitialized    = "NOT_INITIALIZED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
	ErrorIllConditioned    = "ILL_CONDITIONED"
)
