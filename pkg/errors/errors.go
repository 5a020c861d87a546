// Package errors provides structured error handling and warnings for NumGo.
//
// The taxonomy separates programming mistakes (ValidationError, DimensionError),
// lifecycle misuse (NotReadyError, LockedError) and expected algorithmic
// outcomes (EstimationError, ConvergenceWarning) so that callers can branch on
// the kind of failure with errors.As instead of string matching. All
// constructors attach a stack trace via cockroachdb/errors, and every type
// implements zerolog's ObjectMarshaler for structured log output.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to the standard logger.
		log.Printf("NumGo-Warning: %v\n", w)
	}
	// zerolog warning sink, wired lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler installs a process-wide handler for NumGo warnings such as
// ConvergenceWarning. Pass a no-op function to silence warnings entirely.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink. When set it takes
// precedence over the plain handler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning through the installed sink.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// ConvergenceWarning is raised when an iterative algorithm exhausts its
// iteration budget without meeting its tolerance.
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s failed to converge after %d iterations: %s", w.Algorithm, w.Iterations, w.Message)
	}
	return fmt.Sprintf("%s failed to converge after %d iterations. Consider increasing max iterations or relaxing the tolerance.", w.Algorithm, w.Iterations)
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning creates a new ConvergenceWarning.
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// ValidationError reports a parameter that failed validation, such as a
// confidence outside (0,1) or a non-positive inlier threshold.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("numgo: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a new ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// DimensionError reports an input whose length does not match what the
// operation expects, such as a quality-score slice shorter than the sample
// set it scores.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("numgo: %s: dimension mismatch. Expected %d, got %d", e.Op, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace.
func NewDimensionError(op string, expected, got int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// NotReadyError reports that an operation was invoked before its required
// inputs were supplied, e.g. Estimate() before sample data is set.
type NotReadyError struct {
	Op      string
	Missing string
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("numgo: %s: not ready: %s must be set first", e.Op, e.Missing)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *NotReadyError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("missing", e.Missing).
		Str("type", "NotReadyError")
}

// NewNotReadyError creates a new NotReadyError with a stack trace.
func NewNotReadyError(op, missing string) error {
	err := &NotReadyError{Op: op, Missing: missing}
	return errors.WithStack(err)
}

// LockedError reports a mutating call made while an estimation is in flight.
// Mutation is rejected immediately rather than queued or blocked.
type LockedError struct {
	Op string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("numgo: %s: engine is locked by a running estimation", e.Op)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *LockedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("type", "LockedError")
}

// NewLockedError creates a new LockedError with a stack trace.
func NewLockedError(op string) error {
	err := &LockedError{Op: op}
	return errors.WithStack(err)
}

// EstimationError reports that a robust estimation exhausted its iteration
// budget without ever producing a valid hypothesis. This is the expected
// outcome for pathological inputs and is deliberately distinct from the
// configuration errors above: on EstimationError a caller may relax the
// threshold or confidence, while a ValidationError means a programming error.
type EstimationError struct {
	Op         string
	Iterations int
	Reason     string
}

func (e *EstimationError) Error() string {
	return fmt.Sprintf("numgo: %s: robust estimation failed after %d iterations: %s", e.Op, e.Iterations, e.Reason)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *EstimationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("iterations", e.Iterations).
		Str("reason", e.Reason).
		Str("type", "EstimationError")
}

// NewEstimationError creates a new EstimationError with a stack trace.
func NewEstimationError(op string, iterations int, reason string) error {
	err := &EstimationError{Op: op, Iterations: iterations, Reason: reason}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is invalid for the operation,
// such as a bracketing interval with no sign change.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("numgo: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// NumericalInstabilityError reports NaN, Inf, overflow or underflow detected
// during a numerical computation.
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
	Iteration int
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("numgo: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Int("iteration", e.Iteration).
		Floats64("values", e.Values).
		Str("type", "NumericalInstabilityError")
}

// NewNumericalInstabilityError creates a new NumericalInstabilityError.
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives no data.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when a linear solve meets a singular matrix.
	ErrSingularMatrix = New("singular matrix")
)
