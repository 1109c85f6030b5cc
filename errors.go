package replica

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrDepthExceeded indicates a graph nested deeper than the cloner's budget.
	// Cyclic input always ends here unless cycle detection is enabled.
	ErrDepthExceeded = errors.New("depth exceeded")

	// ErrCycle indicates a composite that references itself, directly or indirectly.
	ErrCycle = errors.New("cyclic graph")

	// ErrUnsupported indicates a value the cloner cannot copy without losing
	// its type or sharing state with the source.
	ErrUnsupported = errors.New("unsupported value")

	// ErrNotWritable indicates an assignment to a read-only attribute.
	ErrNotWritable = errors.New("attribute not writable")

	// ErrNotConfigurable indicates a redefinition or deletion of a locked attribute.
	ErrNotConfigurable = errors.New("attribute not configurable")

	// ErrInvalidPattern indicates a pattern source or flag set that does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidInput indicates input data that cannot be decoded or has the wrong shape.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidLocation indicates a coordinate or location that fails validation.
	ErrInvalidLocation = errors.New("invalid location")
)

// Stable codes carried by CodedError values raised by the cloning core.
const (
	CodeDepthExceeded = "ERR::CLN::DEPTH"
	CodeCycle         = "ERR::CLN::CYCLE"
	CodeUnsupported   = "ERR::CLN::TYPE"
)

// CodedError is a domain failure with a stable, machine-readable code.
// Callers branch on Code; Err links the failure to one of the sentinels above.
type CodedError struct {
	Code    string // Stable code, e.g. "ERR::LOC::INV"
	Message string // Human-readable message
	Err     error  // Underlying sentinel error, may be nil
}

// NewCodedError creates a CodedError with no sentinel attached.
func NewCodedError(message, code string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

// newCodedError creates a CodedError linked to a sentinel.
func newCodedError(sentinel error, code, format string, args ...any) *CodedError {
	return &CodedError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     sentinel,
	}
}

// Coded creates a CodedError linked to a sentinel.
// It is the constructor other packages in this module raise domain failures with.
func Coded(sentinel error, code, format string, args ...any) *CodedError {
	return newCodedError(sentinel, code, format, args...)
}

func (e *CodedError) Error() string {
	return e.Message
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a CodedError with the same code.
func (e *CodedError) Is(target error) bool {
	var other *CodedError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// Name returns the classification tag that distinguishes coded failures
// from generic errors.
func (e *CodedError) Name() string {
	return "CodedError"
}

// CodeOf extracts the code of the first CodedError in err's chain.
func CodeOf(err error) (string, bool) {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code, true
	}
	return "", false
}

// AttributeError reports a rejected attribute operation.
type AttributeError struct {
	Err       error  // ErrNotWritable or ErrNotConfigurable
	Name      string // Attribute name
	Operation string // define, set, delete
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("%s attribute %q: %s", e.Operation, e.Name, e.Err.Error())
}

func (e *AttributeError) Unwrap() error {
	return e.Err
}

// newAttributeError creates an AttributeError for a rejected operation.
func newAttributeError(sentinel error, operation, name string) error {
	return &AttributeError{
		Err:       sentinel,
		Name:      name,
		Operation: operation,
	}
}

// RejectionError carries a non-error rejection reason out of Future.Await.
type RejectionError struct {
	Reason any
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("future rejected: %v", e.Reason)
}
