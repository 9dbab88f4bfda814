package render

import "fmt"

// ErrorKind classifies request failures so handlers can map them uniformly.
type ErrorKind int

const (
	// KindMissingInput signals an absent or empty text parameter.
	KindMissingInput ErrorKind = iota
	// KindUnsupportedSymbology signals an unknown barcode type token.
	KindUnsupportedSymbology
	// KindUnsupportedFormat signals an output format or image mode outside
	// the supported set for the requested symbol kind.
	KindUnsupportedFormat
	// KindValidation signals a parameter that failed coercion or range checks.
	KindValidation
	// KindRenderFailure signals that the encoder rejected the payload or
	// failed during serialization.
	KindRenderFailure
)

// Error is the typed failure value every component of the pipeline returns.
// All kinds map to HTTP 400 at the handler boundary.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// ErrMissingInput reports an absent or empty text parameter.
func ErrMissingInput() *Error {
	return &Error{Kind: KindMissingInput, Message: "No text and type are provided"}
}

// ErrUnsupportedSymbology reports an unknown barcode type token.
func ErrUnsupportedSymbology(token string) *Error {
	return &Error{Kind: KindUnsupportedSymbology, Message: fmt.Sprintf("Barcode type %s is not supported", token)}
}

// ErrUnsupportedFormat reports an output format outside the supported set.
func ErrUnsupportedFormat(token string) *Error {
	return &Error{Kind: KindUnsupportedFormat, Message: fmt.Sprintf("Output format %s is not supported", token)}
}

// ErrUnsupportedMode reports an explicitly requested image mode the format
// table does not know.
func ErrUnsupportedMode(mode string) *Error {
	return &Error{Kind: KindUnsupportedFormat, Message: fmt.Sprintf("Image mode %s is not supported", mode)}
}

// ErrValidation reports a parameter coercion or range failure.
func ErrValidation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// wrapEncoder converts an encoder fault into a render failure, passing the
// encoder's own diagnostic through when it has one.
func wrapEncoder(err error, fallback string) *Error {
	msg := fallback
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Error{Kind: KindRenderFailure, Message: msg}
}
