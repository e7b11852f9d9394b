// Package apperrors defines the error type used across the catalog. It keeps
// the standard error interface and adds derivation and wrapping: package-level
// sentinel errors act as templates, and call sites derive per-occurrence
// errors from them while staying matchable with errors.Is.
package apperrors

// Error is the application error interface. Deriving methods never mutate the
// receiver; each returns a new Error that unwraps to the one it was derived
// from.
type Error interface {
	error
	Unwrap() error // supports errors.Is / errors.As

	New(msg string) Error                  // derives a fresh error using the receiver as template
	Msg(msg string) Error                  // derives an error with a new message, wrapping the receiver
	MsgErr(msg string, err ...error) Error // like Msg, additionally wrapping the given errors
	Err(err ...error) Error                // keeps the message, attaches the given errors
	SetExpandError(bool) Error             // controls whether ErrorAll includes wrapped errors
	SetStatusCode(int) Error               // sets the HTTP status code reported for the error
	StatusCode() int                       // returns the HTTP status code
	ErrorAll() string                      // full message, including wrapped errors when expansion is on
	UnwrapAll() []error                    // every wrapped error, in attachment order
}
