// Package types provides nullable value types for fields where absence is
// meaningful and distinct from the zero value.
package types

// Nullable is implemented by types that can represent an absent value.
type Nullable interface {
	// IsNil reports whether the value is absent.
	IsNil() bool
}
