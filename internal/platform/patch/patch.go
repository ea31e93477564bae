// Package patch implements sparse partial updates. Every patchable field of a
// partial object is an optional pointer, so "unset" (nil) is distinct from a
// legitimate zero value such as age 0.
package patch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrPatchFailure indicates a partial object could not be applied, either
// because its shape does not match the target or the target is missing.
var ErrPatchFailure = errors.New("patch failure")

// Patch is a partial object for T. ApplyTo returns cur with every set field
// of the patch copied over it.
type Patch[T any] interface {
	ApplyTo(cur T) T
}

// Merge applies p onto *dst in place. A nil patch leaves *dst unchanged.
func Merge[T any](dst *T, p Patch[T]) error {
	if dst == nil {
		return fmt.Errorf("%w: nil destination", ErrPatchFailure)
	}
	if p == nil {
		return nil
	}
	*dst = p.ApplyTo(*dst)
	return nil
}

// Set copies *src onto *dst when src is non-nil.
func Set[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}

// SetSlice replaces *dst with a copy of src when src is non-nil. An empty,
// non-nil slice clears the destination.
func SetSlice[V any](dst *[]V, src []V) {
	if src != nil {
		*dst = append(make([]V, 0, len(src)), src...)
	}
}

// Decode reads a JSON partial object. Unknown fields and type mismatches are
// reported as ErrPatchFailure.
func Decode[P any](r io.Reader) (P, error) {
	var p P
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("%w: %w", ErrPatchFailure, err)
	}
	return p, nil
}
