package exchange

import (
	"github.com/arthur-debert/hookhub/pkg/errors"
)

// Require looks up a capability a downstream component cannot initialize
// without
func Require(r Reader, owner, name string) (any, error) {
	v, ok := r.Lookup(owner, name)
	if !ok {
		return nil, errors.Newf(errors.ErrMissingCollaborator, "capability %s.%s was not published", owner, name).
			WithDetail("owner", owner).
			WithDetail("name", name)
	}
	return v, nil
}

// Get looks up a capability and asserts its type
func Get[T any](r Reader, owner, name string) (T, bool) {
	var zero T
	v, ok := r.Lookup(owner, name)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// RequireAs is Require with a type assertion. A value of the wrong type is
// treated as a missing collaborator.
func RequireAs[T any](r Reader, owner, name string) (T, error) {
	var zero T
	v, err := Require(r, owner, name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.Newf(errors.ErrMissingCollaborator, "capability %s.%s is %T, not %T", owner, name, v, zero).
			WithDetail("owner", owner).
			WithDetail("name", name)
	}
	return t, nil
}
