package record

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/hookhub/pkg/errors"
)

// LabelKey is the reserved key holding the record's label
const LabelKey = "name"

// Record is a closed key/value table
type Record struct {
	label  string
	values map[string]any
}

// New builds a Record from props, storing label under LabelKey.
// props must not contain LabelKey.
func New(props map[string]any, label string) (*Record, error) {
	if _, exists := props[LabelKey]; exists {
		return nil, errors.Newf(errors.ErrReservedField, "property %q is reserved for the record label", LabelKey).
			WithDetail("label", label)
	}

	values := make(map[string]any, len(props)+1)
	for k, v := range props {
		values[k] = v
	}
	values[LabelKey] = label

	return &Record{label: label, values: values}, nil
}

// MustNew is New for package-level tables where a failure is a programming error
func MustNew(props map[string]any, label string) *Record {
	r, err := New(props, label)
	if err != nil {
		panic(fmt.Sprintf("failed to build record %s: %v", label, err))
	}
	return r
}

// Label returns the label given at construction
func (r *Record) Label() string {
	return r.label
}

// Get returns the value stored under key
func (r *Record) Get(key string) (any, error) {
	v, ok := r.values[key]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "member %q not found on record %s", key, r.label).
			WithDetail("key", key)
	}
	return v, nil
}

// MustGet returns the value stored under key and panics if it is absent
func (r *Record) MustGet(key string) any {
	v, err := r.Get(key)
	if err != nil {
		panic(err.Error())
	}
	return v
}

// String returns the value under key as a string
func (r *Record) String(key string) (string, error) {
	v, err := r.Get(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Newf(errors.ErrInvalidInput, "member %q on record %s is %T, not string", key, r.label, v)
	}
	return s, nil
}

// Set always fails; records are closed after construction
func (r *Record) Set(key string, value any) error {
	return errors.Newf(errors.ErrImmutable, "cannot set %q: record %s is immutable", key, r.label).
		WithDetail("key", key)
}

// Has reports whether key is part of the record
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns every key, including LabelKey, in sorted order
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys, including LabelKey
func (r *Record) Len() int {
	return len(r.values)
}
