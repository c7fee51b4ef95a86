package common

import (
	"fmt"
	"strings"
)

// RangeError rejects an argument before any computation is done.
type RangeError struct {
	Field  string
	Value  any
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid %s=%v: %s", e.Field, e.Value, e.Reason)
}

func NewRangeError(field string, value any, reason string) error {
	return &RangeError{Field: field, Value: value, Reason: reason}
}

// DataShapeError is returned when feature columns are missing or misnamed.
type DataShapeError struct {
	Missing []string
	// Got is the row width when positional rows have the wrong width, -1 otherwise.
	Got  int
	Want int
}

func (e *DataShapeError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing feature columns: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("feature row has %d values, want %d", e.Got, e.Want)
}

// ArtifactError covers a classifier artifact that cannot be read or decoded.
type ArtifactError struct {
	Path string
	Err  error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("classifier artifact %q: %v", e.Path, e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// StoreError wraps a persistence failure with the store operation name.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
