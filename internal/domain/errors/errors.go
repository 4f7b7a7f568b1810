package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrAlreadyExists          = errors.New("already exists")
	ErrNotFound               = errors.New("not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrForbidden              = errors.New("forbidden")
	ErrGeolocationUnavailable = errors.New("geolocation unavailable")
	ErrSubmissionInProgress   = errors.New("submission already in progress")
	ErrStoreCorrupted         = errors.New("local store corrupted, reset required")
	ErrNothingToExport        = errors.New("nothing to export")
	ErrPeriodRequired         = errors.New("report period not selected")
)

// ValidationError lists required fields missing from an input.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	fields := append([]string(nil), e.Fields...)
	sort.Strings(fields)
	return "missing required fields: " + strings.Join(fields, ", ")
}

// Has reports whether field is among the missing ones.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// StorageError wraps a failed backend call.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Storage wraps err as a StorageError for op. A nil err stays nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
