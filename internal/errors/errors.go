package errors

import (
	stderrors "errors"
	"fmt"
)

const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeConflict    = "CONFLICT"
	CodeDanglingRef = "DANGLING_REFERENCE"
	CodeDeadlock    = "DEADLOCK"
	CodeInternal    = "INTERNAL_ERROR"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if stderrors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// DanglingReferenceError reports an order line or header pointing at a
// product, customer or supplier row that does not exist.
type DanglingReferenceError struct {
	Entity string
	ID     uint
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s with id %d does not exist", e.Entity, e.ID)
}

func NewDanglingReferenceError(entity string, id uint) *DanglingReferenceError {
	return &DanglingReferenceError{Entity: entity, ID: id}
}

func IsDanglingReferenceError(err error) (*DanglingReferenceError, bool) {
	var de *DanglingReferenceError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

type DeadlockError struct {
	Message string
}

func (e *DeadlockError) Error() string {
	return e.Message
}

func NewDeadlockError(message string) *DeadlockError {
	return &DeadlockError{Message: message}
}

func IsDeadlockError(err error) (*DeadlockError, bool) {
	var de *DeadlockError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}

// Code classifies err into one of the Code* constants. Unknown errors are
// internal.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case isType[*ValidationError](err):
		return CodeValidation
	case isType[*NotFoundError](err):
		return CodeNotFound
	case isType[*ConflictError](err):
		return CodeConflict
	case isType[*DanglingReferenceError](err):
		return CodeDanglingRef
	case isType[*DeadlockError](err):
		return CodeDeadlock
	default:
		return CodeInternal
	}
}

func isType[T error](err error) bool {
	var target T
	return stderrors.As(err, &target)
}
