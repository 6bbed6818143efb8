// Package errors provides the error taxonomy used across the warning
// lifecycle, plus panic recovery and error-rate monitoring for the bot.
//
// Every failure a workflow can surface is classified as one of the types
// below. Workflows catch these at their boundary and convert them to a
// user-visible message; none of them should ever crash the process.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ValidationError reports malformed or oversize input. It is shown to
// the invoking actor only and the workflow does not advance.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// NewValidation creates a ValidationError for a field
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ReferenceError reports a referenced entity (template, user) that does
// not exist in the store.
type ReferenceError struct {
	Entity string
	ID     string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NewReference creates a ReferenceError for an entity id
func NewReference(entity, id string) error {
	return &ReferenceError{Entity: entity, ID: id}
}

// StorageError reports a persistence failure. Workflows terminate
// without retry when they see one.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorage wraps a driver error as a StorageError
func NewStorage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// DeliveryError reports a failed best-effort direct notification. It is
// logged only and never surfaces as a failure of the overall issuance.
type DeliveryError struct {
	TargetID string
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("could not deliver notice to %s: %v", e.TargetID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// NewDelivery wraps a send failure as a DeliveryError
func NewDelivery(targetID string, err error) error {
	return &DeliveryError{TargetID: targetID, Err: err}
}

// PermissionError reports an actor other than the authorized one trying
// to drive a workflow step. The actor gets a private notice; the
// authorized workflow is unaffected.
type PermissionError struct {
	ActorID string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("actor %s is not allowed to drive this interaction", e.ActorID)
}

// NewPermission creates a PermissionError for an actor
func NewPermission(actorID string) error {
	return &PermissionError{ActorID: actorID}
}

// TimeoutError reports that no response arrived within the bounded wait
// of a workflow step.
type TimeoutError struct {
	Step string
	Wait time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no response within %s at step %s", e.Wait, e.Step)
}

// NewTimeout creates a TimeoutError for a workflow step
func NewTimeout(step string, wait time.Duration) error {
	return &TimeoutError{Step: step, Wait: wait}
}

// Classification helpers

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return stderrors.As(err, &target)
}

// IsReference reports whether err is a ReferenceError
func IsReference(err error) bool {
	var target *ReferenceError
	return stderrors.As(err, &target)
}

// IsStorage reports whether err is a StorageError
func IsStorage(err error) bool {
	var target *StorageError
	return stderrors.As(err, &target)
}

// IsDelivery reports whether err is a DeliveryError
func IsDelivery(err error) bool {
	var target *DeliveryError
	return stderrors.As(err, &target)
}

// IsPermission reports whether err is a PermissionError
func IsPermission(err error) bool {
	var target *PermissionError
	return stderrors.As(err, &target)
}

// IsTimeout reports whether err is a TimeoutError
func IsTimeout(err error) bool {
	var target *TimeoutError
	return stderrors.As(err, &target)
}
