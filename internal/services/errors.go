package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// NotFoundError covers both a missing row and a row owned by someone else, so
// callers cannot distinguish "does not exist" from "not yours".
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConflictError rejects an operation the current state does not allow, such
// as unlocking an already unlocked achievement or deleting the last space.
type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string {
	return e.Reason
}

// AuthError reasons, one per way a credential can fail verification.
const (
	AuthReasonMissingToken = "missing or invalid token"
	AuthReasonMissingKeyID = "token missing kid in header"
	AuthReasonKeyNotFound  = "unable to find matching key"
	AuthReasonInvalidToken = "token validation failed"
)

type AuthError struct {
	Reason string
	Err    error
}

func (e AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e AuthError) Unwrap() error {
	return e.Err
}

// notFoundOr translates a missing row into the owner-conflated NotFoundError
// and passes every other failure through untouched.
func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundError{Resource: resource}
	}
	return err
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var c ConflictError
	return errors.As(err, &c)
}

func IsAuthError(err error) bool {
	var a AuthError
	return errors.As(err, &a)
}
