package controllers

import (
	"errors"
	"fmt"
)

var (
	ErrNoMessages         = errors.New("no messages provided")
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrChatNotFound       = errors.New("chat not found")
	ErrForbidden          = errors.New("chat belongs to another user")
	ErrTitleRequired      = errors.New("title is required")
)

// StorageError is a failed write that the request depended on.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
