package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrInvalidTransition  = errors.New("illegal status transition")
	ErrSubmissionClosed   = errors.New("final submission is no longer in progress")
	ErrInvalidDataURL     = errors.New("unreadable data url")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
