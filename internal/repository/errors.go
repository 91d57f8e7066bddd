package repository

import "errors"

var (
	ErrNotFound              = errors.New("record not found")
	ErrDuplicateRegistration = errors.New("registration number already in use")
	ErrDuplicateEmail        = errors.New("email already in use")
	ErrSubmissionActive      = errors.New("a final submission is already in progress for this leader")
)
