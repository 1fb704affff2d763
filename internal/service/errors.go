package service

import "errors"

var (
	ErrValidation         = errors.New("missing or invalid fields")
	ErrUserAlreadyExists  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPersistence        = errors.New("storage failure")
	ErrInvalidMeetingID   = errors.New("invalid meeting ID format")
	ErrImageNotFound      = errors.New("image not found")
)
