package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidArguments  = errors.New("invalid arguments")
	ErrEmptyDescription  = errors.New("description cannot be empty")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrStorageRead       = errors.New("read tasks")
	ErrStorageWrite      = errors.New("write tasks")
	ErrUnknownStore      = errors.New("unknown store backend")
	ErrUnknownFormat     = errors.New("unknown export format")
	ErrConfigFileInvalid = errors.New("invalid config file")
)
