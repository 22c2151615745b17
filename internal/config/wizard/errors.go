package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errClusterNameRequired = errors.New("cluster name is required")
	errClusterNameTooLong  = errors.New("cluster name must be at most 50 characters")
	errLoginRequired       = errors.New("login user is required")
	errLoginTooLong        = errors.New("login user must be at most 50 characters")
	errNodeCountInvalid    = errors.New("node count must be a number between 1 and 10")
)
