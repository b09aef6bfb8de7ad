package domain

import "errors"

var (
	// ErrTokenNotFound is returned by token stores when no record matches
	// the token string. Callers must not distinguish expired from absent
	// at the store layer.
	ErrTokenNotFound = errors.New("access token not found")

	// ErrServiceNotFound is returned by service registries on lookup miss.
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceRegistered signals a URL conflict during registration
	// with overwrite disabled.
	ErrServiceRegistered = errors.New("service url already registered")

	// ErrServiceNameTaken signals a name conflict during registration
	// with overwrite disabled.
	ErrServiceNameTaken = errors.New("service name already registered")

	// ErrJobNotFound is returned by job stores on lookup miss.
	ErrJobNotFound = errors.New("job not found")

	// ErrJobRegistration covers both insert failures and a readback miss
	// right after a nominally successful insert.
	ErrJobRegistration = errors.New("job registration failed")

	// ErrJobUpdate covers both storage errors and "zero documents
	// modified"; the two cases are distinguished only by message.
	ErrJobUpdate = errors.New("job update failed")
)
