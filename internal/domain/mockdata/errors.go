package mockdata

import "errors"

var (
	// ErrRecordNotFound indicates the record doesn't exist.
	ErrRecordNotFound = errors.New("mock data not found")
	// ErrProjectNotFound indicates the owning project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid mock data input.
	ErrInvalidInput = errors.New("invalid mock data input")
	// ErrNoMatch indicates no enabled record serves the requested route.
	ErrNoMatch = errors.New("no mock data matches the request")
)
