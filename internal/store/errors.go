package store

import "errors"

// ErrNoProject is returned when an operation needs a selected project.
var ErrNoProject = errors.New("no project selected")
