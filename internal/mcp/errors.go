package mcp

import (
	"errors"

	"github.com/rpggio/mockdata/internal/client"
	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/rpggio/mockdata/internal/store"
)

// errorMessage turns an error into text for a tool result.
func errorMessage(err error) string {
	var rejected *mockdata.RejectedError
	switch {
	case errors.Is(err, store.ErrNoProject):
		return "no project selected, call select_project first"
	case errors.Is(err, client.ErrBadResponse):
		return "the backend returned an unexpected response"
	case errors.As(err, &rejected):
		if rejected.Message != "" {
			return rejected.Message
		}
		return "the backend rejected the request"
	default:
		return err.Error()
	}
}
