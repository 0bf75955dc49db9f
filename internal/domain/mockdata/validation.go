package mockdata

import (
	"fmt"
	"strings"
)

// MaxDelay caps simulated latency, in milliseconds.
const MaxDelay int64 = 60_000

var validTypes = map[string]bool{
	"all":     true,
	"get":     true,
	"post":    true,
	"put":     true,
	"patch":   true,
	"delete":  true,
	"head":    true,
	"options": true,
}

// NormalizeType lowercases t and maps the empty string to DefaultType.
func NormalizeType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if t == "" {
		return DefaultType
	}
	return t
}

// ValidatePayload validates fields required to store a record.
func ValidatePayload(p Payload) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !strings.HasPrefix(p.Path, "/") {
		return fmt.Errorf("%w: path must start with /", ErrInvalidInput)
	}
	if strings.ContainsAny(p.Path, "?# ") {
		return fmt.Errorf("%w: path must not contain query, fragment or spaces", ErrInvalidInput)
	}
	if !validTypes[NormalizeType(p.Type)] {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidInput, p.Type)
	}
	if p.Delay < 0 || p.Delay > MaxDelay {
		return fmt.Errorf("%w: delay must be between 0 and %d", ErrInvalidInput, MaxDelay)
	}
	return nil
}

// MatchesMethod reports whether a record of type t serves method.
func MatchesMethod(t, method string) bool {
	t = NormalizeType(t)
	return t == DefaultType || strings.EqualFold(t, method)
}
