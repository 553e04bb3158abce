package postgres

import (
	"fmt"

	"github.com/aarondl/strmangle"
	"github.com/google/uuid"
)

// IsUUID validates that the given string is a valid UUID.
func IsUUID(u string) error {
	if u == "" {
		return fmt.Errorf("%w: UUID cannot be empty", ErrInvalidUUID)
	}

	if _, err := uuid.Parse(u); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUUID, err)
	}

	return nil
}

// NewUUID generates a new UUID string.
func NewUUID() string {
	return uuid.New().String()
}

// ValidateUUIDs validates a slice of UUID strings.
func ValidateUUIDs(ids []string) error {
	for i, id := range ids {
		if err := IsUUID(id); err != nil {
			return fmt.Errorf("invalid UUID at index %d: %w", i, err)
		}
	}
	return nil
}

// Placeholders renders a comma-separated list of Postgres placeholders
// ($start, $start+1, ...) for count values.
func Placeholders(count, start int) string {
	return strmangle.Placeholders(true, count, start, 1)
}

// InArgs converts string values to the []any form ExecContext expects.
func InArgs(vals []string) []any {
	args := make([]any, len(vals))
	for i, v := range vals {
		args[i] = v
	}
	return args
}
