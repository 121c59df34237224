package helper

import "fmt"

// NewError wraps err with the operation that failed.
// The cause stays reachable via errors.Is/errors.As.
func NewError(operation string, err error) error {
	return fmt.Errorf("error on %v: %w", operation, err)
}
