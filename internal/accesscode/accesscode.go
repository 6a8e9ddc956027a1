// Package accesscode validates wholesaler access codes against the signed
// registry files wholesalers distribute to their retailers. A code is
// accepted when it appears in enough registry files.
package accesscode

import (
	"context"
)

// Validator defines the interface for wholesaler access-code validation.
type Validator interface {
	// Validate checks if an access code is valid. A valid code must:
	// - Be between 6 and 16 characters in length
	// - Appear in at least MinMatchCount registry files
	Validate(ctx context.Context, code string) error

	// Close releases resources held by the validator.
	Close() error
}

// CodeSet represents a set of access codes for fast lookup.
type CodeSet interface {
	// Contains checks if an access code exists in the set.
	Contains(code string) bool

	// Size returns the number of codes in the set.
	Size() int
}

// Loader defines the interface for loading registry files.
type Loader interface {
	// Load reads a gzipped registry file and returns a CodeSet.
	Load(ctx context.Context, filePath string) (CodeSet, error)
}
