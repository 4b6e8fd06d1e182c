package kv

import "context"

// Keys used by the application.
const (
	KeyExpenses = "expenses"
	KeyDarkMode = "darkMode"
)

// Ports for durable key-value media.
type (
	Reader interface {
		// Get returns the stored text and whether the key exists.
		Get(ctx context.Context, key string) (value string, ok bool, err error)
	}

	Writer interface {
		// Set replaces the value stored under key.
		Set(ctx context.Context, key, value string) error
	}

	Store interface {
		Reader
		Writer
	}
)
