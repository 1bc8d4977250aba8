package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotFound is returned when a lookup or conditional update matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrUnavailable wraps every other driver failure. Callers treat it as
	// terminal for the request; nothing in this package retries.
	ErrUnavailable = errors.New("backing store unavailable")
)

func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
