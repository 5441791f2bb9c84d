package sources

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEntry marks a failure scoped to a single entry. The adapter logs it
	// and drops the entry; the batch continues.
	ErrEntry = errors.New("entry failure")
	// ErrStructure marks a parse violation that signals the source's page
	// layout has changed in a way the adapter cannot safely interpret.
	// Guessing would corrupt the feed, so the run aborts.
	ErrStructure = errors.New("source structure violation")
)

// Entry tags an entry-scoped failure with source and operation context.
func Entry(source, operation string, err error) error {
	return wrap(ErrEntry, source, operation, "", err)
}

// Structural tags a fatal layout violation with source and operation context.
func Structural(source, operation, message string, err error) error {
	return wrap(ErrStructure, source, operation, message, err)
}

func wrap(marker error, source, operation, message string, err error) error {
	detail := buildDetail(source, operation, message)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(source, operation, message string) string {
	parts := make([]string, 0, 3)
	if source = strings.TrimSpace(source); source != "" {
		parts = append(parts, source)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "scan failure"
	}
	return strings.Join(parts, ": ")
}
