//go:build coverage

package ui

// Select is a stub for coverage builds; the real implementation lives in
// selector_nocov.go and drives a full-screen bubbletea program.
func Select[T any](opts SelectorOptions[T]) (T, error) {
	var zero T
	return zero, ErrNoSelection
}
