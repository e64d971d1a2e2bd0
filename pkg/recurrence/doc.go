// Package recurrence computes occurrence dates for recurring maintenance.
//
// Advance is the single step: given the last completed or scheduled date and
// a frequency, it returns the next occurrence. Occurrences materializes a
// bounded sequence of steps. Both are pure functions of their inputs; no
// ambient clock is read anywhere in this package.
package recurrence
