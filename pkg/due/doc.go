// Package due classifies maintenance items as overdue, due soon, or on
// schedule relative to an injected reference time, and orders them for
// priority-sorted lists. Classifications are derived values: they are
// recomputed on every listing and never persisted.
package due
