// Package dashboard produces the derived views over PM schedules: the
// priority-sorted overdue list, the upcoming list, summary counts, and the
// calendar month view. Classifications are recomputed on every call from the
// service's injected clock; nothing here is persisted.
package dashboard
