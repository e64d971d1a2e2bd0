// Package dispatcher turns due PM schedules into work orders.
//
// A Dispatcher polls storage for schedules whose due date has arrived, claims
// them so concurrent dispatchers never double-dispatch, generates a work
// order for each, and advances the schedule to its next occurrence. A
// schedule with no next occurrence is deactivated instead of rescheduled.
package dispatcher
