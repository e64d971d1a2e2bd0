// Package validate provides input validation, sanitization, and limits for
// the upkeep package. Malformed inputs fail fast here, before reaching the
// pure recurrence and classification functions.
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/upkeepd/upkeep/pkg/core"
)

// Limits and configuration
const (
	// MaxNameLength is the maximum length for names and titles
	MaxNameLength = 255

	// MaxNotesLength is the maximum length for stored notes and descriptions
	MaxNotesLength = 4096

	// MaxSoonWindowDays is the hard limit for the due-soon look-ahead window
	MaxSoonWindowDays = 365

	// MaxPriority is the hard limit for work order priority
	MaxPriority = 100
)

// ValidateName validates a display name or title: non-empty printable text
// within the length limit.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return core.ErrInvalidName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return core.ErrNameTooLong
	}
	for _, r := range name {
		if r < 32 || r == 127 {
			return core.ErrInvalidName
		}
	}
	return nil
}

// ValidateFrequency validates a schedule cadence at the persistence boundary.
// Inside the recurrence engine unknown frequencies are a normal non-error
// result; here, when creating a schedule, they are rejected outright.
func ValidateFrequency(f core.Frequency) error {
	if !f.Valid() {
		return core.ErrUnknownFrequency
	}
	return nil
}

// SanitizeNotes strips control characters (except line breaks and tabs) and
// truncates notes for storage.
func SanitizeNotes(notes string) string {
	if notes == "" {
		return ""
	}

	var sanitized strings.Builder
	sanitized.Grow(len(notes))

	for _, r := range notes {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			sanitized.WriteRune(r)
		}
	}

	result := sanitized.String()

	if utf8.RuneCountInString(result) > MaxNotesLength {
		runes := []rune(result)
		result = string(runes[:MaxNotesLength-3]) + "..."
	}

	return result
}

// ClampSoonWindow ensures the due-soon window is within limits.
func ClampSoonWindow(days int) int {
	if days < 0 {
		return 0
	}
	if days > MaxSoonWindowDays {
		return MaxSoonWindowDays
	}
	return days
}

// ClampPriority ensures a work order priority is within limits.
func ClampPriority(p int) int {
	if p < 0 {
		return 0
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}
