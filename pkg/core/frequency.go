package core

// Frequency is the cadence at which a maintenance task repeats.
type Frequency string

const (
	FreqDaily     Frequency = "daily"
	FreqWeekly    Frequency = "weekly"
	FreqMonthly   Frequency = "monthly"
	FreqQuarterly Frequency = "quarterly"
	FreqYearly    Frequency = "yearly"
)

// ParseFrequency parses a stored frequency value. The second return is false
// for unrecognized values; callers must treat those as "no next occurrence"
// rather than an error.
func ParseFrequency(s string) (Frequency, bool) {
	f := Frequency(s)
	return f, f.Valid()
}

// Valid reports whether f is one of the recognized cadences.
func (f Frequency) Valid() bool {
	switch f {
	case FreqDaily, FreqWeekly, FreqMonthly, FreqQuarterly, FreqYearly:
		return true
	}
	return false
}
