package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrequency_KnownValues(t *testing.T) {
	for _, want := range []Frequency{
		FreqDaily, FreqWeekly, FreqMonthly, FreqQuarterly, FreqYearly,
	} {
		got, ok := ParseFrequency(string(want))
		require.True(t, ok, "parse %q", want)
		assert.Equal(t, want, got)
	}
}

func TestParseFrequency_Unknown(t *testing.T) {
	for _, s := range []string{"", "hourly", "bi-weekly", "MONTHLY "} {
		_, ok := ParseFrequency(s)
		assert.False(t, ok, "parse %q should fail", s)
	}
}

func TestFrequency_Valid(t *testing.T) {
	assert.True(t, FreqQuarterly.Valid())
	assert.False(t, Frequency("fortnightly").Valid())
}
