package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/upkeepd/upkeep/pkg/core"
	"github.com/upkeepd/upkeep/pkg/validate"
)

func TestValidateName_Valid(t *testing.T) {
	assert.NoError(t, validate.ValidateName("Boiler room AC unit #2"))
}

func TestValidateName_Empty(t *testing.T) {
	assert.ErrorIs(t, validate.ValidateName(""), core.ErrInvalidName)
	assert.ErrorIs(t, validate.ValidateName("   "), core.ErrInvalidName)
}

func TestValidateName_TooLong(t *testing.T) {
	name := strings.Repeat("x", validate.MaxNameLength+1)

	assert.ErrorIs(t, validate.ValidateName(name), core.ErrNameTooLong)
}

func TestValidateName_ControlCharacters(t *testing.T) {
	assert.ErrorIs(t, validate.ValidateName("pump\x00station"), core.ErrInvalidName)
}

func TestValidateFrequency(t *testing.T) {
	assert.NoError(t, validate.ValidateFrequency(core.FreqMonthly))
	assert.ErrorIs(t, validate.ValidateFrequency(core.Frequency("fortnightly")), core.ErrUnknownFrequency)
}

func TestSanitizeNotes_StripsControlCharacters(t *testing.T) {
	got := validate.SanitizeNotes("line one\nline\x00 two\ttabbed")

	assert.Equal(t, "line one\nline two\ttabbed", got)
}

func TestSanitizeNotes_Truncates(t *testing.T) {
	notes := strings.Repeat("a", validate.MaxNotesLength+100)

	got := validate.SanitizeNotes(notes)

	assert.Len(t, got, validate.MaxNotesLength)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestClampSoonWindow(t *testing.T) {
	assert.Equal(t, 0, validate.ClampSoonWindow(-1))
	assert.Equal(t, 7, validate.ClampSoonWindow(7))
	assert.Equal(t, validate.MaxSoonWindowDays, validate.ClampSoonWindow(10_000))
}

func TestClampPriority(t *testing.T) {
	assert.Equal(t, 0, validate.ClampPriority(-5))
	assert.Equal(t, 50, validate.ClampPriority(50))
	assert.Equal(t, validate.MaxPriority, validate.ClampPriority(999))
}
