package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_StripsTimeSuffix(t *testing.T) {
	want := NewDate(2025, time.December, 24)

	for _, s := range []string{
		"2025-12-24",
		"2025-12-24T00:00:00Z",
		"2025-12-24T00:00:00.000Z",
		"2025-12-24 00:00:00+00",
	} {
		got, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "24-12-2025", "2025-13-01", "2025-02-30"} {
		_, err := ParseDate(s)
		assert.ErrorIs(t, err, ErrInvalidDate, s)
	}
}

func TestDateOf_UsesOwnLocation(t *testing.T) {
	loc := time.FixedZone("UTC-4", -4*60*60)
	// 2025-12-25 02:00 UTC = 2025-12-24 22:00 в UTC-4
	ts := time.Date(2025, time.December, 25, 2, 0, 0, 0, time.UTC).In(loc)

	assert.Equal(t, NewDate(2025, time.December, 24), DateOf(ts))
}

func TestDate_Ordering(t *testing.T) {
	a := NewDate(2025, time.January, 31)
	b := a.AddDays(1)

	assert.Equal(t, NewDate(2025, time.February, 1), b)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.Equal(t, time.Friday, a.Weekday())
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2025, time.March, 7)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-07"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-07T00:00:00Z"`), &back))
	assert.Equal(t, d, back)
}

func TestMonth_Bounds(t *testing.T) {
	m, err := ParseMonth("2024-02")
	require.NoError(t, err)

	assert.Equal(t, NewDate(2024, time.February, 1), m.FirstDay())
	assert.Equal(t, NewDate(2024, time.February, 29), m.LastDay())
	assert.Equal(t, "2024-02", m.String())

	_, err = ParseMonth("2024/02")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}
