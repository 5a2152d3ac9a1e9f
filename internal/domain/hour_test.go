package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHour12(t *testing.T) {
	tests := []struct {
		hour HourSlot
		want string
	}{
		{0, "12:00 AM"},
		{1, "1:00 AM"},
		{9, "9:00 AM"},
		{11, "11:00 AM"},
		{12, "12:00 PM"},
		{13, "1:00 PM"},
		{15, "3:00 PM"},
		{23, "11:00 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := FormatHour12(tt.hour)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatHour12_OutOfRange(t *testing.T) {
	for _, h := range []HourSlot{-1, 24, 100} {
		_, err := FormatHour12(h)
		assert.ErrorIs(t, err, ErrInvalidHour)
	}
}

func TestParseHour24_RoundTrip(t *testing.T) {
	for _, hl := range AllHours() {
		parsed, err := ParseHour24(hl.Label)
		require.NoError(t, err)
		assert.Equal(t, hl.Hour, parsed)

		again, err := FormatHour12(parsed)
		require.NoError(t, err)
		assert.Equal(t, hl.Label, again)
	}
}

func TestParseHour24_Malformed(t *testing.T) {
	for _, label := range []string{"", "9 AM", "13:00 PM", "0:00 AM", "9:30 AM", "9:00 am", "nine"} {
		_, err := ParseHour24(label)
		assert.ErrorIs(t, err, ErrInvalidHourLabel, label)
	}
}

func TestAllHours(t *testing.T) {
	hours := AllHours()
	require.Len(t, hours, HoursPerDay)
	for i, hl := range hours {
		assert.Equal(t, HourSlot(i), hl.Hour)
	}
	assert.Equal(t, "12:00 AM", hours[0].Label)
	assert.Equal(t, "12:00 PM", hours[12].Label)
}

func TestSortedHours(t *testing.T) {
	assert.Equal(t, []HourSlot{1, 9, 10}, SortedHours([]HourSlot{10, 9, 1, 9, 10}))
	assert.Equal(t, []HourSlot{}, SortedHours(nil))
}
