package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRule_Normalized(t *testing.T) {
	r := Rule{Key: WeekdayKey(time.Monday), UnavailableHours: []HourSlot{14, 9, 14}}
	assert.Equal(t, []HourSlot{9, 14}, r.Normalized().UnavailableHours)

	allDay := Rule{Key: WeekdayKey(time.Monday), UnavailableHours: []HourSlot{9}, AllDay: true}
	assert.Empty(t, allDay.Normalized().UnavailableHours)
}

func TestRule_Validate(t *testing.T) {
	assert.NoError(t, Rule{Key: WeekdayKey(time.Saturday)}.Validate())
	assert.ErrorIs(t, Rule{Key: WeekdayKey(7)}.Validate(), ErrInvalidWeekday)
	assert.ErrorIs(t, Rule{Key: DateKey(Date{})}.Validate(), ErrInvalidDate)
	assert.ErrorIs(t,
		Rule{Key: WeekdayKey(time.Monday), UnavailableHours: []HourSlot{24}}.Validate(),
		ErrInvalidHour)
}

func TestRule_Blocked(t *testing.T) {
	allDay := Rule{AllDay: true}
	assert.Len(t, allDay.Blocked(), HoursPerDay)
	assert.True(t, allDay.Blocks(5))

	partial := Rule{UnavailableHours: []HourSlot{9, 10}}
	assert.Equal(t, []HourSlot{9, 10}, partial.Blocked())
	assert.True(t, partial.Blocks(9))
	assert.False(t, partial.Blocks(11))
}

func TestNewRuleSet_LastWriteWins(t *testing.T) {
	d := NewDate(2025, time.December, 24)
	rs := NewRuleSet([]Rule{
		{ID: 1, Key: WeekdayKey(time.Monday), UnavailableHours: []HourSlot{9}},
		{ID: 2, Key: DateKey(d), AllDay: true},
		{ID: 3, Key: WeekdayKey(time.Monday), UnavailableHours: []HourSlot{10}},
		{ID: 4, Key: WeekdayKey(9)},
	})

	monday, ok := rs.Weekday(time.Monday)
	require.True(t, ok)
	assert.Equal(t, int64(3), monday.ID)
	assert.Equal(t, []HourSlot{10}, monday.UnavailableHours)

	_, ok = rs.SpecificDate(d)
	assert.True(t, ok)
	assert.Equal(t, 2, rs.Len())
}

func TestRuleSet_ReturnsCopies(t *testing.T) {
	rs := NewRuleSet([]Rule{{Key: WeekdayKey(time.Tuesday), UnavailableHours: []HourSlot{9}}})

	r, _ := rs.Weekday(time.Tuesday)
	r.UnavailableHours[0] = 20

	again, _ := rs.Weekday(time.Tuesday)
	assert.Equal(t, []HourSlot{9}, again.UnavailableHours)
}

func TestRuleSet_Ordering(t *testing.T) {
	rs := NewRuleSet([]Rule{
		{Key: DateKey(NewDate(2025, time.March, 2))},
		{Key: WeekdayKey(time.Friday)},
		{Key: DateKey(NewDate(2025, time.January, 5))},
		{Key: WeekdayKey(time.Sunday)},
	})

	weekdays := rs.Weekdays()
	require.Len(t, weekdays, 2)
	assert.Equal(t, time.Sunday, weekdays[0].Key.Weekday)
	assert.Equal(t, time.Friday, weekdays[1].Key.Weekday)

	dates := rs.SpecificDates()
	require.Len(t, dates, 2)
	assert.Equal(t, "2025-01-05", dates[0].Key.Date.String())
	assert.Equal(t, "2025-03-02", dates[1].Key.Date.String())
}
