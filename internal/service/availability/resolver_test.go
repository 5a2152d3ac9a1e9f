package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

func allHours() []domain.HourSlot {
	hours := make([]domain.HourSlot, domain.HoursPerDay)
	for i := range hours {
		hours[i] = domain.HourSlot(i)
	}
	return hours
}

func TestBookableHoursFor_NoRules(t *testing.T) {
	rs := domain.EmptyRuleSet()
	for _, d := range []domain.Date{
		domain.NewDate(2025, time.January, 1),
		domain.NewDate(2030, time.June, 15),
	} {
		assert.Equal(t, allHours(), BookableHoursFor(d, rs))
		assert.Empty(t, UnavailableHoursFor(d, rs))
	}
}

func TestBookableHoursFor_AllDaySunday(t *testing.T) {
	rs := domain.NewRuleSet([]domain.Rule{
		{Key: domain.WeekdayKey(time.Sunday), AllDay: true, UnavailableHours: []domain.HourSlot{3}},
	})
	sunday := domain.NewDate(2025, time.December, 21)

	assert.Empty(t, BookableHoursFor(sunday, rs))
	assert.Equal(t, allHours(), UnavailableHoursFor(sunday, rs))
	assert.True(t, IsDayBlocked(sunday, rs))
	assert.Len(t, BookableHoursFor(sunday.AddDays(1), rs), domain.HoursPerDay)
}

func TestUnavailableHoursFor_SpecificDateOverridesWeekday(t *testing.T) {
	christmasEve := domain.NewDate(2025, time.December, 24)
	rs := domain.NewRuleSet([]domain.Rule{
		{Key: domain.WeekdayKey(christmasEve.Weekday()), UnavailableHours: []domain.HourSlot{9}},
		{Key: domain.DateKey(christmasEve), UnavailableHours: []domain.HourSlot{11, 10}},
	})

	assert.Equal(t, []domain.HourSlot{10, 11}, UnavailableHoursFor(christmasEve, rs))
	// та же неделя, другая дата - действует правило дня недели
	assert.Equal(t, []domain.HourSlot{9}, UnavailableHoursFor(christmasEve.AddDays(7), rs))
}

func TestBookableHoursFor_Complement(t *testing.T) {
	d := domain.NewDate(2025, time.March, 3)
	rs := domain.NewRuleSet([]domain.Rule{
		{Key: domain.WeekdayKey(d.Weekday()), UnavailableHours: []domain.HourSlot{0, 1, 2, 3, 4, 5, 6, 7, 8, 18, 19, 20, 21, 22, 23}},
	})

	bookable := BookableHoursFor(d, rs)
	assert.Equal(t, []domain.HourSlot{9, 10, 11, 12, 13, 14, 15, 16, 17}, bookable)

	unavailable := UnavailableHoursFor(d, rs)
	assert.Len(t, unavailable, domain.HoursPerDay-len(bookable))
	for _, h := range bookable {
		assert.NotContains(t, unavailable, h)
	}
}
