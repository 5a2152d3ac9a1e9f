package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// HoursPerDay number of bookable hour slots in a calendar day
const HoursPerDay = 24

var (
	// ErrInvalidHour возвращается, когда час вне диапазона [0, 23]
	ErrInvalidHour = errors.New("domain: hour must be between 0 and 23")

	// ErrInvalidHourLabel возвращается, когда строка не соответствует формату "H:00 AM|PM"
	ErrInvalidHourLabel = errors.New("domain: invalid hour label")
)

var hourLabelPattern = regexp.MustCompile(`^(\d{1,2}):00 (AM|PM)$`)

// HourSlot is a one-hour appointment slot identified by its starting hour on the 24-hour clock.
type HourSlot int

// HourLabel pairs a slot with its 12-hour clock display label.
type HourLabel struct {
	Hour  HourSlot
	Label string
}

// Valid reports whether the slot lies in [0, 23].
func (h HourSlot) Valid() bool {
	return h >= 0 && h < HoursPerDay
}

// String returns the 12-hour label, or the raw number for out-of-range values.
func (h HourSlot) String() string {
	label, err := FormatHour12(h)
	if err != nil {
		return strconv.Itoa(int(h))
	}
	return label
}

// FormatHour12 renders an hour as "12:00 AM", "9:00 AM", "12:00 PM", "3:00 PM".
// Hours outside [0, 23] are rejected with ErrInvalidHour.
func FormatHour12(h HourSlot) (string, error) {
	if !h.Valid() {
		return "", fmt.Errorf("%w: got %d", ErrInvalidHour, h)
	}

	switch {
	case h == 0:
		return "12:00 AM", nil
	case h == 12:
		return "12:00 PM", nil
	case h < 12:
		return fmt.Sprintf("%d:00 AM", h), nil
	default:
		return fmt.Sprintf("%d:00 PM", h-12), nil
	}
}

// ParseHour24 is the inverse of FormatHour12.
func ParseHour24(label string) (HourSlot, error) {
	m := hourLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHourLabel, label)
	}

	h, err := strconv.Atoi(m[1])
	if err != nil || h < 1 || h > 12 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHourLabel, label)
	}

	// 12 AM -> 0, 12 PM -> 12
	if h == 12 {
		h = 0
	}
	if m[2] == "PM" {
		h += 12
	}

	return HourSlot(h), nil
}

// AllHours returns the full 24-entry grid in ascending order.
func AllHours() []HourLabel {
	hours := make([]HourLabel, 0, HoursPerDay)
	for h := HourSlot(0); h < HoursPerDay; h++ {
		label, _ := FormatHour12(h)
		hours = append(hours, HourLabel{Hour: h, Label: label})
	}
	return hours
}

// SortedHours returns a deduplicated ascending copy of hours.
func SortedHours(hours []HourSlot) []HourSlot {
	var seen [HoursPerDay]bool
	for _, h := range hours {
		if h.Valid() {
			seen[h] = true
		}
	}

	result := make([]HourSlot, 0, len(hours))
	for h := HourSlot(0); h < HoursPerDay; h++ {
		if seen[h] {
			result = append(result, h)
		}
	}
	return result
}

// ValidateHours returns ErrInvalidHour for the first out-of-range hour.
func ValidateHours(hours []HourSlot) error {
	for _, h := range hours {
		if !h.Valid() {
			return fmt.Errorf("%w: got %d", ErrInvalidHour, h)
		}
	}
	return nil
}
