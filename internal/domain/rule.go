package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidWeekday возвращается, когда день недели вне диапазона [0, 6]
var ErrInvalidWeekday = errors.New("domain: weekday must be between 0 (Sunday) and 6 (Saturday)")

// RuleKind discriminates the two kinds of availability rules.
type RuleKind int

const (
	RuleKindWeekday RuleKind = iota + 1
	RuleKindSpecificDate
)

func (k RuleKind) String() string {
	switch k {
	case RuleKindWeekday:
		return "weekday"
	case RuleKindSpecificDate:
		return "specific_date"
	default:
		return "unknown"
	}
}

// RuleKey identifies what a rule applies to: either a recurring weekday or one calendar date.
// Only the field matching Kind is meaningful.
type RuleKey struct {
	Kind    RuleKind
	Weekday time.Weekday
	Date    Date
}

// WeekdayKey keys a recurring rule for every occurrence of d.
func WeekdayKey(d time.Weekday) RuleKey {
	return RuleKey{Kind: RuleKindWeekday, Weekday: d}
}

// DateKey keys a one-off override for a single date.
func DateKey(d Date) RuleKey {
	return RuleKey{Kind: RuleKindSpecificDate, Date: d}
}

// Validate checks that the key is well formed.
func (k RuleKey) Validate() error {
	switch k.Kind {
	case RuleKindWeekday:
		if k.Weekday < time.Sunday || k.Weekday > time.Saturday {
			return fmt.Errorf("%w: got %d", ErrInvalidWeekday, k.Weekday)
		}
		return nil
	case RuleKindSpecificDate:
		if k.Date.IsZero() {
			return ErrInvalidDate
		}
		return nil
	default:
		return fmt.Errorf("domain: unknown rule kind %d", k.Kind)
	}
}

func (k RuleKey) String() string {
	if k.Kind == RuleKindSpecificDate {
		return "date " + k.Date.String()
	}
	return "weekday " + k.Weekday.String()
}

// Rule blocks hours of either a weekday or a specific date.
// When AllDay is true the whole day is blocked and UnavailableHours is ignored.
type Rule struct {
	ID               int64
	Key              RuleKey
	UnavailableHours []HourSlot
	AllDay           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks the key and the hour range.
func (r Rule) Validate() error {
	if err := r.Key.Validate(); err != nil {
		return err
	}
	return ValidateHours(r.UnavailableHours)
}

// Normalized returns a copy with deduplicated ascending hours; all-day rules carry no hours.
func (r Rule) Normalized() Rule {
	out := r
	if r.AllDay {
		out.UnavailableHours = []HourSlot{}
		return out
	}
	out.UnavailableHours = SortedHours(r.UnavailableHours)
	return out
}

// IsEmpty reports whether the rule blocks nothing.
func (r Rule) IsEmpty() bool {
	return !r.AllDay && len(r.UnavailableHours) == 0
}

// Blocked returns the hours this rule makes unavailable, ascending.
func (r Rule) Blocked() []HourSlot {
	if r.AllDay {
		hours := make([]HourSlot, HoursPerDay)
		for i := range hours {
			hours[i] = HourSlot(i)
		}
		return hours
	}
	return SortedHours(r.UnavailableHours)
}

// Blocks reports whether h is unavailable under this rule.
func (r Rule) Blocks(h HourSlot) bool {
	if r.AllDay {
		return true
	}
	for _, u := range r.UnavailableHours {
		if u == h {
			return true
		}
	}
	return false
}

func (r Rule) clone() Rule {
	out := r
	out.UnavailableHours = append([]HourSlot(nil), r.UnavailableHours...)
	return out
}

// RuleSet is an immutable snapshot of all rules, split into the weekly schedule
// and the per-date overrides.
type RuleSet struct {
	weekdays map[time.Weekday]Rule
	dates    map[Date]Rule
}

// NewRuleSet partitions rules by kind. A later rule with the same key replaces an earlier one.
// Rules with invalid keys are skipped.
func NewRuleSet(rules []Rule) *RuleSet {
	rs := &RuleSet{
		weekdays: make(map[time.Weekday]Rule),
		dates:    make(map[Date]Rule),
	}
	for _, r := range rules {
		if r.Key.Validate() != nil {
			continue
		}
		r = r.Normalized()
		switch r.Key.Kind {
		case RuleKindWeekday:
			rs.weekdays[r.Key.Weekday] = r
		case RuleKindSpecificDate:
			rs.dates[r.Key.Date] = r
		}
	}
	return rs
}

// EmptyRuleSet returns a set without rules.
func EmptyRuleSet() *RuleSet {
	return NewRuleSet(nil)
}

// Weekday returns the recurring rule for d.
func (rs *RuleSet) Weekday(d time.Weekday) (Rule, bool) {
	r, ok := rs.weekdays[d]
	if !ok {
		return Rule{}, false
	}
	return r.clone(), true
}

// SpecificDate returns the override for d.
func (rs *RuleSet) SpecificDate(d Date) (Rule, bool) {
	r, ok := rs.dates[d]
	if !ok {
		return Rule{}, false
	}
	return r.clone(), true
}

// Lookup returns the rule stored under key.
func (rs *RuleSet) Lookup(key RuleKey) (Rule, bool) {
	if key.Kind == RuleKindSpecificDate {
		return rs.SpecificDate(key.Date)
	}
	return rs.Weekday(key.Weekday)
}

// Weekdays returns weekday rules ordered Sunday..Saturday.
func (rs *RuleSet) Weekdays() []Rule {
	rules := make([]Rule, 0, len(rs.weekdays))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if r, ok := rs.weekdays[d]; ok {
			rules = append(rules, r.clone())
		}
	}
	return rules
}

// SpecificDates returns date overrides in ascending date order.
func (rs *RuleSet) SpecificDates() []Rule {
	rules := make([]Rule, 0, len(rs.dates))
	for _, r := range rs.dates {
		rules = append(rules, r.clone())
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Key.Date.Before(rules[j].Key.Date)
	})
	return rules
}

// Len returns the total number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.weekdays) + len(rs.dates)
}
