package availability_rules

import (
	"errors"
	"time"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

var errBothToggles = errors.New("exactly one of hour or allDay must be set")

// RuleResponse правило доступности; заполнено ровно одно из dayOfWeek и specificDate
type RuleResponse struct {
	ID               int64   `json:"id"`
	DayOfWeek        *int    `json:"dayOfWeek,omitempty"`
	SpecificDate     *string `json:"specificDate,omitempty"`
	UnavailableHours []int   `json:"unavailableHours"`
	AllDay           bool    `json:"allDay"`
}

// UpsertWeekdayRequest правило на день недели
type UpsertWeekdayRequest struct {
	DayOfWeek        *int  `json:"dayOfWeek"`
	UnavailableHours []int `json:"unavailableHours"`
	AllDay           bool  `json:"allDay"`
}

// UpsertSpecificDateRequest правило на конкретную дату
type UpsertSpecificDateRequest struct {
	SpecificDate     string `json:"specificDate"`
	UnavailableHours []int  `json:"unavailableHours"`
	AllDay           bool   `json:"allDay"`
}

// ToggleRequest переключение одного часа или флага "весь день"
type ToggleRequest struct {
	Hour   *int `json:"hour"`
	AllDay bool `json:"allDay"`
}

// Validate проверяет, что задано ровно одно действие
func (r *ToggleRequest) Validate() error {
	if (r.Hour == nil) == !r.AllDay {
		return errBothToggles
	}
	return nil
}

// ToDomainRule конвертирует запрос в правило на день недели
func (r *UpsertWeekdayRequest) ToDomainRule() (domain.Rule, error) {
	if r.DayOfWeek == nil {
		return domain.Rule{}, domain.ErrInvalidWeekday
	}
	key := domain.WeekdayKey(time.Weekday(*r.DayOfWeek))
	if err := key.Validate(); err != nil {
		return domain.Rule{}, err
	}
	return domain.Rule{Key: key, UnavailableHours: toHourSlots(r.UnavailableHours), AllDay: r.AllDay}, nil
}

// ToDomainRule конвертирует запрос в правило на дату
func (r *UpsertSpecificDateRequest) ToDomainRule() (domain.Rule, error) {
	date, err := domain.ParseDate(r.SpecificDate)
	if err != nil {
		return domain.Rule{}, err
	}
	return domain.Rule{Key: domain.DateKey(date), UnavailableHours: toHourSlots(r.UnavailableHours), AllDay: r.AllDay}, nil
}

// FromDomainRule конвертирует правило в HTTP response
func FromDomainRule(rule *domain.Rule) *RuleResponse {
	resp := &RuleResponse{
		ID:               rule.ID,
		UnavailableHours: make([]int, 0, len(rule.UnavailableHours)),
		AllDay:           rule.AllDay,
	}
	for _, h := range domain.SortedHours(rule.UnavailableHours) {
		resp.UnavailableHours = append(resp.UnavailableHours, int(h))
	}

	switch rule.Key.Kind {
	case domain.RuleKindWeekday:
		day := int(rule.Key.Weekday)
		resp.DayOfWeek = &day
	case domain.RuleKindSpecificDate:
		date := rule.Key.Date.String()
		resp.SpecificDate = &date
	}
	return resp
}

// FromDomainRules конвертирует список правил
func FromDomainRules(rules []domain.Rule) []*RuleResponse {
	result := make([]*RuleResponse, 0, len(rules))
	for i := range rules {
		result = append(result, FromDomainRule(&rules[i]))
	}
	return result
}

func toHourSlots(hours []int) []domain.HourSlot {
	result := make([]domain.HourSlot, 0, len(hours))
	for _, h := range hours {
		result = append(result, domain.HourSlot(h))
	}
	return result
}
