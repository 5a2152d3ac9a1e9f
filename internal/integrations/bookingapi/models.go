package bookingapi

import (
	"fmt"
	"time"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// Token токен администратора
type Token struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// rule модель правила доступности в API
type rule struct {
	ID               int64   `json:"id,omitempty"`
	DayOfWeek        *int    `json:"dayOfWeek,omitempty"`
	SpecificDate     *string `json:"specificDate,omitempty"`
	UnavailableHours []int   `json:"unavailableHours"`
	AllDay           bool    `json:"allDay"`
}

type availableHoursResponse struct {
	Date           string `json:"date"`
	AvailableHours []int  `json:"availableHours"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func fromDomainRule(r domain.Rule) rule {
	out := rule{
		UnavailableHours: make([]int, 0, len(r.UnavailableHours)),
		AllDay:           r.AllDay,
	}
	for _, h := range r.UnavailableHours {
		out.UnavailableHours = append(out.UnavailableHours, int(h))
	}

	switch r.Key.Kind {
	case domain.RuleKindWeekday:
		day := int(r.Key.Weekday)
		out.DayOfWeek = &day
	case domain.RuleKindSpecificDate:
		date := r.Key.Date.String()
		out.SpecificDate = &date
	}
	return out
}

// toDomain конвертирует правило из ответа; время в specificDate отбрасывается
func (r rule) toDomain() (domain.Rule, error) {
	out := domain.Rule{
		ID:               r.ID,
		UnavailableHours: make([]domain.HourSlot, 0, len(r.UnavailableHours)),
		AllDay:           r.AllDay,
	}
	for _, h := range r.UnavailableHours {
		out.UnavailableHours = append(out.UnavailableHours, domain.HourSlot(h))
	}

	switch {
	case r.SpecificDate != nil:
		date, err := domain.ParseDate(*r.SpecificDate)
		if err != nil {
			return domain.Rule{}, err
		}
		out.Key = domain.DateKey(date)
	case r.DayOfWeek != nil:
		out.Key = domain.WeekdayKey(time.Weekday(*r.DayOfWeek))
	default:
		return domain.Rule{}, fmt.Errorf("rule %d has neither dayOfWeek nor specificDate", r.ID)
	}

	if err := out.Validate(); err != nil {
		return domain.Rule{}, err
	}
	return out, nil
}
