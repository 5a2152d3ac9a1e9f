package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// Slots считает часы, на которые действительно можно записаться:
// правила доступности, минус занятые записями часы, минус прошедшие часы сегодня.
// Одна и та же реализация обслуживает публичную форму записи и перенос записи администратором
type Slots struct {
	store    *Store
	bookings BookedHoursRepository
	clock    Clock
	location *time.Location
}

// NewSlots создает калькулятор слотов; loc - часовой пояс офиса
func NewSlots(store *Store, bookings BookedHoursRepository, loc *time.Location) *Slots {
	return &Slots{
		store:    store,
		bookings: bookings,
		clock:    RealClock{},
		location: loc,
	}
}

// WithClock подменяет часы (для тестов)
func (s *Slots) WithClock(clock Clock) *Slots {
	s.clock = clock
	return s
}

// Today возвращает текущую дату в часовом поясе офиса
func (s *Slots) Today() domain.Date {
	return domain.DateOf(s.clock.Now().In(s.location))
}

// Location возвращает часовой пояс офиса
func (s *Slots) Location() *time.Location {
	return s.location
}

// OpenHours возвращает свободные часы даты по возрастанию
// exclude - запись, чей час не считается занятым (перенос записи на ее же день)
func (s *Slots) OpenHours(ctx context.Context, date domain.Date, exclude *uuid.UUID) ([]domain.HourSlot, error) {
	now := s.clock.Now().In(s.location)
	today := domain.DateOf(now)

	if date.Before(today) {
		return []domain.HourSlot{}, nil
	}

	bookable := BookableHoursFor(date, s.store.Snapshot())
	if len(bookable) == 0 {
		return bookable, nil
	}

	taken, err := s.bookings.GetTakenHours(ctx, date, exclude)
	if err != nil {
		return nil, fmt.Errorf("%w: get taken hours for %s: %v", ErrInternal, date, err)
	}

	var unavailable [domain.HoursPerDay]bool
	for _, h := range taken {
		if h.Valid() {
			unavailable[h] = true
		}
	}
	if date == today {
		for h := 0; h <= now.Hour(); h++ {
			unavailable[h] = true
		}
	}

	open := make([]domain.HourSlot, 0, len(bookable))
	for _, h := range bookable {
		if !unavailable[h] {
			open = append(open, h)
		}
	}
	return open, nil
}

// CheckHour проверяет, что на hour даты date можно записаться, и объясняет отказ
func (s *Slots) CheckHour(ctx context.Context, date domain.Date, hour domain.HourSlot, exclude *uuid.UUID) error {
	if !hour.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidRule, domain.ErrInvalidHour)
	}

	now := s.clock.Now().In(s.location)
	today := domain.DateOf(now)

	if date.Before(today) {
		return ErrDateInPast
	}

	rs := s.store.Snapshot()
	if IsDayBlocked(date, rs) {
		return ErrDayBlocked
	}
	for _, h := range UnavailableHoursFor(date, rs) {
		if h == hour {
			return ErrHourBlocked
		}
	}

	if date == today && int(hour) <= now.Hour() {
		return ErrHourPassed
	}

	taken, err := s.bookings.GetTakenHours(ctx, date, exclude)
	if err != nil {
		return fmt.Errorf("%w: get taken hours for %s: %v", ErrInternal, date, err)
	}
	for _, h := range taken {
		if h == hour {
			return ErrHourTaken
		}
	}

	return nil
}
