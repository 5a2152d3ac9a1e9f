package availability

import "github.com/m04kA/visa-booking-service/internal/domain"

// UnavailableHoursFor возвращает закрытые часы даты по возрастанию
// Правило на конкретную дату полностью заменяет правило дня недели, они не объединяются
func UnavailableHoursFor(date domain.Date, rs *domain.RuleSet) []domain.HourSlot {
	if rule, ok := rs.SpecificDate(date); ok {
		return rule.Blocked()
	}
	if rule, ok := rs.Weekday(date.Weekday()); ok {
		return rule.Blocked()
	}
	return []domain.HourSlot{}
}

// BookableHoursFor возвращает открытые часы даты по возрастанию
// Прошедшие даты и часы здесь не отсекаются - это делает Slots
func BookableHoursFor(date domain.Date, rs *domain.RuleSet) []domain.HourSlot {
	var blocked [domain.HoursPerDay]bool
	for _, h := range UnavailableHoursFor(date, rs) {
		blocked[h] = true
	}

	bookable := make([]domain.HourSlot, 0, domain.HoursPerDay)
	for h := domain.HourSlot(0); h < domain.HoursPerDay; h++ {
		if !blocked[h] {
			bookable = append(bookable, h)
		}
	}
	return bookable
}

// IsDayBlocked сообщает, закрыт ли день целиком
func IsDayBlocked(date domain.Date, rs *domain.RuleSet) bool {
	return len(UnavailableHoursFor(date, rs)) == domain.HoursPerDay
}
