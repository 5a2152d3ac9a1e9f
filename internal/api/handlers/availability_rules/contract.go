package availability_rules

import (
	"context"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// RuleSource все сохраненные правила
type RuleSource interface {
	ListRules(ctx context.Context) ([]domain.Rule, error)
}

// RuleEditor изменения правил с перезагрузкой снимка
type RuleEditor interface {
	Upsert(ctx context.Context, rule domain.Rule) (*domain.Rule, error)
	DeleteSpecificDate(ctx context.Context, date domain.Date) error
	ToggleHour(ctx context.Context, key domain.RuleKey, hour domain.HourSlot) (*domain.Rule, error)
	ToggleAllDay(ctx context.Context, key domain.RuleKey) (*domain.Rule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
