package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// RuleSource источник всех правил доступности (репозиторий или REST-клиент)
type RuleSource interface {
	ListRules(ctx context.Context) ([]domain.Rule, error)
}

// RuleWriter читает и сохраняет отдельные правила
// GetByKey возвращает nil без ошибки, если правила нет
// DeleteSpecificDateRule не считает отсутствие правила ошибкой
type RuleWriter interface {
	GetByKey(ctx context.Context, key domain.RuleKey) (*domain.Rule, error)
	UpsertWeekdayRule(ctx context.Context, rule domain.Rule) (*domain.Rule, error)
	UpsertSpecificDateRule(ctx context.Context, rule domain.Rule) (*domain.Rule, error)
	DeleteSpecificDateRule(ctx context.Context, date domain.Date) error
}

// BookedHoursRepository часы, занятые записями на дату
type BookedHoursRepository interface {
	GetTakenHours(ctx context.Context, date domain.Date, exclude *uuid.UUID) ([]domain.HourSlot, error)
}

// ReloadObserver получает результат каждой перезагрузки (метрики)
type ReloadObserver interface {
	ObserveRuleStoreReload(err error, weekdayRules, dateRules int)
}

// Clock текущее время (подменяется в тестах)
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealClock системные часы
type RealClock struct{}

// Now возвращает текущее время
func (RealClock) Now() time.Time {
	return time.Now()
}
