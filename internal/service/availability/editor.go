package availability

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// ToggleHour переключает один час в правиле key
// current == nil означает, что правила еще нет - стартуем с пустого, не "весь день"
// В правиле "весь день" отдельные часы не переключаются
func ToggleHour(current *domain.Rule, key domain.RuleKey, hour domain.HourSlot) (domain.Rule, error) {
	if !hour.Valid() {
		return domain.Rule{}, fmt.Errorf("%w: %v", ErrInvalidRule, domain.ErrInvalidHour)
	}
	if current != nil && current.AllDay {
		return domain.Rule{}, ErrAllDayRule
	}

	next := startingRule(current, key)

	hours := make([]domain.HourSlot, 0, len(next.UnavailableHours)+1)
	found := false
	for _, h := range next.UnavailableHours {
		if h == hour {
			found = true
			continue
		}
		hours = append(hours, h)
	}
	if !found {
		hours = append(hours, hour)
	}

	next.UnavailableHours = domain.SortedHours(hours)
	return next, nil
}

// ToggleAllDay переключает флаг "весь день"; при включении список часов очищается
func ToggleAllDay(current *domain.Rule, key domain.RuleKey) domain.Rule {
	next := startingRule(current, key)
	next.AllDay = !next.AllDay
	if next.AllDay {
		next.UnavailableHours = []domain.HourSlot{}
	}
	return next
}

func startingRule(current *domain.Rule, key domain.RuleKey) domain.Rule {
	if current == nil {
		return domain.Rule{Key: key, UnavailableHours: []domain.HourSlot{}}
	}
	next := *current
	next.Key = key
	next.UnavailableHours = domain.SortedHours(current.UnavailableHours)
	return next
}

// Editor применяет изменения правил: сохраняет через RuleWriter и перезагружает Store
// Одновременно выполняется только одно изменение
type Editor struct {
	writer RuleWriter
	store  *Store
	logger Logger

	mu sync.Mutex
}

// NewEditor создает редактор правил
func NewEditor(writer RuleWriter, store *Store, logger Logger) *Editor {
	return &Editor{
		writer: writer,
		store:  store,
		logger: logger,
	}
}

// Upsert создает или заменяет правило по его ключу
func (e *Editor) Upsert(ctx context.Context, rule domain.Rule) (*domain.Rule, error) {
	if !e.mu.TryLock() {
		return nil, ErrEditInProgress
	}
	defer e.mu.Unlock()

	return e.upsert(ctx, rule)
}

// DeleteSpecificDate удаляет правило на дату, возвращая день под действие правила дня недели
func (e *Editor) DeleteSpecificDate(ctx context.Context, date domain.Date) error {
	if !e.mu.TryLock() {
		return ErrEditInProgress
	}
	defer e.mu.Unlock()

	return e.deleteSpecificDate(ctx, date)
}

// ToggleHour переключает час в правиле key относительно сохраненного правила
// Правило на дату, оставшееся без часов, удаляется
func (e *Editor) ToggleHour(ctx context.Context, key domain.RuleKey, hour domain.HourSlot) (*domain.Rule, error) {
	if !e.mu.TryLock() {
		return nil, ErrEditInProgress
	}
	defer e.mu.Unlock()

	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	current, err := e.current(ctx, key)
	if err != nil {
		return nil, err
	}

	next, err := ToggleHour(current, key, hour)
	if err != nil {
		return nil, err
	}

	if key.Kind == domain.RuleKindSpecificDate && next.IsEmpty() {
		if err := e.deleteSpecificDate(ctx, key.Date); err != nil {
			return nil, err
		}
		return &next, nil
	}

	return e.upsert(ctx, next)
}

// ToggleAllDay переключает флаг "весь день" в правиле key
func (e *Editor) ToggleAllDay(ctx context.Context, key domain.RuleKey) (*domain.Rule, error) {
	if !e.mu.TryLock() {
		return nil, ErrEditInProgress
	}
	defer e.mu.Unlock()

	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	current, err := e.current(ctx, key)
	if err != nil {
		return nil, err
	}

	next := ToggleAllDay(current, key)

	if key.Kind == domain.RuleKindSpecificDate && next.IsEmpty() {
		if err := e.deleteSpecificDate(ctx, key.Date); err != nil {
			return nil, err
		}
		return &next, nil
	}

	return e.upsert(ctx, next)
}

// current читает правило из хранилища, а не из снимка: снимок может отставать от записи
func (e *Editor) current(ctx context.Context, key domain.RuleKey) (*domain.Rule, error) {
	rule, err := e.writer.GetByKey(ctx, key)
	if err != nil {
		e.logger.Error("RuleEditor: failed to read rule for %s: %v", key, err)
		return nil, fmt.Errorf("%w: %v", ErrLoadRules, err)
	}
	return rule, nil
}

func (e *Editor) upsert(ctx context.Context, rule domain.Rule) (*domain.Rule, error) {
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	rule = rule.Normalized()

	var (
		saved *domain.Rule
		err   error
	)
	switch rule.Key.Kind {
	case domain.RuleKindWeekday:
		saved, err = e.writer.UpsertWeekdayRule(ctx, rule)
	case domain.RuleKindSpecificDate:
		if rule.IsEmpty() {
			return nil, ErrEmptyRule
		}
		saved, err = e.writer.UpsertSpecificDateRule(ctx, rule)
	}
	if err != nil {
		e.logger.Error("RuleEditor: failed to save rule for %s: %v", rule.Key, err)
		return nil, fmt.Errorf("%w: %v", ErrSaveRule, err)
	}

	e.logger.Info("RuleEditor: saved rule for %s: hours=%v, allDay=%t", rule.Key, rule.UnavailableHours, rule.AllDay)
	e.reload(ctx)
	return saved, nil
}

func (e *Editor) deleteSpecificDate(ctx context.Context, date domain.Date) error {
	if date.IsZero() {
		return fmt.Errorf("%w: %v", ErrInvalidRule, domain.ErrInvalidDate)
	}

	if err := e.writer.DeleteSpecificDateRule(ctx, date); err != nil {
		e.logger.Error("RuleEditor: failed to delete rule for date %s: %v", date, err)
		return fmt.Errorf("%w: %v", ErrSaveRule, err)
	}

	e.logger.Info("RuleEditor: deleted rule for date %s", date)
	e.reload(ctx)
	return nil
}

// reload после успешной записи; ошибка не откатывает запись - снимок догонит следующая перезагрузка
func (e *Editor) reload(ctx context.Context) {
	if err := e.store.Load(ctx); err != nil {
		e.logger.Warn("RuleEditor: rule saved but store reload failed: %v", err)
	}
}
