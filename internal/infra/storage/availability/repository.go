package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/visa-booking-service/internal/domain"
	"github.com/m04kA/visa-booking-service/pkg/dbmetrics"
	"github.com/m04kA/visa-booking-service/pkg/psqlbuilder"
)

const tableName = "availability_rules"

var ruleColumns = []string{
	"id",
	"day_of_week",
	"specific_date",
	"unavailable_hours",
	"all_day",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил доступности
// Реализует RuleSource и RuleWriter сервиса availability
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListRules возвращает все правила: сначала дни недели по порядку, затем даты по возрастанию
func (r *Repository) ListRules(ctx context.Context) ([]domain.Rule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From(tableName).
		OrderBy("day_of_week ASC NULLS LAST", "specific_date ASC NULLS LAST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.Rule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRules - scan rule: %v", ErrScanRow, err)
		}
		rules = append(rules, *rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRules - rows iteration: %v", ErrExecQuery, err)
	}

	return rules, nil
}

// GetByKey возвращает правило дня недели или даты; nil без ошибки, если правила нет
func (r *Repository) GetByKey(ctx context.Context, key domain.RuleKey) (*domain.Rule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(ruleColumns...).From(tableName)
	if key.Kind == domain.RuleKindSpecificDate {
		builder = builder.Where(squirrel.Eq{"specific_date": key.Date.String()})
	} else {
		builder = builder.Where(squirrel.Eq{"day_of_week": int(key.Weekday)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// UpsertWeekdayRule создает или заменяет правило дня недели
func (r *Repository) UpsertWeekdayRule(ctx context.Context, rule domain.Rule) (*domain.Rule, error) {
	if rule.Key.Kind != domain.RuleKindWeekday {
		return nil, fmt.Errorf("%w: expected weekday rule, got %s", ErrInvalidRule, rule.Key.Kind)
	}

	return r.upsert(ctx, "UpsertWeekdayRule",
		psqlbuilder.Insert(tableName).
			Columns("day_of_week", "unavailable_hours", "all_day").
			Values(int(rule.Key.Weekday), hoursArray(rule.UnavailableHours), rule.AllDay).
			Suffix("ON CONFLICT (day_of_week) WHERE day_of_week IS NOT NULL DO UPDATE SET "+
				"unavailable_hours = EXCLUDED.unavailable_hours, all_day = EXCLUDED.all_day, updated_at = NOW() "+
				"RETURNING "+returningColumns()),
	)
}

// UpsertSpecificDateRule создает или заменяет правило на конкретную дату
func (r *Repository) UpsertSpecificDateRule(ctx context.Context, rule domain.Rule) (*domain.Rule, error) {
	if rule.Key.Kind != domain.RuleKindSpecificDate {
		return nil, fmt.Errorf("%w: expected specific-date rule, got %s", ErrInvalidRule, rule.Key.Kind)
	}

	return r.upsert(ctx, "UpsertSpecificDateRule",
		psqlbuilder.Insert(tableName).
			Columns("specific_date", "unavailable_hours", "all_day").
			Values(rule.Key.Date.String(), hoursArray(rule.UnavailableHours), rule.AllDay).
			Suffix("ON CONFLICT (specific_date) WHERE specific_date IS NOT NULL DO UPDATE SET "+
				"unavailable_hours = EXCLUDED.unavailable_hours, all_day = EXCLUDED.all_day, updated_at = NOW() "+
				"RETURNING "+returningColumns()),
	)
}

func (r *Repository) upsert(ctx context.Context, method string, builder squirrel.InsertBuilder) (*domain.Rule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build insert query: %v", ErrBuildQuery, method, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute upsert: %v", ErrExecQuery, method, err)
	}

	return rule, nil
}

// DeleteSpecificDateRule удаляет правило на дату
// Отсутствие правила не ошибка: день и так подчиняется правилу дня недели
func (r *Repository) DeleteSpecificDateRule(ctx context.Context, date domain.Date) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"specific_date": date.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteSpecificDateRule - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteSpecificDateRule - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRule собирает domain.Rule из строки; дата берется без времени суток
func scanRule(row rowScanner) (*domain.Rule, error) {
	var (
		rule                 domain.Rule
		dayOfWeek            sql.NullInt16
		specificDate         sql.NullTime
		hours                pq.Int64Array
		createdAt, updatedAt sql.NullTime
	)

	if err := row.Scan(
		&rule.ID,
		&dayOfWeek,
		&specificDate,
		&hours,
		&rule.AllDay,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	switch {
	case specificDate.Valid:
		rule.Key = domain.DateKey(domain.DateOf(specificDate.Time))
	case dayOfWeek.Valid:
		rule.Key = domain.WeekdayKey(time.Weekday(dayOfWeek.Int16))
	default:
		return nil, fmt.Errorf("rule id=%d has neither day_of_week nor specific_date", rule.ID)
	}

	rule.UnavailableHours = make([]domain.HourSlot, 0, len(hours))
	for _, h := range hours {
		rule.UnavailableHours = append(rule.UnavailableHours, domain.HourSlot(h))
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

func hoursArray(hours []domain.HourSlot) interface{} {
	values := make([]int64, 0, len(hours))
	for _, h := range hours {
		values = append(values, int64(h))
	}
	return pq.Array(values)
}

func returningColumns() string {
	return strings.Join(ruleColumns, ", ")
}
