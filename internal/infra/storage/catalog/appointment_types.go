package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/visa-booking-service/internal/domain"
	"github.com/m04kA/visa-booking-service/pkg/dbmetrics"
	"github.com/m04kA/visa-booking-service/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var typeColumns = []string{"id", "name", "visible", "created_at", "updated_at"}

// Repository репозиторий справочников: типы консультаций и банковские счета
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListAppointmentTypes возвращает типы консультаций по названию; visibleOnly - только видимые клиентам
func (r *Repository) ListAppointmentTypes(ctx context.Context, visibleOnly bool) ([]*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(typeColumns...).
		From("appointment_types").
		OrderBy("name ASC")
	if visibleOnly {
		builder = builder.Where(squirrel.Eq{"visible": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAppointmentTypes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAppointmentTypes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	types := make([]*domain.AppointmentType, 0)
	for rows.Next() {
		t, err := scanAppointmentType(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAppointmentTypes - scan type: %v", ErrScanRow, err)
		}
		types = append(types, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAppointmentTypes - rows iteration: %v", ErrExecQuery, err)
	}

	return types, nil
}

// GetAppointmentType получает тип консультации по ID
func (r *Repository) GetAppointmentType(ctx context.Context, id int64) (*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(typeColumns...).
		From("appointment_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentType - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanAppointmentType(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentType - scan type: %v", ErrScanRow, err)
	}

	return t, nil
}

// CreateAppointmentType создает тип консультации
func (r *Repository) CreateAppointmentType(ctx context.Context, t *domain.AppointmentType) (*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointment_types").
		Columns("name", "visible").
		Values(t.Name, t.Visible).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateAppointmentType - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt, &updatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateName
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateAppointmentType - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// SetAppointmentTypeVisibility скрывает или показывает тип консультации клиентам
func (r *Repository) SetAppointmentTypeVisibility(ctx context.Context, id int64, visible bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointment_types").
		Set("visible", visible).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetAppointmentTypeVisibility - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAppointmentTypeVisibility - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAppointmentTypeVisibility - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentTypeNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointmentType(row rowScanner) (*domain.AppointmentType, error) {
	var (
		t                    domain.AppointmentType
		createdAt, updatedAt sql.NullTime
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Visible, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	return &t, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
