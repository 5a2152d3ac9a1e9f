package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/domain"
	"github.com/m04kA/visa-booking-service/pkg/dbmetrics"
	"github.com/m04kA/visa-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий администраторов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория администраторов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByEmail получает администратора по email без учета регистра
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

// GetByID получает администратора по id
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AdminUser, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Sqlizer) (*domain.AdminUser, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "email", "password_hash", "created_at").
		From("admin_users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var (
		user      domain.AdminUser
		createdAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.Email, &user.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan admin: %v", ErrScanRow, method, err)
	}
	user.CreatedAt = createdAt.Time

	return &user, nil
}

// Create сохраняет администратора; email приводится к нижнему регистру
func (r *Repository) Create(ctx context.Context, user *domain.AdminUser) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("admin_users").
		Columns("id", "email", "password_hash").
		Values(user.ID, strings.ToLower(strings.TrimSpace(user.Email)), user.PasswordHash).
		Suffix("ON CONFLICT (email) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
