package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/domain"
	"github.com/m04kA/visa-booking-service/pkg/dbmetrics"
	"github.com/m04kA/visa-booking-service/pkg/psqlbuilder"
)

var bankAccountColumns = []string{"id", "bank_name", "account_number", "is_active", "created_at", "updated_at"}

// ListBankAccounts возвращает банковские счета; activeOnly - только принимающие оплату
func (r *Repository) ListBankAccounts(ctx context.Context, activeOnly bool) ([]*domain.BankAccount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bankAccountColumns...).
		From("bank_accounts").
		OrderBy("bank_name ASC", "created_at ASC")
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBankAccounts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBankAccounts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	accounts := make([]*domain.BankAccount, 0)
	for rows.Next() {
		account, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBankAccounts - scan account: %v", ErrScanRow, err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBankAccounts - rows iteration: %v", ErrExecQuery, err)
	}

	return accounts, nil
}

// GetBankAccount получает банковский счет по ID
func (r *Repository) GetBankAccount(ctx context.Context, id uuid.UUID) (*domain.BankAccount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bankAccountColumns...).
		From("bank_accounts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBankAccount - build select query: %v", ErrBuildQuery, err)
	}

	account, err := scanBankAccount(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBankAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBankAccount - scan account: %v", ErrScanRow, err)
	}

	return account, nil
}

// CreateBankAccount создает банковский счет
func (r *Repository) CreateBankAccount(ctx context.Context, account *domain.BankAccount) (*domain.BankAccount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bank_accounts").
		Columns("id", "bank_name", "account_number", "is_active").
		Values(account.ID, account.BankName, account.AccountNumber, account.IsActive).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBankAccount - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBankAccount - execute insert: %v", ErrExecQuery, err)
	}

	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return account, nil
}

// UpdateBankAccount частично обновляет банковский счет и возвращает его новое состояние
func (r *Repository) UpdateBankAccount(ctx context.Context, id uuid.UUID, update domain.BankAccountUpdate) (*domain.BankAccount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := updateBankAccountQuery(id, update).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateBankAccount - build update query: %v", ErrBuildQuery, err)
	}

	account, err := scanBankAccount(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBankAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateBankAccount - execute update: %v", ErrExecQuery, err)
	}

	return account, nil
}

func updateBankAccountQuery(id uuid.UUID, update domain.BankAccountUpdate) squirrel.UpdateBuilder {
	builder := psqlbuilder.Update("bank_accounts").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, bank_name, account_number, is_active, created_at, updated_at")

	if update.BankName != nil {
		builder = builder.Set("bank_name", *update.BankName)
	}
	if update.AccountNumber != nil {
		builder = builder.Set("account_number", *update.AccountNumber)
	}
	if update.IsActive != nil {
		builder = builder.Set("is_active", *update.IsActive)
	}

	return builder
}

func scanBankAccount(row rowScanner) (*domain.BankAccount, error) {
	var (
		account              domain.BankAccount
		createdAt, updatedAt sql.NullTime
	)
	if err := row.Scan(
		&account.ID,
		&account.BankName,
		&account.AccountNumber,
		&account.IsActive,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time
	return &account, nil
}
