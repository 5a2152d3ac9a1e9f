package bank_accounts

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/service/catalog/models"
)

type CatalogService interface {
	ListBankAccounts(ctx context.Context, activeOnly bool) ([]*models.BankAccountResponse, error)
	CreateBankAccount(ctx context.Context, req *models.CreateBankAccountRequest) (*models.BankAccountResponse, error)
	UpdateBankAccount(ctx context.Context, id uuid.UUID, req *models.UpdateBankAccountRequest) (*models.BankAccountResponse, error)
	DeactivateBankAccount(ctx context.Context, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
