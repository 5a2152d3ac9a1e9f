package bank_accounts

import "github.com/m04kA/visa-booking-service/internal/service/catalog/models"

// CreateBankAccountRequest HTTP request model
type CreateBankAccountRequest struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
}

// UpdateBankAccountRequest HTTP request model, отсутствующие поля не меняются
type UpdateBankAccountRequest struct {
	BankName      *string `json:"bankName"`
	AccountNumber *string `json:"accountNumber"`
	IsActive      *bool   `json:"isActive"`
}

// ToServiceRequest конвертирует HTTP request в запрос сервиса
func (r *CreateBankAccountRequest) ToServiceRequest() *models.CreateBankAccountRequest {
	return &models.CreateBankAccountRequest{
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
	}
}

// ToServiceRequest конвертирует HTTP request в запрос сервиса
func (r *UpdateBankAccountRequest) ToServiceRequest() *models.UpdateBankAccountRequest {
	return &models.UpdateBankAccountRequest{
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
		IsActive:      r.IsActive,
	}
}
