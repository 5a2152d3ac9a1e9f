package models

import (
	"time"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// Request модели

// CreateAppointmentTypeRequest новый тип консультации
type CreateAppointmentTypeRequest struct {
	Name    string
	Visible bool
}

// CreateBankAccountRequest новый банковский счет
type CreateBankAccountRequest struct {
	BankName      string
	AccountNumber string
}

// UpdateBankAccountRequest частичное обновление счета, nil - поле не меняется
type UpdateBankAccountRequest struct {
	BankName      *string
	AccountNumber *string
	IsActive      *bool
}

// Response модели

// AppointmentTypeResponse тип консультации
type AppointmentTypeResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Visible   bool   `json:"visible"`
	CreatedAt string `json:"createdAt"`
}

// BankAccountResponse банковский счет
type BankAccountResponse struct {
	ID            string `json:"id"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IsActive      bool   `json:"isActive"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// FromDomainAppointmentType конвертирует domain.AppointmentType в ответ
func FromDomainAppointmentType(t *domain.AppointmentType) *AppointmentTypeResponse {
	return &AppointmentTypeResponse{
		ID:        t.ID,
		Name:      t.Name,
		Visible:   t.Visible,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainAppointmentTypes конвертирует список типов
func FromDomainAppointmentTypes(list []*domain.AppointmentType) []*AppointmentTypeResponse {
	result := make([]*AppointmentTypeResponse, 0, len(list))
	for _, t := range list {
		result = append(result, FromDomainAppointmentType(t))
	}
	return result
}

// FromDomainBankAccount конвертирует domain.BankAccount в ответ
func FromDomainBankAccount(a *domain.BankAccount) *BankAccountResponse {
	return &BankAccountResponse{
		ID:            a.ID.String(),
		BankName:      a.BankName,
		AccountNumber: a.AccountNumber,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBankAccounts конвертирует список счетов
func FromDomainBankAccounts(list []*domain.BankAccount) []*BankAccountResponse {
	result := make([]*BankAccountResponse, 0, len(list))
	for _, a := range list {
		result = append(result, FromDomainBankAccount(a))
	}
	return result
}
