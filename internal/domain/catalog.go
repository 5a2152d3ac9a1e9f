package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentType represents a kind of consultation offered to customers
type AppointmentType struct {
	ID        int64
	Name      string
	Visible   bool // скрытые типы не показываются клиентам, но сохраняются в старых записях
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BankAccount represents an account customers may transfer the fee to
type BankAccount struct {
	ID            uuid.UUID
	BankName      string
	AccountNumber string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BankAccountUpdate частичное обновление банковского счета
type BankAccountUpdate struct {
	BankName      *string
	AccountNumber *string
	IsActive      *bool
}

// IsEmpty returns true if the update changes nothing
func (u BankAccountUpdate) IsEmpty() bool {
	return u.BankName == nil && u.AccountNumber == nil && u.IsActive == nil
}

// AdminUser represents a back-office user allowed to manage appointments
type AdminUser struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
