package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the review state of an appointment
type AppointmentStatus string

const (
	StatusPending  AppointmentStatus = "pending"
	StatusApproved AppointmentStatus = "approved"
	StatusRejected AppointmentStatus = "rejected"
	StatusDone     AppointmentStatus = "done"
)

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusDone:
		return true
	}
	return false
}

// Appointment represents a customer booking of one hour slot
type Appointment struct {
	ID          uuid.UUID
	ShortID     string // первые 8 символов ID, показываются клиенту
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string // ###-###-####

	Date Date
	Hour HourSlot

	AppointmentTypeID   int64
	AppointmentTypeName string

	BankAccountID *uuid.UUID
	BankName      *string
	ReceiptKey    string

	Status          AppointmentStatus
	RejectionReason *string
	MeetingLink     *string
	AdminNote       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShortIDOf returns the customer-facing booking code for id.
func ShortIDOf(id uuid.UUID) string {
	return id.String()[:ShortIDLength]
}

// FullName returns "First Last".
func (a *Appointment) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// HoldsSlot returns true if the appointment occupies its hour (every status except rejected)
func (a *Appointment) HoldsSlot() bool {
	return a.Status != StatusRejected
}

// CanBeReviewed returns true if the appointment can still be approved, rejected or moved
func (a *Appointment) CanBeReviewed() bool {
	return a.Status != StatusDone
}

// CanBeCompleted returns true if the appointment can be marked as done
func (a *Appointment) CanBeCompleted() bool {
	return a.Status == StatusApproved
}

// StartsAt returns the slot start in loc.
func (a *Appointment) StartsAt(loc *time.Location) time.Time {
	return a.Date.In(loc).Add(time.Duration(a.Hour) * time.Hour)
}

// AppointmentOrder поле сортировки списка записей
type AppointmentOrder string

const (
	OrderByDate    AppointmentOrder = "date"
	OrderByCreated AppointmentOrder = "created"
	OrderByName    AppointmentOrder = "name"
	OrderByStatus  AppointmentOrder = "status"
)

// AppointmentsFilter фильтр списка записей для администратора
type AppointmentsFilter struct {
	Status   *AppointmentStatus // nil - все статусы
	Date     *Date              // конкретная дата
	Month    *Month             // месяц целиком, игнорируется если задан Date
	Search   string             // подстрока имени, фамилии, email или короткого кода, без учета регистра
	OrderBy  AppointmentOrder
	OrderAsc bool
}
