package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// Request модели

// ListRequest фильтр списка записей администратора; пустые строки - без фильтра
type ListRequest struct {
	Status   string
	Date     string // YYYY-MM-DD
	Month    string // YYYY-MM
	Search   string
	OrderBy  string // date | created | name | status
	OrderDir string // asc | desc
}

// ToDomainFilter проверяет и конвертирует фильтр
func (r *ListRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		Search:  strings.TrimSpace(r.Search),
		OrderBy: domain.OrderByCreated,
	}

	if r.Status != "" {
		status := domain.AppointmentStatus(strings.ToLower(r.Status))
		if !status.Valid() {
			return filter, fmt.Errorf("unknown status %q", r.Status)
		}
		filter.Status = &status
	}

	if r.Date != "" {
		date, err := domain.ParseDate(r.Date)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}

	if r.Month != "" {
		month, err := domain.ParseMonth(r.Month)
		if err != nil {
			return filter, err
		}
		filter.Month = &month
	}

	switch order := domain.AppointmentOrder(strings.ToLower(r.OrderBy)); order {
	case "":
	case domain.OrderByDate, domain.OrderByCreated, domain.OrderByName, domain.OrderByStatus:
		filter.OrderBy = order
	default:
		return filter, fmt.Errorf("unknown order field %q", r.OrderBy)
	}

	switch strings.ToLower(r.OrderDir) {
	case "", "desc":
	case "asc":
		filter.OrderAsc = true
	default:
		return filter, fmt.Errorf("unknown order direction %q", r.OrderDir)
	}

	return filter, nil
}

// ApproveRequest подтверждение записи
type ApproveRequest struct {
	MeetingLink *string
	Note        *string
}

// RejectRequest отклонение записи
type RejectRequest struct {
	Reason string
	Note   *string
}

// Response модели

// AppointmentResponse запись для администратора
type AppointmentResponse struct {
	ID                  string  `json:"id"`
	ShortID             string  `json:"shortId"`
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	Email               string  `json:"email"`
	PhoneNumber         string  `json:"phoneNumber"`
	AppointmentDate     string  `json:"appointmentDate"` // "2025-12-24"
	AppointmentHour     int     `json:"appointmentHour"`
	AppointmentTypeID   int64   `json:"appointmentTypeId"`
	AppointmentTypeName string  `json:"appointmentTypeName"`
	BankAccountID       *string `json:"bankAccountId,omitempty"`
	BankName            *string `json:"bankName,omitempty"`
	HasReceipt          bool    `json:"hasReceipt"`
	Status              string  `json:"status"`
	RejectionReason     *string `json:"rejectionReason,omitempty"`
	MeetingLink         *string `json:"meetingLink,omitempty"`
	AdminNote           *string `json:"adminNote,omitempty"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// PublicAppointmentResponse статус записи для клиента по короткому коду
type PublicAppointmentResponse struct {
	ShortID             string  `json:"shortId"`
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	Email               string  `json:"email"`
	PhoneNumber         string  `json:"phoneNumber"` // "+1 (809) 555-1234"
	AppointmentDate     string  `json:"appointmentDate"`
	AppointmentHour     int     `json:"appointmentHour"`
	AppointmentTypeName string  `json:"appointmentTypeName"`
	Status              string  `json:"status"`
	RejectionReason     *string `json:"rejectionReason,omitempty"`
	MeetingLink         *string `json:"meetingLink,omitempty"`
}

// CalendarDay записи одного дня
type CalendarDay struct {
	Date         string                 `json:"date"`
	Appointments []*AppointmentResponse `json:"appointments"`
}

// CalendarResponse записи месяца, сгруппированные по дням
type CalendarResponse struct {
	Month string         `json:"month"` // "2025-12"
	Days  []*CalendarDay `json:"days"`
}

// FromDomainAppointment конвертирует domain.Appointment в ответ администратору
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                  a.ID.String(),
		ShortID:             a.ShortID,
		FirstName:           a.FirstName,
		LastName:            a.LastName,
		Email:               a.Email,
		PhoneNumber:         a.PhoneNumber,
		AppointmentDate:     a.Date.String(),
		AppointmentHour:     int(a.Hour),
		AppointmentTypeID:   a.AppointmentTypeID,
		AppointmentTypeName: a.AppointmentTypeName,
		BankName:            a.BankName,
		HasReceipt:          a.ReceiptKey != "",
		Status:              string(a.Status),
		RejectionReason:     a.RejectionReason,
		MeetingLink:         a.MeetingLink,
		AdminNote:           a.AdminNote,
		CreatedAt:           a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           a.UpdatedAt.Format(time.RFC3339),
	}
	if a.BankAccountID != nil {
		id := a.BankAccountID.String()
		resp.BankAccountID = &id
	}
	return resp
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(list []*domain.Appointment) []*AppointmentResponse {
	result := make([]*AppointmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, FromDomainAppointment(a))
	}
	return result
}

// FromDomainPublicAppointment конвертирует запись для клиента; телефон в виде +1 (###) ###-####
func FromDomainPublicAppointment(a *domain.Appointment) *PublicAppointmentResponse {
	return &PublicAppointmentResponse{
		ShortID:             a.ShortID,
		FirstName:           a.FirstName,
		LastName:            a.LastName,
		Email:               a.Email,
		PhoneNumber:         domain.FormatPhoneDisplay(a.PhoneNumber),
		AppointmentDate:     a.Date.String(),
		AppointmentHour:     int(a.Hour),
		AppointmentTypeName: a.AppointmentTypeName,
		Status:              string(a.Status),
		RejectionReason:     a.RejectionReason,
		MeetingLink:         a.MeetingLink,
	}
}

// GroupByDate группирует записи месяца по дням, дни по возрастанию, внутри дня по часу
func GroupByDate(month domain.Month, list []*domain.Appointment) *CalendarResponse {
	byDate := make(map[domain.Date][]*domain.Appointment)
	for _, a := range list {
		byDate[a.Date] = append(byDate[a.Date], a)
	}

	resp := &CalendarResponse{Month: month.String(), Days: make([]*CalendarDay, 0, len(byDate))}
	for d := month.FirstDay(); !d.After(month.LastDay()); d = d.AddDays(1) {
		day, ok := byDate[d]
		if !ok {
			continue
		}
		sortByHour(day)
		resp.Days = append(resp.Days, &CalendarDay{
			Date:         d.String(),
			Appointments: FromDomainAppointmentList(day),
		})
	}
	return resp
}

func sortByHour(list []*domain.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Hour < list[j].Hour
	})
}
