package notifications

import (
	"time"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// EventType тип уведомления о записи
type EventType string

const (
	EventCreated   EventType = "appointment.created"
	EventApproved  EventType = "appointment.approved"
	EventRejected  EventType = "appointment.rejected"
	EventMoved     EventType = "appointment.moved"
	EventCompleted EventType = "appointment.completed"
)

// Slot дата и час записи в сообщении
type Slot struct {
	Date      string `json:"date"`
	Hour      int    `json:"hour"`
	HourLabel string `json:"hourLabel"`
}

// Event сообщение для почтового сервиса
type Event struct {
	Type            EventType `json:"type"`
	AppointmentID   string    `json:"appointmentId"`
	ShortID         string    `json:"shortId"`
	Email           string    `json:"email"`
	FullName        string    `json:"fullName"`
	AppointmentType string    `json:"appointmentType"`
	Status          string    `json:"status"`
	Slot            Slot      `json:"slot"`
	PreviousSlot    *Slot     `json:"previousSlot,omitempty"`
	MeetingLink     *string   `json:"meetingLink,omitempty"`
	Reason          *string   `json:"reason,omitempty"`
	Note            *string   `json:"note,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// NewEvent собирает сообщение из текущего состояния записи
func NewEvent(eventType EventType, a *domain.Appointment, occurredAt time.Time) Event {
	return Event{
		Type:            eventType,
		AppointmentID:   a.ID.String(),
		ShortID:         a.ShortID,
		Email:           a.Email,
		FullName:        a.FullName(),
		AppointmentType: a.AppointmentTypeName,
		Status:          string(a.Status),
		Slot:            SlotOf(a.Date, a.Hour),
		MeetingLink:     a.MeetingLink,
		Reason:          a.RejectionReason,
		Note:            a.AdminNote,
		OccurredAt:      occurredAt.UTC(),
	}
}

// SlotOf описывает слот для сообщения
func SlotOf(date domain.Date, hour domain.HourSlot) Slot {
	return Slot{Date: date.String(), Hour: int(hour), HourLabel: hour.String()}
}
