package appointments

import (
	"context"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

const icsProductID = "-//visa-booking-service//appointments//EN"

// ExportICS выгружает записи месяца в формате iCalendar; отклоненные записи пропускаются
func (s *Service) ExportICS(ctx context.Context, month string) (string, error) {
	m, list, err := s.monthAppointments(ctx, "ExportICS", month)
	if err != nil {
		return "", err
	}

	cal := BuildCalendar(list, s.loc, s.clock.Now())
	s.logger.Info("ExportICS: exported %d appointments of %s", len(cal.Events()), m)
	return cal.Serialize(), nil
}

// BuildCalendar строит календарь, каждая запись - событие длительностью один час
func BuildCalendar(list []*domain.Appointment, loc *time.Location, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)

	for _, a := range list {
		if !a.HoldsSlot() {
			continue
		}

		start := a.StartsAt(loc)
		event := cal.AddEvent(a.ID.String())
		event.SetDtStampTime(stamp.UTC())
		event.SetStartAt(start)
		event.SetEndAt(start.Add(time.Hour))
		event.SetSummary(fmt.Sprintf("%s - %s", a.AppointmentTypeName, a.FullName()))
		event.SetDescription(eventDescription(a))
		if a.MeetingLink != nil {
			event.SetURL(*a.MeetingLink)
		}
	}

	return cal
}

func eventDescription(a *domain.Appointment) string {
	lines := []string{
		"Code: " + a.ShortID,
		"Status: " + string(a.Status),
		"Email: " + a.Email,
		"Phone: " + domain.FormatPhoneDisplay(a.PhoneNumber),
	}
	if a.AdminNote != nil {
		lines = append(lines, "Note: "+*a.AdminNote)
	}
	return strings.Join(lines, "\n")
}
