package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/domain"
	"github.com/m04kA/visa-booking-service/internal/infra/messaging/notifications"
	appointmentRepo "github.com/m04kA/visa-booking-service/internal/infra/storage/appointment"
	"github.com/m04kA/visa-booking-service/internal/infra/storage/receipts"
	"github.com/m04kA/visa-booking-service/internal/service/appointments/models"
)

type Service struct {
	repo     AppointmentRepository
	receipts ReceiptStorage
	notifier Notifier
	loc      *time.Location
	clock    Clock
	logger   Logger
}

// NewService создает сервис записей; loc - часовой пояс офиса для календаря
func NewService(repo AppointmentRepository, receipts ReceiptStorage, notifier Notifier, loc *time.Location, logger Logger) *Service {
	return &Service{
		repo:     repo,
		receipts: receipts,
		notifier: notifier,
		loc:      loc,
		clock:    realClock{},
		logger:   logger,
	}
}

// WithClock подменяет источник времени
func (s *Service) WithClock(clock Clock) *Service {
	s.clock = clock
	return s
}

// GetByShortID возвращает статус записи по короткому коду для клиента
func (s *Service) GetByShortID(ctx context.Context, shortID string) (*models.PublicAppointmentResponse, error) {
	shortID = strings.TrimSpace(shortID)
	if len(shortID) != domain.ShortIDLength {
		return nil, fmt.Errorf("%w: short id must have %d characters", ErrInvalidInput, domain.ShortIDLength)
	}

	appointment, err := s.repo.GetByShortID(ctx, shortID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByShortID: failed to get appointment %s: %v", shortID, err)
		return nil, fmt.Errorf("%w: GetByShortID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPublicAppointment(appointment), nil
}

// OpenReceipt открывает файл чека записи; вызывающий закрывает Body
func (s *Service) OpenReceipt(ctx context.Context, shortID string) (*receipts.Object, error) {
	shortID = strings.TrimSpace(shortID)
	appointment, err := s.repo.GetByShortID(ctx, shortID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: OpenReceipt - repository error: %v", ErrInternal, err)
	}

	return s.openReceipt(ctx, "OpenReceipt", appointment)
}

// OpenReceiptByID открывает чек записи по id, для администратора
func (s *Service) OpenReceiptByID(ctx context.Context, id uuid.UUID) (*receipts.Object, error) {
	appointment, err := s.get(ctx, "OpenReceiptByID", id)
	if err != nil {
		return nil, err
	}

	return s.openReceipt(ctx, "OpenReceiptByID", appointment)
}

// GetByID возвращает полную запись для администратора
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	appointment, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// List возвращает записи для администратора
func (s *Service) List(ctx context.Context, req *models.ListRequest) ([]*models.AppointmentResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(list), nil
}

// Approve подтверждает запись, ссылка на встречу и заметка заменяют предыдущие
func (s *Service) Approve(ctx context.Context, id uuid.UUID, req *models.ApproveRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Approving appointment: id=%s", id)

	appointment, err := s.getForReview(ctx, "Approve", id)
	if err != nil {
		return nil, err
	}

	appointment.Status = domain.StatusApproved
	appointment.RejectionReason = nil
	appointment.MeetingLink = trimmedOrNil(req.MeetingLink)
	appointment.AdminNote = trimmedOrNil(req.Note)

	if err := s.save(ctx, "Approve", appointment); err != nil {
		return nil, err
	}

	s.notify(ctx, notifications.EventApproved, appointment)
	s.logger.Info("Appointment approved: id=%s, date=%s, hour=%d", id, appointment.Date, appointment.Hour)
	return models.FromDomainAppointment(appointment), nil
}

// Reject отклоняет запись; причина обязательна, слот освобождается
func (s *Service) Reject(ctx context.Context, id uuid.UUID, req *models.RejectRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Rejecting appointment: id=%s", id)

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	if len(reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	appointment, err := s.getForReview(ctx, "Reject", id)
	if err != nil {
		return nil, err
	}

	appointment.Status = domain.StatusRejected
	appointment.RejectionReason = &reason
	appointment.AdminNote = trimmedOrNil(req.Note)

	if err := s.save(ctx, "Reject", appointment); err != nil {
		return nil, err
	}

	s.notify(ctx, notifications.EventRejected, appointment)
	s.logger.Info("Appointment rejected: id=%s", id)
	return models.FromDomainAppointment(appointment), nil
}

// Complete отмечает подтвержденную запись как проведенную
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("Completing appointment: id=%s", id)

	appointment, err := s.get(ctx, "Complete", id)
	if err != nil {
		return nil, err
	}

	if !appointment.CanBeCompleted() {
		return nil, ErrNotApproved
	}

	appointment.Status = domain.StatusDone
	if err := s.save(ctx, "Complete", appointment); err != nil {
		return nil, err
	}

	s.notify(ctx, notifications.EventCompleted, appointment)
	s.logger.Info("Appointment completed: id=%s", id)
	return models.FromDomainAppointment(appointment), nil
}

// Calendar возвращает записи месяца, сгруппированные по дням
func (s *Service) Calendar(ctx context.Context, month string) (*models.CalendarResponse, error) {
	m, list, err := s.monthAppointments(ctx, "Calendar", month)
	if err != nil {
		return nil, err
	}
	return models.GroupByDate(m, list), nil
}

func (s *Service) monthAppointments(ctx context.Context, method, month string) (domain.Month, []*domain.Appointment, error) {
	m, err := domain.ParseMonth(month)
	if err != nil {
		return domain.Month{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.repo.List(ctx, domain.AppointmentsFilter{
		Month:    &m,
		OrderBy:  domain.OrderByDate,
		OrderAsc: true,
	})
	if err != nil {
		s.logger.Error("%s: failed to list appointments of %s: %v", method, m, err)
		return domain.Month{}, nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}

	return m, list, nil
}

func (s *Service) get(ctx context.Context, method string, id uuid.UUID) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: failed to get appointment %s: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return appointment, nil
}

func (s *Service) openReceipt(ctx context.Context, method string, appointment *domain.Appointment) (*receipts.Object, error) {
	if appointment.ReceiptKey == "" {
		return nil, ErrReceiptNotFound
	}

	obj, err := s.receipts.Open(ctx, appointment.ReceiptKey)
	if err != nil {
		if errors.Is(err, receipts.ErrReceiptNotFound) {
			s.logger.Warn("%s: receipt %s of appointment %s is missing in storage", method, appointment.ReceiptKey, appointment.ShortID)
			return nil, ErrReceiptNotFound
		}
		s.logger.Error("%s: failed to open receipt %s: %v", method, appointment.ReceiptKey, err)
		return nil, fmt.Errorf("%w: %s - storage error: %v", ErrInternal, method, err)
	}

	return obj, nil
}

func (s *Service) getForReview(ctx context.Context, method string, id uuid.UUID) (*domain.Appointment, error) {
	appointment, err := s.get(ctx, method, id)
	if err != nil {
		return nil, err
	}
	if !appointment.CanBeReviewed() {
		return nil, ErrAlreadyDone
	}
	return appointment, nil
}

func (s *Service) save(ctx context.Context, method string, appointment *domain.Appointment) error {
	appointment.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Update(ctx, appointment); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			return ErrAppointmentNotFound
		case errors.Is(err, appointmentRepo.ErrSlotTaken):
			return ErrSlotTaken
		}
		s.logger.Error("%s: failed to update appointment %s: %v", method, appointment.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return nil
}

// notify публикует событие; ошибка доставки не отменяет изменение записи
func (s *Service) notify(ctx context.Context, eventType notifications.EventType, appointment *domain.Appointment) {
	event := notifications.NewEvent(eventType, appointment, s.clock.Now())
	if err := s.notifier.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish %s for appointment %s: %v", eventType, appointment.ID, err)
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
