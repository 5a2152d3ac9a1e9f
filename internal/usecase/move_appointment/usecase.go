package move_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/visa-booking-service/internal/domain"
	"github.com/m04kA/visa-booking-service/internal/infra/messaging/notifications"
	appointmentRepo "github.com/m04kA/visa-booking-service/internal/infra/storage/appointment"
	"github.com/m04kA/visa-booking-service/internal/service/availability"
)

// UseCase use case для переноса записи администратором
type UseCase struct {
	appointmentRepo AppointmentRepository
	slots           SlotsChecker
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	slots SlotsChecker,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		slots:           slots,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute переносит запись на другой слот
// Проверка использует тот же калькулятор слотов, что и публичная форма, исключая саму запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MoveAppointment: id=%s, date=%s, hour=%d", req.AppointmentID, req.NewDate, req.NewHour)

	// 1. Валидация входных данных
	date, hour, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("MoveAppointment: validation failed: %v", err)
		return nil, err
	}

	var (
		result   *domain.Appointment
		previous notifications.Slot
	)

	// 2. Проверка слота и обновление в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем запись
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("MoveAppointment: failed to get appointment %s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Проведенные записи не переносятся
		if !appointment.CanBeReviewed() {
			return ErrAlreadyDone
		}

		// 2.3. Проверяем новый слот, собственный час записи не считается занятым
		if err := uc.checkHour(txCtx, date, hour, appointment); err != nil {
			return err
		}

		previous = notifications.SlotOf(appointment.Date, appointment.Hour)

		appointment.Date = date
		appointment.Hour = hour
		if req.AdminNote != nil {
			if note := strings.TrimSpace(*req.AdminNote); note != "" {
				appointment.AdminNote = &note
			}
		}
		appointment.UpdatedAt = uc.timeProvider.Now().UTC()

		// 2.4. Сохраняем
		if err := uc.appointmentRepo.Update(txCtx, appointment); err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("MoveAppointment: failed to update appointment %s: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = appointment
		return nil
	})
	if appointmentRepo.IsSlotConflict(err) {
		uc.logger.Warn("MoveAppointment: slot %s %d lost to a concurrent transaction: %v", date, hour, err)
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, err
	}

	// 3. Уведомляем клиента о новом слоте
	event := notifications.NewEvent(notifications.EventMoved, result, uc.timeProvider.Now())
	event.PreviousSlot = &previous
	if err := uc.notifier.Publish(ctx, event); err != nil {
		uc.logger.Warn("MoveAppointment: failed to publish notification for %s: %v", result.ID, err)
	}

	uc.logger.Info("MoveAppointment: appointment %s moved from %s %d to %s %d",
		result.ID, previous.Date, previous.Hour, result.Date, result.Hour)

	return &Response{
		Appointment:  result,
		PreviousDate: previous.Date,
		PreviousHour: previous.Hour,
	}, nil
}

// checkHour переводит ошибки калькулятора слотов в ошибки use case
func (uc *UseCase) checkHour(ctx context.Context, date domain.Date, hour domain.HourSlot, appointment *domain.Appointment) error {
	err := uc.slots.CheckHour(ctx, date, hour, &appointment.ID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, availability.ErrDateInPast):
		return ErrDateInPast
	case errors.Is(err, availability.ErrDayBlocked):
		return ErrDayBlocked
	case errors.Is(err, availability.ErrHourBlocked):
		return ErrHourBlocked
	case errors.Is(err, availability.ErrHourPassed):
		return ErrHourPassed
	case errors.Is(err, availability.ErrHourTaken):
		return ErrSlotTaken
	default:
		uc.logger.Error("MoveAppointment: failed to check slot %s %d: %v", date, hour, err)
		return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
	}
}
