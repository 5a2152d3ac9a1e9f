package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/domain"
	"github.com/m04kA/visa-booking-service/internal/infra/messaging/notifications"
	appointmentRepo "github.com/m04kA/visa-booking-service/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/visa-booking-service/internal/infra/storage/catalog"
	"github.com/m04kA/visa-booking-service/internal/infra/storage/receipts"
	"github.com/m04kA/visa-booking-service/internal/service/availability"
)

// UseCase use case для создания записи клиентом
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	slots           SlotsChecker
	receipts        ReceiptStorage
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	slots SlotsChecker,
	receipts ReceiptStorage,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		slots:           slots,
		receipts:        receipts,
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

// Execute выполняет use case создания записи
// Проверка слота и вставка выполняются в сериализуемой транзакции,
// повторная запись на тот же час дополнительно отсекается уникальным индексом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: email=%s, date=%s, hour=%d, type=%d",
		req.Email, req.AppointmentDate, req.AppointmentHour, req.AppointmentTypeID)

	// 1. Валидация входных данных
	in, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем тип консультации
	apptType, err := uc.catalogRepo.GetAppointmentType(ctx, req.AppointmentTypeID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrAppointmentTypeNotFound) {
			uc.logger.Warn("CreateAppointment: appointment type id=%d not found", req.AppointmentTypeID)
			return nil, ErrAppointmentTypeNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get appointment type id=%d: %v", req.AppointmentTypeID, err)
		return nil, fmt.Errorf("%w: failed to get appointment type: %v", ErrInternal, err)
	}
	if !apptType.Visible {
		uc.logger.Warn("CreateAppointment: appointment type id=%d is hidden", apptType.ID)
		return nil, ErrAppointmentTypeHidden
	}

	// 3. Проверяем банковский счет, если указан
	if in.bankAccountID != nil {
		account, err := uc.catalogRepo.GetBankAccount(ctx, *in.bankAccountID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrBankAccountNotFound) {
				return nil, ErrBankAccountNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get bank account %s: %v", in.bankAccountID, err)
			return nil, fmt.Errorf("%w: failed to get bank account: %v", ErrInternal, err)
		}
		if !account.IsActive {
			uc.logger.Warn("CreateAppointment: bank account %s is inactive", account.ID)
			return nil, ErrBankAccountNotFound
		}
	}

	// 4. Проверяем чек
	appointmentID := uuid.New()
	receiptKey, contentType, err := receipts.Key(appointmentID, req.Receipt.Filename)
	if err != nil {
		uc.logger.Warn("CreateAppointment: unsupported receipt %q", req.Receipt.Filename)
		return nil, ErrUnsupportedReceipt
	}
	if err := validateReceiptSize(req.Receipt); err != nil {
		return nil, err
	}

	// 5. Предварительная проверка слота, чтобы не загружать файл зря
	if err := uc.checkHour(ctx, in); err != nil {
		return nil, err
	}

	// 6. Загружаем чек в хранилище
	if err := uc.receipts.Upload(ctx, receiptKey, req.Receipt.Body, req.Receipt.Size, contentType); err != nil {
		uc.logger.Error("CreateAppointment: failed to upload receipt: %v", err)
		return nil, fmt.Errorf("%w: failed to upload receipt: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now().UTC()
	appointment := &domain.Appointment{
		ID:                  appointmentID,
		ShortID:             domain.ShortIDOf(appointmentID),
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		PhoneNumber:         in.phone,
		Date:                in.date,
		Hour:                in.hour,
		AppointmentTypeID:   apptType.ID,
		AppointmentTypeName: apptType.Name,
		BankAccountID:       in.bankAccountID,
		ReceiptKey:          receiptKey,
		Status:              domain.StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	var result *domain.Appointment

	// 7. Повторная проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.checkHour(txCtx, in); err != nil {
			return err
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: slot %s %d taken concurrently", in.date, in.hour)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if appointmentRepo.IsSlotConflict(err) {
		uc.logger.Warn("CreateAppointment: slot %s %d lost to a concurrent transaction: %v", in.date, in.hour, err)
		err = ErrSlotTaken
	}
	if err != nil {
		// 7.1. Запись не создана - удаляем загруженный чек
		if rmErr := uc.receipts.Remove(ctx, receiptKey); rmErr != nil {
			uc.logger.Warn("CreateAppointment: failed to remove orphan receipt %s: %v", receiptKey, rmErr)
		}
		return nil, err
	}

	// 8. Уведомляем клиента; ошибка отправки не отменяет запись
	result.AppointmentTypeName = apptType.Name
	event := notifications.NewEvent(notifications.EventCreated, result, now)
	if err := uc.notifier.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish notification for %s: %v", result.ID, err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s, short=%s", result.ID, result.ShortID)

	return &Response{
		ID:        result.ID.String(),
		ShortID:   result.ShortID,
		Status:    string(result.Status),
		Date:      result.Date.String(),
		Hour:      int(result.Hour),
		CreatedAt: result.CreatedAt,
	}, nil
}

// checkHour переводит ошибки калькулятора слотов в ошибки use case
func (uc *UseCase) checkHour(ctx context.Context, in *validatedRequest) error {
	err := uc.slots.CheckHour(ctx, in.date, in.hour, nil)
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
		uc.logger.Error("CreateAppointment: failed to check slot %s %d: %v", in.date, in.hour, err)
		return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
	}
}
