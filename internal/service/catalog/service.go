package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/domain"
	catalogRepo "github.com/m04kA/visa-booking-service/internal/infra/storage/catalog"
	"github.com/m04kA/visa-booking-service/internal/service/catalog/models"
	"github.com/m04kA/visa-booking-service/pkg/ptr"
)

type Service struct {
	repo   Repository
	logger Logger
}

func NewService(repo Repository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListAppointmentTypes возвращает типы консультаций; клиентам только видимые
func (s *Service) ListAppointmentTypes(ctx context.Context, visibleOnly bool) ([]*models.AppointmentTypeResponse, error) {
	list, err := s.repo.ListAppointmentTypes(ctx, visibleOnly)
	if err != nil {
		s.logger.Error("ListAppointmentTypes: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAppointmentTypes - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainAppointmentTypes(list), nil
}

// CreateAppointmentType создает тип консультации
func (s *Service) CreateAppointmentType(ctx context.Context, req *models.CreateAppointmentTypeRequest) (*models.AppointmentTypeResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxAppointmentTypeName {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxAppointmentTypeName)
	}

	s.logger.Info("Creating appointment type: name=%s", name)

	created, err := s.repo.CreateAppointmentType(ctx, &domain.AppointmentType{Name: name, Visible: req.Visible})
	if err != nil {
		if errors.Is(err, catalogRepo.ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		s.logger.Error("CreateAppointmentType: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateAppointmentType - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Appointment type created: id=%d", created.ID)
	return models.FromDomainAppointmentType(created), nil
}

// SetAppointmentTypeVisibility скрывает или показывает тип клиентам
func (s *Service) SetAppointmentTypeVisibility(ctx context.Context, id int64, visible bool) error {
	s.logger.Info("Setting appointment type visibility: id=%d, visible=%t", id, visible)

	if err := s.repo.SetAppointmentTypeVisibility(ctx, id, visible); err != nil {
		if errors.Is(err, catalogRepo.ErrAppointmentTypeNotFound) {
			return ErrAppointmentTypeNotFound
		}
		s.logger.Error("SetAppointmentTypeVisibility: repository error: %v", err)
		return fmt.Errorf("%w: SetAppointmentTypeVisibility - repository error: %v", ErrInternal, err)
	}
	return nil
}

// ListBankAccounts возвращает банковские счета; клиентам только активные
func (s *Service) ListBankAccounts(ctx context.Context, activeOnly bool) ([]*models.BankAccountResponse, error) {
	list, err := s.repo.ListBankAccounts(ctx, activeOnly)
	if err != nil {
		s.logger.Error("ListBankAccounts: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBankAccounts - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBankAccounts(list), nil
}

// CreateBankAccount создает активный банковский счет
func (s *Service) CreateBankAccount(ctx context.Context, req *models.CreateBankAccountRequest) (*models.BankAccountResponse, error) {
	bankName := strings.TrimSpace(req.BankName)
	accountNumber := strings.TrimSpace(req.AccountNumber)
	if bankName == "" || accountNumber == "" {
		return nil, fmt.Errorf("%w: bank name and account number are required", ErrInvalidInput)
	}

	account := &domain.BankAccount{
		ID:            uuid.New(),
		BankName:      bankName,
		AccountNumber: accountNumber,
		IsActive:      true,
	}

	created, err := s.repo.CreateBankAccount(ctx, account)
	if err != nil {
		s.logger.Error("CreateBankAccount: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBankAccount - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Bank account created: id=%s, bank=%s", created.ID, created.BankName)
	return models.FromDomainBankAccount(created), nil
}

// UpdateBankAccount частично обновляет счет
func (s *Service) UpdateBankAccount(ctx context.Context, id uuid.UUID, req *models.UpdateBankAccountRequest) (*models.BankAccountResponse, error) {
	update := domain.BankAccountUpdate{IsActive: req.IsActive}

	if req.BankName != nil {
		v := strings.TrimSpace(*req.BankName)
		if v == "" {
			return nil, fmt.Errorf("%w: bank name cannot be empty", ErrInvalidInput)
		}
		update.BankName = &v
	}
	if req.AccountNumber != nil {
		v := strings.TrimSpace(*req.AccountNumber)
		if v == "" {
			return nil, fmt.Errorf("%w: account number cannot be empty", ErrInvalidInput)
		}
		update.AccountNumber = &v
	}
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	return s.updateBankAccount(ctx, "UpdateBankAccount", id, update)
}

// DeactivateBankAccount скрывает счет от клиентов; старые записи сохраняют ссылку на него
func (s *Service) DeactivateBankAccount(ctx context.Context, id uuid.UUID) error {
	_, err := s.updateBankAccount(ctx, "DeactivateBankAccount", id, domain.BankAccountUpdate{IsActive: ptr.Ptr(false)})
	return err
}

func (s *Service) updateBankAccount(ctx context.Context, method string, id uuid.UUID, update domain.BankAccountUpdate) (*models.BankAccountResponse, error) {
	s.logger.Info("%s: id=%s", method, id)

	updated, err := s.repo.UpdateBankAccount(ctx, id, update)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBankAccountNotFound) {
			return nil, ErrBankAccountNotFound
		}
		s.logger.Error("%s: repository error: %v", method, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return models.FromDomainBankAccount(updated), nil
}
