package get_available_hours

import (
	"context"
	"fmt"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// UseCase use case для получения свободных часов даты
type UseCase struct {
	slots  SlotsChecker
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slots SlotsChecker, logger Logger) *UseCase {
	return &UseCase{
		slots:  slots,
		logger: logger,
	}
}

// Execute возвращает часы, на которые можно записаться; для прошедших дат список пуст
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableHours: validation failed: %v", err)
		return nil, err
	}

	// 2. Считаем свободные часы: правила, занятые записи, прошедшие часы сегодня
	hours, err := uc.slots.OpenHours(ctx, date, req.Exclude)
	if err != nil {
		uc.logger.Error("GetAvailableHours: failed to get open hours for %s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to get open hours: %v", ErrInternal, err)
	}

	// 3. Наружу уходят только числа 0-23, подписи строит клиент
	return &Response{
		Date:           date.String(),
		AvailableHours: toInts(hours),
	}, nil
}

func toInts(hours []domain.HourSlot) []int {
	out := make([]int, 0, len(hours))
	for _, h := range hours {
		out = append(out, int(h))
	}
	return out
}
