package get_available_hours

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubSlots struct {
	hours   []domain.HourSlot
	err     error
	date    domain.Date
	exclude *uuid.UUID
}

func (s *stubSlots) OpenHours(ctx context.Context, date domain.Date, exclude *uuid.UUID) ([]domain.HourSlot, error) {
	s.date = date
	s.exclude = exclude
	return s.hours, s.err
}

func TestUseCase_Execute(t *testing.T) {
	slots := &stubSlots{hours: []domain.HourSlot{0, 9, 12, 15}}
	uc := NewUseCase(slots, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-12-24T00:00:00Z"})
	require.NoError(t, err)

	assert.Equal(t, "2025-12-24", resp.Date)
	assert.Equal(t, []int{0, 9, 12, 15}, resp.AvailableHours)
	assert.Nil(t, slots.exclude)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := NewUseCase(&stubSlots{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: "24/12/2025"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	failing := NewUseCase(&stubSlots{err: errors.New("db down")}, nopLogger{})
	_, err = failing.Execute(context.Background(), &Request{Date: "2025-12-24"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_Execute_EmptyDayIsNotNull(t *testing.T) {
	uc := NewUseCase(&stubSlots{hours: []domain.HourSlot{}}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-12-25"})
	require.NoError(t, err)
	assert.NotNil(t, resp.AvailableHours)
	assert.Empty(t, resp.AvailableHours)
}
