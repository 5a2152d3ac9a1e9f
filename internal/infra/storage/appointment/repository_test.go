package appointment

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/visa-booking-service/internal/domain"
	"github.com/m04kA/visa-booking-service/pkg/ptr"
)

func TestListQuery_Filters(t *testing.T) {
	month := domain.Month{Year: 2025, Month: time.February}

	query, args, err := listQuery(domain.AppointmentsFilter{
		Status:   ptr.Ptr(domain.StatusPending),
		Month:    &month,
		Search:   "50%_off",
		OrderBy:  domain.OrderByDate,
		OrderAsc: true,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "a.status = $1")
	assert.Contains(t, query, "a.appointment_date >= $2")
	assert.Contains(t, query, "a.appointment_date <= $3")
	assert.Contains(t, query, "a.first_name ILIKE $4")
	assert.Contains(t, query, "a.short_id ILIKE $7")
	assert.Contains(t, query, "ORDER BY a.appointment_date ASC, a.appointment_hour ASC")

	require.Len(t, args, 7)
	assert.Equal(t, domain.StatusPending, args[0])
	assert.Equal(t, "2025-02-01", args[1])
	assert.Equal(t, "2025-02-28", args[2])
	assert.Equal(t, `%50\%\_off%`, args[3])
}

func TestListQuery_DateBeatsMonth(t *testing.T) {
	date := domain.NewDate(2025, time.March, 4)
	month := domain.MonthOf(date)

	query, args, err := listQuery(domain.AppointmentsFilter{Date: &date, Month: &month}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "a.appointment_date = $1")
	assert.NotContains(t, query, ">=")
	assert.Equal(t, []interface{}{"2025-03-04"}, args)
	assert.Contains(t, query, "ORDER BY a.created_at DESC")
}

func TestIsSlotConflict(t *testing.T) {
	slotErr := &pq.Error{Code: uniqueViolation, Constraint: slotIndex}

	assert.True(t, IsSlotConflict(slotErr))
	assert.True(t, IsSlotConflict(fmt.Errorf("wrapped: %w", slotErr)))
	assert.False(t, IsSlotConflict(&pq.Error{Code: uniqueViolation, Constraint: "appointments_short_id_key"}))
	assert.False(t, IsSlotConflict(errors.New("other")))
	assert.False(t, IsSlotConflict(nil))
}

func TestIsSlotConflict_SerializationFailure(t *testing.T) {
	serErr := &pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies among transactions"}

	assert.True(t, IsSlotConflict(serErr))
	assert.True(t, IsSlotConflict(fmt.Errorf("txmanager: commit: %w", serErr)))
	assert.False(t, IsSlotConflict(&pq.Error{Code: "40P01"}))
}
