package availability

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

type fakeRow struct {
	values []interface{}
	err    error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch target := d.(type) {
		case *int64:
			*target = r.values[i].(int64)
		case *bool:
			*target = r.values[i].(bool)
		case *sql.NullInt16:
			*target = r.values[i].(sql.NullInt16)
		case *sql.NullTime:
			*target = r.values[i].(sql.NullTime)
		case *pq.Int64Array:
			*target = r.values[i].(pq.Int64Array)
		default:
			return errors.New("unexpected scan target")
		}
	}
	return nil
}

func TestScanRule_SpecificDateDropsTime(t *testing.T) {
	stored := time.Date(2025, time.December, 24, 0, 0, 0, 0, time.UTC)
	row := fakeRow{values: []interface{}{
		int64(7),
		sql.NullInt16{},
		sql.NullTime{Time: stored, Valid: true},
		pq.Int64Array{11, 10},
		false,
		sql.NullTime{Time: stored, Valid: true},
		sql.NullTime{},
	}}

	rule, err := scanRule(row)
	require.NoError(t, err)

	assert.Equal(t, domain.DateKey(domain.NewDate(2025, time.December, 24)), rule.Key)
	assert.Equal(t, []domain.HourSlot{11, 10}, rule.UnavailableHours)
	assert.Equal(t, int64(7), rule.ID)
}

func TestScanRule_Weekday(t *testing.T) {
	row := fakeRow{values: []interface{}{
		int64(1),
		sql.NullInt16{Int16: 0, Valid: true},
		sql.NullTime{},
		pq.Int64Array{},
		true,
		sql.NullTime{},
		sql.NullTime{},
	}}

	rule, err := scanRule(row)
	require.NoError(t, err)

	assert.Equal(t, domain.WeekdayKey(time.Sunday), rule.Key)
	assert.True(t, rule.AllDay)
	assert.Empty(t, rule.UnavailableHours)
}

func TestScanRule_NoKey(t *testing.T) {
	row := fakeRow{values: []interface{}{
		int64(3), sql.NullInt16{}, sql.NullTime{}, pq.Int64Array{}, false, sql.NullTime{}, sql.NullTime{},
	}}

	_, err := scanRule(row)
	assert.Error(t, err)
}

type capturingExecutor struct {
	query string
	args  []interface{}
}

func (e *capturingExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.query, e.args = query, args
	return nil, nil
}

func (e *capturingExecutor) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("not implemented")
}

func (e *capturingExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func TestDeleteSpecificDateRule_Query(t *testing.T) {
	exec := &capturingExecutor{}
	repo := NewRepository(exec)

	err := repo.DeleteSpecificDateRule(context.Background(), domain.NewDate(2025, time.December, 24))
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM availability_rules WHERE specific_date = $1", exec.query)
	assert.Equal(t, []interface{}{"2025-12-24"}, exec.args)
}

func TestUpsert_RejectsWrongKind(t *testing.T) {
	repo := NewRepository(&capturingExecutor{})

	_, err := repo.UpsertWeekdayRule(context.Background(), domain.Rule{Key: domain.DateKey(domain.NewDate(2025, 1, 1))})
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = repo.UpsertSpecificDateRule(context.Background(), domain.Rule{Key: domain.WeekdayKey(time.Monday)})
	assert.ErrorIs(t, err, ErrInvalidRule)
}
