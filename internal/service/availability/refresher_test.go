package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

func TestRefresher_PicksUpExternalChanges(t *testing.T) {
	source := &memoryRules{}
	store := NewStore(source, nopLogger{})
	require.NoError(t, store.Load(context.Background()))

	refresher := NewRefresher(store, "@every 1s", nopLogger{})
	require.NoError(t, refresher.Start(context.Background()))
	defer refresher.Stop()

	// Правило добавлено мимо Editor
	source.upsert(domain.Rule{Key: domain.WeekdayKey(time.Sunday), AllDay: true})

	require.Eventually(t, func() bool {
		_, ok := store.Snapshot().Weekday(time.Sunday)
		return ok
	}, 5*time.Second, 100*time.Millisecond)
}

func TestRefresher_InvalidSchedule(t *testing.T) {
	refresher := NewRefresher(NewStore(&memoryRules{}, nopLogger{}), "every minute", nopLogger{})

	err := refresher.Start(context.Background())
	assert.Error(t, err)

	// Stop без успешного Start безопасен
	refresher.Stop()
}
