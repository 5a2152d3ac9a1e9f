package availability

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// memoryRules хранилище правил в памяти: одновременно RuleSource и RuleWriter
type memoryRules struct {
	mu      sync.Mutex
	rules   []domain.Rule
	listErr error
	lists   int
}

func (m *memoryRules) ListRules(ctx context.Context) ([]domain.Rule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domain.Rule(nil), m.rules...), nil
}

func (m *memoryRules) GetByKey(ctx context.Context, key domain.RuleKey) (*domain.Rule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rules {
		if r.Key == key {
			found := r
			found.UnavailableHours = append([]domain.HourSlot(nil), r.UnavailableHours...)
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memoryRules) upsert(rule domain.Rule) *domain.Rule {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rules {
		if r.Key == rule.Key {
			m.rules[i] = rule
			return &rule
		}
	}
	m.rules = append(m.rules, rule)
	return &rule
}

func (m *memoryRules) UpsertWeekdayRule(ctx context.Context, rule domain.Rule) (*domain.Rule, error) {
	return m.upsert(rule), nil
}

func (m *memoryRules) UpsertSpecificDateRule(ctx context.Context, rule domain.Rule) (*domain.Rule, error) {
	return m.upsert(rule), nil
}

func (m *memoryRules) DeleteSpecificDateRule(ctx context.Context, date domain.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.rules[:0]
	for _, r := range m.rules {
		if r.Key != domain.DateKey(date) {
			kept = append(kept, r)
		}
	}
	m.rules = kept
	return nil
}

// mockWriter RuleWriter на testify/mock
type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) GetByKey(ctx context.Context, key domain.RuleKey) (*domain.Rule, error) {
	args := m.Called(ctx, key)
	if r, ok := args.Get(0).(*domain.Rule); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWriter) UpsertWeekdayRule(ctx context.Context, rule domain.Rule) (*domain.Rule, error) {
	args := m.Called(ctx, rule)
	if r, ok := args.Get(0).(*domain.Rule); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWriter) UpsertSpecificDateRule(ctx context.Context, rule domain.Rule) (*domain.Rule, error) {
	args := m.Called(ctx, rule)
	if r, ok := args.Get(0).(*domain.Rule); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWriter) DeleteSpecificDateRule(ctx context.Context, date domain.Date) error {
	return m.Called(ctx, date).Error(0)
}

type fakeBookings struct {
	taken   map[domain.Date][]domain.HourSlot
	byID    map[uuid.UUID]domain.HourSlot
	err     error
	exclude *uuid.UUID
}

func (f *fakeBookings) GetTakenHours(ctx context.Context, date domain.Date, exclude *uuid.UUID) ([]domain.HourSlot, error) {
	f.exclude = exclude
	if f.err != nil {
		return nil, f.err
	}
	hours := append([]domain.HourSlot(nil), f.taken[date]...)
	if exclude != nil {
		if own, ok := f.byID[*exclude]; ok {
			filtered := hours[:0]
			for _, h := range hours {
				if h != own {
					filtered = append(filtered, h)
				}
			}
			hours = filtered
		}
	}
	return hours, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// gatedRules задерживает первую загрузку после arm: ответ снимается до ожидания,
// как у запроса, прочитавшего базу до чужой записи
type gatedRules struct {
	*memoryRules

	gateMu  sync.Mutex
	gate    chan struct{}
	entered chan struct{}
}

func (g *gatedRules) arm() (entered, release chan struct{}) {
	g.gateMu.Lock()
	defer g.gateMu.Unlock()
	g.gate = make(chan struct{})
	g.entered = make(chan struct{})
	return g.entered, g.gate
}

func (g *gatedRules) ListRules(ctx context.Context) ([]domain.Rule, error) {
	rules, err := g.memoryRules.ListRules(ctx)

	g.gateMu.Lock()
	gate, entered := g.gate, g.entered
	g.gate, g.entered = nil, nil
	g.gateMu.Unlock()

	if gate != nil {
		close(entered)
		<-gate
	}
	return rules, err
}

func loadedStore(rules ...domain.Rule) *Store {
	store := NewStore(&memoryRules{rules: rules}, nopLogger{})
	if err := store.Load(context.Background()); err != nil {
		panic(err)
	}
	return store
}
