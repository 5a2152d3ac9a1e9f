package availability

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// Store держит текущий снимок правил доступности в памяти
// Снимок заменяется целиком, читатели никогда не видят частично загруженное состояние
type Store struct {
	source   RuleSource
	observer ReloadObserver
	logger   Logger

	snapshot atomic.Pointer[domain.RuleSet]

	// started номер последней начатой загрузки, applied - загрузки, чей результат в снимке
	mu      sync.Mutex
	started uint64
	applied uint64
}

// NewStore создает хранилище с пустым снимком
func NewStore(source RuleSource, logger Logger) *Store {
	s := &Store{
		source: source,
		logger: logger,
	}
	s.snapshot.Store(domain.EmptyRuleSet())
	return s
}

// WithObserver подключает наблюдателя перезагрузок
func (s *Store) WithObserver(observer ReloadObserver) *Store {
	s.observer = observer
	return s
}

// Snapshot возвращает текущий снимок, никогда nil
func (s *Store) Snapshot() *domain.RuleSet {
	return s.snapshot.Load()
}

// Load перечитывает все правила и атомарно заменяет снимок
// При ошибке источника предыдущий снимок остается в силе
// Результат загрузки, начатой раньше уже примененной, отбрасывается
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.started++
	seq := s.started
	s.mu.Unlock()

	rules, err := s.source.ListRules(ctx)
	if err != nil {
		s.logger.Error("RuleStore: failed to load rules, keeping previous snapshot: %v", err)
		s.observe(fmt.Errorf("%w: %v", ErrLoadRules, err), nil)
		return fmt.Errorf("%w: %v", ErrLoadRules, err)
	}

	s.warnDuplicates(rules)

	rs := domain.NewRuleSet(rules)

	s.mu.Lock()
	if seq < s.applied {
		s.mu.Unlock()
		s.logger.Info("RuleStore: discarded stale load #%d, snapshot already has load #%d", seq, s.applied)
		return nil
	}
	s.applied = seq
	s.snapshot.Store(rs)
	s.mu.Unlock()

	s.observe(nil, rs)

	s.logger.Info("RuleStore: loaded %d weekday rules and %d specific-date rules",
		len(rs.Weekdays()), len(rs.SpecificDates()))
	return nil
}

func (s *Store) observe(err error, rs *domain.RuleSet) {
	if s.observer == nil {
		return
	}
	if err != nil {
		s.observer.ObserveRuleStoreReload(err, 0, 0)
		return
	}
	s.observer.ObserveRuleStoreReload(nil, len(rs.Weekdays()), len(rs.SpecificDates()))
}

// warnDuplicates логирует повторяющиеся ключи - в снимок попадает последнее правило
func (s *Store) warnDuplicates(rules []domain.Rule) {
	seen := make(map[domain.RuleKey]int, len(rules))
	for _, r := range rules {
		seen[r.Key]++
	}
	for key, n := range seen {
		if n > 1 {
			s.logger.Warn("RuleStore: %d rules for %s, the last one wins", n, key)
		}
	}
}
