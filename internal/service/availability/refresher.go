package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// reloadTimeout ограничение одной фоновой перезагрузки
const reloadTimeout = 30 * time.Second

// Refresher периодически перечитывает правила в Store по cron-расписанию
// Подхватывает изменения, сделанные в обход Editor (другой экземпляр, ручной SQL)
type Refresher struct {
	store  *Store
	spec   string
	logger Logger

	mu     sync.Mutex
	cron   *cron.Cron
	cancel context.CancelFunc
}

// NewRefresher создает планировщик; spec - cron-выражение или "@every 1m"
func NewRefresher(store *Store, spec string, logger Logger) *Refresher {
	return &Refresher{
		store:  store,
		spec:   spec,
		logger: logger,
	}
}

// Start запускает расписание; ошибка только при некорректном spec
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron != nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(r.spec, func() { r.runOnce(runCtx) }); err != nil {
		cancel()
		return fmt.Errorf("availability: invalid refresh schedule %q: %w", r.spec, err)
	}

	c.Start()
	r.cron, r.cancel = c, cancel
	r.logger.Info("RuleRefresher: started with schedule %s", r.spec)
	return nil
}

// Stop останавливает расписание и ждет завершения текущей перезагрузки
func (r *Refresher) Stop() {
	r.mu.Lock()
	c, cancel := r.cron, r.cancel
	r.cron, r.cancel = nil, nil
	r.mu.Unlock()

	if c == nil {
		return
	}
	cancel()
	<-c.Stop().Done()
	r.logger.Info("RuleRefresher: stopped")
}

func (r *Refresher) runOnce(ctx context.Context) {
	loadCtx, cancel := context.WithTimeout(ctx, reloadTimeout)
	defer cancel()

	// Store сам логирует ошибку и сохраняет предыдущий снимок
	_ = r.store.Load(loadCtx)
}
