package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m04kA/visa-booking-service/internal/integrations/bookingapi"
	"github.com/m04kA/visa-booking-service/internal/service/availability"
	"github.com/m04kA/visa-booking-service/pkg/logger"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// options глобальные флаги
type options struct {
	server    string
	token     string
	tokenFile string
	timeout   time.Duration
	logLevel  string
}

// app зависимости команд, собираются перед запуском команды
type app struct {
	client *bookingapi.Client
	store  *availability.Store
	editor *availability.Editor
	out    io.Writer
	opts   *options
	log    Logger
}

func newApp(opts *options, out io.Writer) *app {
	log := logger.NewConsole(opts.logLevel)

	client := bookingapi.NewClient(opts.server, opts.timeout, bookingapi.DefaultBreakerSettings(), log)
	if token := opts.resolveToken(); token != "" {
		client.SetToken(token)
	}

	// Тот же Store и Editor, что и на сервере, источник правил - REST API
	store := availability.NewStore(client, log)
	editor := availability.NewEditor(client, store, log)

	return &app{
		client: client,
		store:  store,
		editor: editor,
		out:    out,
		opts:   opts,
		log:    log,
	}
}

// loadRules загружает снимок правил с сервера
func (a *app) loadRules(ctx context.Context) error {
	if err := a.store.Load(ctx); err != nil {
		return fmt.Errorf("failed to load availability rules: %w", err)
	}
	return nil
}

func (a *app) printf(format string, v ...interface{}) {
	fmt.Fprintf(a.out, format, v...)
}

// resolveToken: флаг или переменная окружения, иначе файл после login
func (o *options) resolveToken() string {
	if o.token != "" {
		return o.token
	}
	data, err := os.ReadFile(o.tokenFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (o *options) saveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(o.tokenFile), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(o.tokenFile, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".availctl-token"
	}
	return filepath.Join(dir, "availctl", "token")
}
