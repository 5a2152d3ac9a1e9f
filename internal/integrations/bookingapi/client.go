package bookingapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

const apiPrefix = "/api/v1"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BreakerSettings настройки circuit breaker
type BreakerSettings struct {
	MaxRequests      uint32        // Пробных запросов в полуоткрытом состоянии
	Interval         time.Duration // Период сброса счетчиков в закрытом состоянии
	Timeout          time.Duration // Время в открытом состоянии
	FailureThreshold uint32        // Подряд неудачных запросов до открытия
}

// DefaultBreakerSettings настройки по умолчанию
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 3,
	}
}

type response struct {
	status int
	body   []byte
}

// Client клиент REST API сервиса записи
// Реализует RuleSource и RuleWriter для редактора правил
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*response]
	log        Logger

	mu    sync.RWMutex
	token string
}

// NewClient создает клиент; транспортные ошибки и ответы 5xx считаются неудачами circuit breaker
func NewClient(baseURL string, timeout time.Duration, breaker BreakerSettings, log Logger) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
		Name:        "bookingapi",
		MaxRequests: breaker.MaxRequests,
		Interval:    breaker.Interval,
		Timeout:     breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breaker.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})
	return c
}

// SetToken задает токен администратора для запросов /admin
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// SignIn получает токен администратора и сохраняет его в клиенте
func (c *Client) SignIn(ctx context.Context, email, password string) (*Token, error) {
	var token Token
	if err := c.call(ctx, http.MethodPost, "/sign-in", signInRequest{Email: email, Password: password}, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", ErrInvalidResponse)
	}

	c.SetToken(token.AccessToken)
	c.log.Info("Signed in as %s, token expires at %s", email, token.ExpiresAt.Format(time.RFC3339))
	return &token, nil
}

// ListRules загружает все правила доступности
func (c *Client) ListRules(ctx context.Context) ([]domain.Rule, error) {
	var payload []rule
	if err := c.call(ctx, http.MethodGet, "/admin/availability-rules", nil, &payload); err != nil {
		return nil, err
	}

	rules := make([]domain.Rule, 0, len(payload))
	for _, r := range payload {
		converted, err := r.toDomain()
		if err != nil {
			// Битое правило не должно скрывать остальные
			c.log.Warn("Skipping malformed rule id=%d: %v", r.ID, err)
			continue
		}
		rules = append(rules, converted)
	}
	return rules, nil
}

// GetByKey ищет правило в полном списке; отдельного ресурса у правила в API нет
func (c *Client) GetByKey(ctx context.Context, key domain.RuleKey) (*domain.Rule, error) {
	rules, err := c.ListRules(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range rules {
		if r.Key == key {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

// UpsertWeekdayRule сохраняет правило на день недели
func (c *Client) UpsertWeekdayRule(ctx context.Context, r domain.Rule) (*domain.Rule, error) {
	return c.upsert(ctx, "/admin/availability-rules/weekday", r)
}

// UpsertSpecificDateRule сохраняет правило на дату
func (c *Client) UpsertSpecificDateRule(ctx context.Context, r domain.Rule) (*domain.Rule, error) {
	return c.upsert(ctx, "/admin/availability-rules/specific-date", r)
}

// DeleteSpecificDateRule удаляет правило на дату; 404 считается успехом
func (c *Client) DeleteSpecificDateRule(ctx context.Context, date domain.Date) error {
	err := c.call(ctx, http.MethodDelete, "/admin/availability-rules/specific-date/"+date.String(), nil, nil)
	if errors.Is(err, errNotFound) {
		return nil
	}
	return err
}

// OpenHours часы даты, свободные для записи клиентом (с учетом занятых)
func (c *Client) OpenHours(ctx context.Context, date domain.Date) ([]domain.HourSlot, error) {
	var payload availableHoursResponse
	path := "/appointments/available-hours?date=" + url.QueryEscape(date.String())
	if err := c.call(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}

	hours := make([]domain.HourSlot, 0, len(payload.AvailableHours))
	for _, h := range payload.AvailableHours {
		hours = append(hours, domain.HourSlot(h))
	}
	return hours, nil
}

func (c *Client) upsert(ctx context.Context, path string, r domain.Rule) (*domain.Rule, error) {
	var payload rule
	if err := c.call(ctx, http.MethodPost, path, fromDomainRule(r), &payload); err != nil {
		return nil, err
	}

	saved, err := payload.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &saved, nil
}

// call выполняет запрос через circuit breaker и декодирует ответ в out
func (c *Client) call(ctx context.Context, method, path string, in, out interface{}) error {
	var body []byte
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		body = encoded
	}

	resp, err := c.breaker.Execute(func() (*response, error) {
		return c.do(ctx, method, path, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.log.Warn("%s %s - circuit breaker is open", method, path)
		}
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}

	switch {
	case resp.status >= 200 && resp.status < 300:
		// Продолжаем обработку
	case resp.status == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", errNotFound, errorMessage(resp.body))
	case resp.status == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, errorMessage(resp.body))
	default:
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.status, errorMessage(resp.body))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// do отправляет запрос; ошибка возвращается только для сбоев, которые должны открывать circuit breaker
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %v", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	if httpResp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("server error %d: %s", httpResp.StatusCode, errorMessage(respBody))
	}
	return &response{status: httpResp.StatusCode, body: respBody}, nil
}

func errorMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}
