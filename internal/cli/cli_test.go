package cli

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// fakeServer минимальная копия admin API правил
type fakeServer struct {
	mu      sync.Mutex
	rules   []map[string]interface{}
	deleted []string
	posted  []map[string]interface{}
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == "/api/v1/sign-in":
		_, _ = io.WriteString(w, `{"accessToken":"jwt-cli","tokenType":"Bearer","expiresAt":"2025-12-20T10:00:00Z"}`)

	case r.Header.Get("Authorization") != "Bearer jwt-cli":
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"unauthorized"}`)

	case r.Method == http.MethodGet && r.URL.Path == "/api/v1/admin/availability-rules":
		_ = json.NewEncoder(w).Encode(f.rules)

	case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/api/v1/admin/availability-rules/"):
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["id"] = len(f.posted) + 100
		f.posted = append(f.posted, body)
		_ = json.NewEncoder(w).Encode(body)

	case r.Method == http.MethodDelete:
		f.deleted = append(f.deleted, strings.TrimPrefix(r.URL.Path, "/api/v1/admin/availability-rules/specific-date/"))
		_, _ = io.WriteString(w, `{"message":"date rule removed"}`)

	case r.URL.Path == "/api/v1/appointments/available-hours":
		_, _ = io.WriteString(w, `{"date":"2025-12-24","availableHours":[9]}`)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func run(t *testing.T, srv *httptest.Server, tokenFile string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetArgs(append([]string{"--server", srv.URL, "--token-file", tokenFile, "--token", ""}, args...))
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func newFake(t *testing.T, rules ...map[string]interface{}) (*fakeServer, *httptest.Server, string) {
	t.Helper()
	fake := &fakeServer{rules: rules}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	tokenFile := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte("jwt-cli\n"), 0o600))
	return fake, srv, tokenFile
}

func TestLogin_SavesToken(t *testing.T) {
	_, srv, _ := newFake(t)
	tokenFile := filepath.Join(t.TempDir(), "nested", "token")

	out, err := run(t, srv, tokenFile, "login", "--email", "admin@example.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as admin@example.com")

	data, err := os.ReadFile(tokenFile)
	require.NoError(t, err)
	assert.Equal(t, "jwt-cli\n", string(data))
}

func TestToggleHour_AddsHourToExistingWeekdayRule(t *testing.T) {
	fake, srv, tokenFile := newFake(t, map[string]interface{}{
		"id": 1, "dayOfWeek": 1, "unavailableHours": []int{10}, "allDay": false,
	})

	out, err := run(t, srv, tokenFile, "toggle-hour", "--weekday", "monday", "--hour", "9:00 am")
	require.NoError(t, err)

	require.Len(t, fake.posted, 1)
	assert.EqualValues(t, 1, fake.posted[0]["dayOfWeek"])
	assert.Equal(t, []interface{}{float64(9), float64(10)}, fake.posted[0]["unavailableHours"])
	assert.Contains(t, out, "weekday Monday: 9:00 AM, 10:00 AM")
}

func TestToggleHour_LastHourOfDateDeletesRule(t *testing.T) {
	fake, srv, tokenFile := newFake(t, map[string]interface{}{
		"id": 2, "specificDate": "2025-12-24", "unavailableHours": []int{14}, "allDay": false,
	})

	_, err := run(t, srv, tokenFile, "toggle-hour", "--date", "2025-12-24", "--hour", "14")
	require.NoError(t, err)

	assert.Empty(t, fake.posted)
	assert.Equal(t, []string{"2025-12-24"}, fake.deleted)
}

func TestToggleAllDay_ClearsHours(t *testing.T) {
	fake, srv, tokenFile := newFake(t, map[string]interface{}{
		"id": 3, "dayOfWeek": 0, "unavailableHours": []int{9, 10}, "allDay": false,
	})

	_, err := run(t, srv, tokenFile, "toggle-all-day", "--weekday", "0")
	require.NoError(t, err)

	require.Len(t, fake.posted, 1)
	assert.Equal(t, true, fake.posted[0]["allDay"])
	assert.Equal(t, []interface{}{}, fake.posted[0]["unavailableHours"])
}

func TestToggle_RequiresExactlyOneKey(t *testing.T) {
	_, srv, tokenFile := newFake(t)

	_, err := run(t, srv, tokenFile, "toggle-all-day")
	assert.Error(t, err)

	_, err = run(t, srv, tokenFile, "toggle-all-day", "--weekday", "1", "--date", "2025-12-24")
	assert.Error(t, err)
}

func TestUnblock(t *testing.T) {
	fake, srv, tokenFile := newFake(t)

	out, err := run(t, srv, tokenFile, "unblock", "--date", "2025-12-24")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12-24"}, fake.deleted)
	assert.Contains(t, out, "date rule removed")
}

func TestRules_PrintsWeekdaysAndDates(t *testing.T) {
	_, srv, tokenFile := newFake(t,
		map[string]interface{}{"id": 1, "dayOfWeek": 0, "unavailableHours": []int{}, "allDay": true},
		map[string]interface{}{"id": 2, "specificDate": "2025-12-24", "unavailableHours": []int{10, 11}, "allDay": false},
	)

	out, err := run(t, srv, tokenFile, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "Sunday")
	assert.Contains(t, out, "all day")
	assert.Contains(t, out, "2025-12-24 (Wed)")
	assert.Contains(t, out, "10:00 AM, 11:00 AM")
}

func TestHours_MarksGrid(t *testing.T) {
	_, srv, tokenFile := newFake(t,
		map[string]interface{}{"id": 2, "specificDate": "2025-12-24", "unavailableHours": []int{10}, "allDay": false},
	)

	out, err := run(t, srv, tokenFile, "hours", "--date", "2025-12-24")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 11)
	assert.Contains(t, lines[0], "2025-12-24 (Wednesday)")
	assert.Contains(t, lines[1+9], "open")
	assert.Contains(t, lines[1+10], "blocked")
	assert.Contains(t, lines[1+11], "booked or passed")
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	_, srv, _ := newFake(t)

	_, err := run(t, srv, filepath.Join(t.TempDir(), "missing"), "rules")
	assert.Error(t, err)
}

func TestParseWeekday(t *testing.T) {
	for in, want := range map[string]time.Weekday{
		"0": time.Sunday, "6": time.Saturday, "mon": time.Monday, "Friday": time.Friday,
	} {
		got, err := parseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"7", "-1", "mo", "funday"} {
		_, err := parseWeekday(in)
		assert.Error(t, err, in)
	}
}

func TestParseHour(t *testing.T) {
	h, err := parseHour("15")
	require.NoError(t, err)
	assert.Equal(t, domain.HourSlot(15), h)

	h, err = parseHour("12:00 am")
	require.NoError(t, err)
	assert.Equal(t, domain.HourSlot(0), h)

	_, err = parseHour("24")
	assert.ErrorIs(t, err, domain.ErrInvalidHour)

	_, err = parseHour("noon")
	assert.Error(t, err)
}
