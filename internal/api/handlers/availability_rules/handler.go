package availability_rules

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/visa-booking-service/internal/api/handlers"
	"github.com/m04kA/visa-booking-service/internal/domain"
	"github.com/m04kA/visa-booking-service/internal/service/availability"
)

const (
	msgInvalidRequest = "invalid request body"
	msgInvalidWeekday = "dayOfWeek must be between 0 (Sunday) and 6 (Saturday)"
	msgInvalidDate    = "invalid date format, expected YYYY-MM-DD"
	msgInvalidToggle  = "exactly one of hour or allDay must be set"
	msgInvalidRule    = "invalid availability rule, hours must be between 0 and 23"
	msgEmptyRule      = "a date rule must block at least one hour or the whole day"
	msgEditInProgress = "another availability change is in progress, try again"
	msgAllDayRule     = "the whole day is blocked, turn off all-day before toggling single hours"
	msgRuleDeleted    = "date rule removed"
)

type Handler struct {
	source RuleSource
	editor RuleEditor
	logger Logger
}

func NewHandler(source RuleSource, editor RuleEditor, logger Logger) *Handler {
	return &Handler{
		source: source,
		editor: editor,
		logger: logger,
	}
}

// HandleList GET /api/v1/admin/availability-rules
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	rules, err := h.source.ListRules(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/availability-rules - Failed to list rules: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/availability-rules - Rules retrieved: count=%d", len(rules))
	handlers.RespondJSON(w, http.StatusOK, FromDomainRules(rules))
}

// HandleUpsertWeekday POST /api/v1/admin/availability-rules/weekday
func (h *Handler) HandleUpsertWeekday(w http.ResponseWriter, r *http.Request) {
	var req UpsertWeekdayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/availability-rules/weekday - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	rule, err := req.ToDomainRule()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	saved, err := h.editor.Upsert(r.Context(), rule)
	if err != nil {
		h.respondEditError(w, "POST /admin/availability-rules/weekday", err)
		return
	}

	h.logger.Info("POST /admin/availability-rules/weekday - Rule saved: %s", rule.Key)
	handlers.RespondJSON(w, http.StatusOK, FromDomainRule(saved))
}

// HandleUpsertSpecificDate POST /api/v1/admin/availability-rules/specific-date
func (h *Handler) HandleUpsertSpecificDate(w http.ResponseWriter, r *http.Request) {
	var req UpsertSpecificDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/availability-rules/specific-date - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	rule, err := req.ToDomainRule()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	saved, err := h.editor.Upsert(r.Context(), rule)
	if err != nil {
		h.respondEditError(w, "POST /admin/availability-rules/specific-date", err)
		return
	}

	h.logger.Info("POST /admin/availability-rules/specific-date - Rule saved: %s", rule.Key)
	handlers.RespondJSON(w, http.StatusOK, FromDomainRule(saved))
}

// HandleToggleWeekday POST /api/v1/admin/availability-rules/weekday/{day}/toggle
func (h *Handler) HandleToggleWeekday(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(mux.Vars(r)["day"])
	key := domain.WeekdayKey(time.Weekday(day))
	if err != nil || key.Validate() != nil {
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}
	h.toggle(w, r, "POST /admin/availability-rules/weekday/{day}/toggle", key)
}

// HandleToggleSpecificDate POST /api/v1/admin/availability-rules/specific-date/{date}/toggle
func (h *Handler) HandleToggleSpecificDate(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	h.toggle(w, r, "POST /admin/availability-rules/specific-date/{date}/toggle", domain.DateKey(date))
}

// HandleDeleteSpecificDate DELETE /api/v1/admin/availability-rules/specific-date/{date}
// Отсутствие правила не считается ошибкой
func (h *Handler) HandleDeleteSpecificDate(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.editor.DeleteSpecificDate(r.Context(), date); err != nil {
		h.respondEditError(w, "DELETE /admin/availability-rules/specific-date/{date}", err)
		return
	}

	h.logger.Info("DELETE /admin/availability-rules/specific-date/{date} - Rule removed: date=%s", date)
	handlers.RespondMessage(w, http.StatusOK, msgRuleDeleted)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, op string, key domain.RuleKey) {
	var req ToggleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}
	if err := req.Validate(); err != nil {
		handlers.RespondBadRequest(w, msgInvalidToggle)
		return
	}

	var (
		rule *domain.Rule
		err  error
	)
	if req.AllDay {
		rule, err = h.editor.ToggleAllDay(r.Context(), key)
	} else {
		rule, err = h.editor.ToggleHour(r.Context(), key, domain.HourSlot(*req.Hour))
	}
	if err != nil {
		h.respondEditError(w, op, err)
		return
	}

	h.logger.Info("%s - Rule toggled: %s, hours=%v, allDay=%t", op, key, rule.UnavailableHours, rule.AllDay)
	handlers.RespondJSON(w, http.StatusOK, FromDomainRule(rule))
}

func (h *Handler) respondEditError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, availability.ErrEditInProgress):
		h.logger.Warn("%s - Edit in progress", op)
		handlers.RespondConflict(w, msgEditInProgress)

	case errors.Is(err, availability.ErrAllDayRule):
		h.logger.Warn("%s - Hour toggle on all-day rule", op)
		handlers.RespondConflict(w, msgAllDayRule)

	case errors.Is(err, availability.ErrEmptyRule):
		handlers.RespondBadRequest(w, msgEmptyRule)

	case errors.Is(err, availability.ErrInvalidRule):
		h.logger.Warn("%s - Invalid rule: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRule)

	default:
		h.logger.Error("%s - Failed to save rule: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
