package bank_accounts

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/visa-booking-service/internal/api/handlers"
	"github.com/m04kA/visa-booking-service/internal/service/catalog"
)

const (
	msgInvalidRequest   = "invalid request body"
	msgInvalidAccountID = "invalid bank account id"
	msgInvalidFields    = "bankName and accountNumber must not be empty"
	msgNotFound         = "bank account not found"
	msgDeactivated      = "bank account deactivated"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleListPublic GET /api/v1/bank-accounts
// Только активные счета
func (h *Handler) HandleListPublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// HandleListAdmin GET /api/v1/admin/bank-accounts
func (h *Handler) HandleListAdmin(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// HandleCreate POST /api/v1/admin/bank-accounts
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateBankAccountRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bank-accounts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	created, err := h.service.CreateBankAccount(r.Context(), req.ToServiceRequest())
	if err != nil {
		h.respondError(w, "POST /admin/bank-accounts", err)
		return
	}

	h.logger.Info("POST /admin/bank-accounts - Account created: id=%s", created.ID)
	handlers.RespondJSON(w, http.StatusCreated, created)
}

// HandleUpdate PATCH /api/v1/admin/bank-accounts/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	var req UpdateBankAccountRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bank-accounts/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	updated, err := h.service.UpdateBankAccount(r.Context(), id, req.ToServiceRequest())
	if err != nil {
		h.respondError(w, "PATCH /admin/bank-accounts/{id}", err)
		return
	}

	h.logger.Info("PATCH /admin/bank-accounts/{id} - Account updated: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, updated)
}

// HandleDelete DELETE /api/v1/admin/bank-accounts/{id}
// Счет деактивируется, записи продолжают на него ссылаться
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeactivateBankAccount(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/bank-accounts/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/bank-accounts/{id} - Account deactivated: id=%s", id)
	handlers.RespondMessage(w, http.StatusOK, msgDeactivated)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	accounts, err := h.service.ListBankAccounts(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("GET bank accounts - Failed to list accounts: active_only=%t, error=%v", activeOnly, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, accounts)
}

func (h *Handler) accountID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAccountID)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Validation failed: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidFields)

	case errors.Is(err, catalog.ErrBankAccountNotFound):
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("%s - Failed to change bank account: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
