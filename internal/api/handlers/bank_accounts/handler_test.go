package bank_accounts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/visa-booking-service/internal/service/catalog"
	"github.com/m04kA/visa-booking-service/internal/service/catalog/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubCatalog struct {
	activeOnly  *bool
	update      *models.UpdateBankAccountRequest
	deactivated uuid.UUID
	err         error
}

func (s *stubCatalog) ListBankAccounts(ctx context.Context, activeOnly bool) ([]*models.BankAccountResponse, error) {
	s.activeOnly = &activeOnly
	return []*models.BankAccountResponse{}, s.err
}

func (s *stubCatalog) CreateBankAccount(ctx context.Context, req *models.CreateBankAccountRequest) (*models.BankAccountResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BankAccountResponse{ID: uuid.NewString(), BankName: req.BankName, AccountNumber: req.AccountNumber, IsActive: true}, nil
}

func (s *stubCatalog) UpdateBankAccount(ctx context.Context, id uuid.UUID, req *models.UpdateBankAccountRequest) (*models.BankAccountResponse, error) {
	s.update = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BankAccountResponse{ID: id.String()}, nil
}

func (s *stubCatalog) DeactivateBankAccount(ctx context.Context, id uuid.UUID) error {
	s.deactivated = id
	return s.err
}

const accountID = "9a4b4d8c-5a1e-4e8b-9d5c-2f0a1b3c4d5e"

func newRouter(svc CatalogService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	router := mux.NewRouter()
	router.HandleFunc("/bank-accounts", h.HandleListPublic).Methods(http.MethodGet)
	router.HandleFunc("/admin/bank-accounts", h.HandleListAdmin).Methods(http.MethodGet)
	router.HandleFunc("/admin/bank-accounts", h.HandleCreate).Methods(http.MethodPost)
	router.HandleFunc("/admin/bank-accounts/{id}", h.HandleUpdate).Methods(http.MethodPatch)
	router.HandleFunc("/admin/bank-accounts/{id}", h.HandleDelete).Methods(http.MethodDelete)
	return router
}

func do(router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestHandler_List(t *testing.T) {
	svc := &stubCatalog{}
	router := newRouter(svc)

	require.Equal(t, http.StatusOK, do(router, http.MethodGet, "/bank-accounts", "").Code)
	assert.True(t, *svc.activeOnly)

	require.Equal(t, http.StatusOK, do(router, http.MethodGet, "/admin/bank-accounts", "").Code)
	assert.False(t, *svc.activeOnly)
}

func TestHandler_HandleCreate(t *testing.T) {
	rec := do(newRouter(&stubCatalog{}), http.MethodPost, "/admin/bank-accounts", `{"bankName":"Banreservas","accountNumber":"960-123456-7"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bankName":"Banreservas"`)

	rec = do(newRouter(&stubCatalog{err: catalog.ErrInvalidInput}), http.MethodPost, "/admin/bank-accounts", `{"bankName":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleUpdate(t *testing.T) {
	svc := &stubCatalog{}
	rec := do(newRouter(svc), http.MethodPatch, "/admin/bank-accounts/"+accountID, `{"isActive":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.update.IsActive)
	assert.True(t, *svc.update.IsActive)
	assert.Nil(t, svc.update.BankName)

	assert.Equal(t, http.StatusNotFound,
		do(newRouter(&stubCatalog{err: catalog.ErrBankAccountNotFound}), http.MethodPatch, "/admin/bank-accounts/"+accountID, `{"isActive":true}`).Code)
}

func TestHandler_HandleDelete(t *testing.T) {
	svc := &stubCatalog{}
	rec := do(newRouter(svc), http.MethodDelete, "/admin/bank-accounts/"+accountID, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uuid.MustParse(accountID), svc.deactivated)

	assert.Equal(t, http.StatusBadRequest, do(newRouter(svc), http.MethodDelete, "/admin/bank-accounts/nope", "").Code)
}
