package catalog

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/visa-booking-service/internal/domain"
	"github.com/m04kA/visa-booking-service/pkg/ptr"
)

func TestUpdateBankAccountQuery_OnlyProvidedFields(t *testing.T) {
	id := uuid.MustParse("2f1c7c8e-0000-4000-8000-000000000001")

	query, args, err := updateBankAccountQuery(id, domain.BankAccountUpdate{
		IsActive: ptr.Ptr(false),
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE bank_accounts SET updated_at = NOW(), is_active = $1 WHERE id = $2 "+
			"RETURNING id, bank_name, account_number, is_active, created_at, updated_at",
		query)
	assert.Equal(t, []interface{}{false, id}, args)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: uniqueViolation}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("x")))
}
