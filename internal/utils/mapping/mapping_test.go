package mapping_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/models"
	"github.com/SscSPs/shop_ledger/internal/utils/mapping"
)

func TestMovementMapping_SaleKeepsBreakdown(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	in := domain.Movement{
		MovementID: "m1", Kind: domain.KindSale, RecordedBy: "caja1", PhysicalCustodian: "-", CreatedAt: at,
		Void: domain.VoidInfo{Voided: true, VoidedAt: &at, VoidedBy: "jefa"},
		Detail: &domain.Sale{
			GrossAmount: 5000, Customer: "BETO", Payee: "DISTRIBUIDOR X", PayeeSettled: 3000,
			Payment: domain.Payment{Method: domain.MethodMixed, Cash: 1000, Transfer: 4000},
		},
	}

	row := mapping.ToModelMovement(in)
	require.NotNil(t, row.Customer)
	assert.Equal(t, "BETO", *row.Customer)
	assert.Nil(t, row.DeclaredAmount)
	assert.Nil(t, row.Description)

	out, err := mapping.ToDomainMovement(row)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMovementMapping_Withdrawal(t *testing.T) {
	declared := int64(80000)
	out, err := mapping.ToDomainMovement(models.Movement{MovementID: "w", Kind: "CLOSURE_FULL", DeclaredAmount: &declared})
	require.NoError(t, err)
	w, ok := out.Withdrawal()
	require.True(t, ok)
	assert.True(t, w.Full)
	assert.Equal(t, domain.Money(80000), w.DeclaredAmount)
	assert.Equal(t, "", out.Void.VoidedBy)
}

func TestMovementMapping_UnknownKind(t *testing.T) {
	_, err := mapping.ToDomainMovement(models.Movement{MovementID: "x", Kind: "REFUND"})
	assert.Error(t, err)
}
