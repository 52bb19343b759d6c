package services_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/shop_ledger/internal/repositories/database/memory"
	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/core/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

type ledgerFixture struct {
	store     *memory.Store
	movements portssvc.MovementSvcFacade
	customers portssvc.CustomerSvcFacade
	payees    portssvc.PayeeSvcFacade
	reports   portssvc.ReportingService
}

var flowStart = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func newLedgerFixture(policy domain.VoidPolicy) *ledgerFixture {
	store := memory.NewStore()
	tick := 0
	now := func() time.Time {
		tick++
		return flowStart.Add(time.Duration(tick) * time.Minute)
	}
	seq := 0
	newID := func() string {
		seq++
		return fmt.Sprintf("m%03d", seq)
	}
	repos := store.Provider()
	return &ledgerFixture{
		store:     store,
		movements: services.NewMovementService(repos.MovementRepo, services.WithVoidPolicy(policy), services.WithMovementClock(now, newID)),
		customers: services.NewCustomerService(repos.CustomerRepo),
		payees:    services.NewPayeeService(repos.PayeeRepo),
		reports:   services.NewReportingService(repos.MovementRepo, services.WithRestrictedHistoryLimit(10)),
	}
}

func money(s string) domain.Money { return domain.MustMoney(s) }

func moneyPtr(s string) *domain.Money {
	m := domain.MustMoney(s)
	return &m
}

func (f *ledgerFixture) debt(t *testing.T, name string) domain.Money {
	t.Helper()
	c, err := f.customers.GetCustomer(context.Background(), name)
	require.NoError(t, err)
	return c.DebtBalance
}

func (f *ledgerFixture) owed(t *testing.T, name string) domain.Money {
	t.Helper()
	views, err := f.payees.ListPayees(context.Background(), domain.RoleOwner)
	require.NoError(t, err)
	for _, v := range views {
		if v.Name == name {
			return *v.AmountOwed
		}
	}
	t.Fatalf("payee %s not found", name)
	return 0
}

func TestLedgerFlow_CreditSaleAndVoid(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(domain.VoidPolicyFull)

	sale, err := f.movements.SubmitMovement(ctx, dto.CreateMovementRequest{
		Kind: domain.KindSale, GrossAmount: money("1000"), Customer: "Ana", TotalPaid: moneyPtr("600"),
	}, "caja1")
	require.NoError(t, err)
	assert.Equal(t, money("400"), f.debt(t, "ANA"))

	_, already, err := f.movements.VoidMovement(ctx, sale.MovementID, "jefa", domain.RoleEmployee)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.False(t, already)
	assert.Equal(t, money("400"), f.debt(t, "ANA"))

	voided, already, err := f.movements.VoidMovement(ctx, sale.MovementID, "jefa", domain.RoleOwner)
	require.NoError(t, err)
	assert.False(t, already)
	assert.True(t, voided.Void.Voided)
	assert.Equal(t, "jefa", voided.Void.VoidedBy)
	assert.Equal(t, domain.Money(0), f.debt(t, "ANA"))

	_, already, err = f.movements.VoidMovement(ctx, sale.MovementID, "dev", domain.RoleDev)
	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, domain.Money(0), f.debt(t, "ANA"))

	_, history, err := f.customers.GetCustomerHistory(ctx, "ana", domain.RoleOwner)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.HistoryVoid, history[0].Action)
	assert.Equal(t, money("-400"), history[0].Delta)
	assert.Equal(t, domain.HistorySale, history[1].Action)
}

func TestLedgerFlow_PayeeFloorAndVoidPolicies(t *testing.T) {
	for _, tc := range []struct {
		policy    domain.VoidPolicy
		afterVoid string
	}{
		{domain.VoidPolicyFull, "3000"},
		{domain.VoidPolicyForensic, "0"},
	} {
		t.Run(string(tc.policy), func(t *testing.T) {
			ctx := context.Background()
			f := newLedgerFixture(tc.policy)

			_, err := f.payees.UpsertPayee(ctx, dto.UpsertPayeeRequest{Name: "distribuidor x", TopUp: money("3000")}, "jefa", domain.RoleOwner)
			require.NoError(t, err)

			sale, err := f.movements.SubmitMovement(ctx, dto.CreateMovementRequest{
				Kind: domain.KindSale, GrossAmount: money("5000"), Customer: "BETO",
				PaymentMethod: domain.MethodTransfer, Transfer: money("5000"), Payee: "Distribuidor X",
			}, "caja1")
			require.NoError(t, err)
			s, ok := sale.Sale()
			require.True(t, ok)
			assert.Equal(t, money("3000"), s.PayeeSettled)
			assert.Equal(t, domain.Money(0), f.owed(t, "DISTRIBUIDOR X"))
			assert.Equal(t, domain.Money(0), f.debt(t, "BETO"))

			_, _, err = f.movements.VoidMovement(ctx, sale.MovementID, "jefa", domain.RoleOwner)
			require.NoError(t, err)
			assert.Equal(t, money(tc.afterVoid), f.owed(t, "DISTRIBUIDOR X"))
		})
	}
}

func TestLedgerFlow_UnknownPayeeRejected(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(domain.VoidPolicyFull)

	_, err := f.movements.SubmitMovement(ctx, dto.CreateMovementRequest{
		Kind: domain.KindSale, GrossAmount: money("100"), Customer: "CARLA",
		PaymentMethod: domain.MethodTransfer, Transfer: money("50"), Payee: "NADIE",
	}, "caja1")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.customers.GetCustomer(ctx, "CARLA")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	report, err := f.reports.Reconciliation(ctx, domain.Window{}, domain.RoleOwner)
	require.NoError(t, err)
	assert.Empty(t, report.Items)
}

func TestLedgerFlow_DayClose(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(domain.VoidPolicyFull)

	requests := []dto.CreateMovementRequest{
		{Kind: domain.KindSale, GrossAmount: money("1000"), Customer: "ANA", TotalPaid: moneyPtr("1000")},
		{Kind: domain.KindExpense, Description: "proveedor", Amount: money("200")},
		{Kind: domain.KindWithdrawalPartial, DeclaredAmount: moneyPtr("500")},
		{Kind: domain.KindClosureFull, DeclaredAmount: moneyPtr("300"), PhysicalCustodian: "jefa"},
	}
	for _, req := range requests {
		_, err := f.movements.SubmitMovement(ctx, req, "caja1")
		require.NoError(t, err)
	}

	full, err := f.reports.Reconciliation(ctx, domain.Window{}, domain.RoleOwner)
	require.NoError(t, err)
	require.NotNil(t, full.Totals)
	assert.Equal(t, money("1000"), full.Totals.TotalSales)
	assert.Equal(t, money("200"), full.Totals.TotalExpenses)
	assert.Equal(t, money("800"), full.Totals.TotalDeclaredWithdrawn)
	assert.Equal(t, money("0"), full.Totals.TheoreticalCash)
	assert.Equal(t, money("800"), full.Totals.NetProfit)
	assert.Equal(t, money("800"), full.Totals.CashDiscrepancy)
	assert.Len(t, full.Items, 4)
	assert.Equal(t, domain.KindClosureFull, full.Items[0].Kind)

	restricted, err := f.reports.Reconciliation(ctx, domain.Window{}, domain.RoleEmployee)
	require.NoError(t, err)
	assert.Nil(t, restricted.Totals)
	assert.Equal(t, domain.ProfileRestricted, restricted.Profile)
	require.Len(t, restricted.Items, 1)
	assert.Equal(t, domain.KindSale, restricted.Items[0].Kind)
	assert.Nil(t, restricted.Items[0].Payment)
	assert.Empty(t, restricted.Items[0].RecordedBy)
}

func TestLedgerFlow_ReconciliationWindow(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(domain.VoidPolicyFull)

	for i := 0; i < 3; i++ {
		_, err := f.movements.SubmitMovement(ctx, dto.CreateMovementRequest{
			Kind: domain.KindSale, GrossAmount: money("10"), Customer: "ANA", TotalPaid: moneyPtr("10"),
		}, "caja1")
		require.NoError(t, err)
	}

	// Movements are stamped at start+1m, +2m and +3m.
	from := flowStart.Add(2 * time.Minute)
	report, err := f.reports.Reconciliation(ctx, domain.Window{From: &from}, domain.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, money("20"), report.Totals.TotalSales)

	to := flowStart
	_, err = f.reports.Reconciliation(ctx, domain.Window{From: &from, To: &to}, domain.RoleOwner)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// Applying then voiding any sequence of sales leaves every balance where it started.
func TestLedgerFlow_VoidAllRestoresBalances(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(domain.VoidPolicyFull)
	rng := rand.New(rand.NewSource(7))
	names := []string{"ANA", "BETO", "CARLA"}

	_, err := f.payees.UpsertPayee(ctx, dto.UpsertPayeeRequest{Name: "DISTRIBUIDOR X", TopUp: money("500")}, "jefa", domain.RoleOwner)
	require.NoError(t, err)

	var ids []string
	for i := 0; i < 30; i++ {
		gross := domain.Money(rng.Int63n(100000))
		req := dto.CreateMovementRequest{Kind: domain.KindSale, GrossAmount: gross, Customer: names[rng.Intn(len(names))]}
		if rng.Intn(2) == 0 {
			req.PaymentMethod = domain.MethodTransfer
			req.Transfer = domain.Money(rng.Int63n(int64(gross) + 1))
			if req.Transfer > 0 {
				req.Payee = "DISTRIBUIDOR X"
			}
		} else {
			req.TotalPaid = moneyPtr("0")
			*req.TotalPaid = domain.Money(rng.Int63n(int64(gross) + 1))
		}
		m, err := f.movements.SubmitMovement(ctx, req, "caja1")
		require.NoError(t, err)
		ids = append(ids, m.MovementID)
	}

	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	for _, id := range ids {
		_, already, err := f.movements.VoidMovement(ctx, id, "jefa", domain.RoleOwner)
		require.NoError(t, err)
		require.False(t, already)
	}

	for _, name := range names {
		c, err := f.customers.GetCustomer(ctx, name)
		if err != nil {
			require.ErrorIs(t, err, apperrors.ErrNotFound)
			continue
		}
		assert.Equal(t, domain.Money(0), c.DebtBalance, name)
	}
	assert.Equal(t, money("500"), f.owed(t, "DISTRIBUIDOR X"))
}

func TestLedgerFlow_AdjustDebt(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(domain.VoidPolicyFull)

	_, err := f.customers.AdjustDebt(ctx, dto.AdjustCustomerDebtRequest{Name: "dora", Delta: money("250")}, "caja1", domain.RoleEmployee)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	c, err := f.customers.AdjustDebt(ctx, dto.AdjustCustomerDebtRequest{Name: "dora", Phone: "1122", Delta: money("250"), Note: "cuaderno"}, "jefa", domain.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, "DORA", c.Name)
	assert.Equal(t, money("250"), c.DebtBalance)

	c, err = f.customers.AdjustDebt(ctx, dto.AdjustCustomerDebtRequest{Name: "DORA", Delta: money("-100")}, "jefa", domain.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, money("150"), c.DebtBalance)

	byPhone, err := f.customers.GetCustomer(ctx, "1122")
	require.NoError(t, err)
	assert.Equal(t, "DORA", byPhone.Name)

	_, history, err := f.customers.GetCustomerHistory(ctx, "DORA", domain.RoleDev)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.HistoryAdjustment, history[0].Action)
	assert.Equal(t, domain.HistoryOpening, history[1].Action)
	assert.Equal(t, "cuaderno", history[1].Note)

	_, _, err = f.customers.GetCustomerHistory(ctx, "DORA", domain.RoleEmployee)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestLedgerFlow_ListCustomers(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(domain.VoidPolicyFull)

	for _, c := range []struct{ name, debt string }{{"ANA", "100"}, {"ANABEL", "300"}, {"BETO", "200"}} {
		_, err := f.customers.AdjustDebt(ctx, dto.AdjustCustomerDebtRequest{Name: c.name, Delta: money(c.debt)}, "jefa", domain.RoleOwner)
		require.NoError(t, err)
	}

	found, err := f.customers.ListCustomers(ctx, dto.ListCustomersParams{Query: "ana"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	debtors, err := f.customers.ListCustomers(ctx, dto.ListCustomersParams{})
	require.NoError(t, err)
	require.Len(t, debtors, 3)
	assert.Equal(t, "ANABEL", debtors[0].Name)

	_, err = f.customers.GetCustomer(ctx, "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLedgerFlow_PayeeVisibility(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(domain.VoidPolicyFull)

	_, err := f.payees.UpsertPayee(ctx, dto.UpsertPayeeRequest{Name: "LUZ"}, "caja1", domain.RoleEmployee)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = f.payees.UpsertPayee(ctx, dto.UpsertPayeeRequest{Name: "LUZ", TopUp: money("-1")}, "jefa", domain.RoleOwner)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	p, err := f.payees.UpsertPayee(ctx, dto.UpsertPayeeRequest{Name: "luz", TopUp: money("100"), WarningCap: moneyPtr("150")}, "jefa", domain.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, "LUZ", p.Alias)
	p, err = f.payees.UpsertPayee(ctx, dto.UpsertPayeeRequest{Name: "LUZ", TopUp: money("60")}, "jefa", domain.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, money("160"), p.AmountOwed)

	owner, err := f.payees.ListPayees(ctx, domain.RoleOwner)
	require.NoError(t, err)
	require.Len(t, owner, 1)
	require.NotNil(t, owner[0].OverCap)
	assert.True(t, *owner[0].OverCap)

	employee, err := f.payees.ListPayees(ctx, domain.RoleEmployee)
	require.NoError(t, err)
	require.Len(t, employee, 1)
	assert.Nil(t, employee[0].AmountOwed)
	assert.Equal(t, "LUZ", employee[0].Name)
}
