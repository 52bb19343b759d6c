package accounting_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func hdr(id string, offset time.Duration) domain.MovementHeader {
	return domain.MovementHeader{MovementID: id, RecordedBy: "caja1", CreatedAt: day.Add(offset)}
}

func money(s string) domain.Money { return domain.MustMoney(s) }

func ptr(m domain.Money) *domain.Money { return &m }

func sale(t *testing.T, id string, offset time.Duration, in domain.SaleInput) domain.Movement {
	t.Helper()
	m, err := domain.NewSale(hdr(id, offset), in)
	require.NoError(t, err)
	return m
}

func expense(t *testing.T, id string, offset time.Duration, amount domain.Money, method domain.PaymentMethod) domain.Movement {
	t.Helper()
	m, err := domain.NewExpense(hdr(id, offset), domain.ExpenseInput{Description: "gasto", Amount: amount, Method: method})
	require.NoError(t, err)
	return m
}

func closure(t *testing.T, id string, offset time.Duration, declared domain.Money, full bool) domain.Movement {
	t.Helper()
	m, err := domain.NewWithdrawal(hdr(id, offset), domain.WithdrawalInput{DeclaredAmount: ptr(declared), Full: full})
	require.NoError(t, err)
	return m
}

func TestEffectOf(t *testing.T) {
	m := sale(t, "s1", 0, domain.SaleInput{
		GrossAmount: money("1000"), Customer: "ana", Method: domain.MethodMixed,
		Cash: money("400"), Transfer: money("200"), Payee: "distribuidor x",
	})
	eff := accounting.EffectOf(m)
	assert.Equal(t, "ANA", eff.CustomerName)
	assert.Equal(t, money("400"), eff.DebtDelta)
	assert.Equal(t, "DISTRIBUIDOR X", eff.PayeeName)
	assert.Equal(t, money("-200"), eff.PayeeDelta)
	assert.Equal(t, domain.HistorySale, eff.Action)

	exp := accounting.EffectOf(expense(t, "e1", 0, money("50"), domain.MethodCash))
	assert.False(t, exp.TouchesCustomer())
	assert.False(t, exp.TouchesPayee())
}

func TestReversalOf_Policies(t *testing.T) {
	m := sale(t, "s1", 0, domain.SaleInput{
		GrossAmount: money("100"), Customer: "ana", Method: domain.MethodTransfer,
		TotalPaid: ptr(money("100")), Payee: "x",
	})
	s, _ := m.Sale()
	s.PayeeSettled = money("60") // floor truncated the 100 payment

	full := accounting.ReversalOf(m, "owner", domain.VoidPolicyFull)
	assert.Equal(t, domain.Money(0), full.DebtDelta)
	assert.Equal(t, "X", full.PayeeName)
	assert.Equal(t, money("60"), full.PayeeDelta)
	assert.Equal(t, "owner", full.Actor)
	assert.Equal(t, domain.HistoryVoid, full.Action)

	forensic := accounting.ReversalOf(m, "owner", domain.VoidPolicyForensic)
	assert.False(t, forensic.TouchesPayee())
	assert.Equal(t, "ANA", forensic.CustomerName)
}

func TestApplyPayeeDelta_Floor(t *testing.T) {
	// DISTRIBUIDOR X owed 5000, paid 2000 then 4000
	owed := money("5000")
	owed, applied := accounting.ApplyPayeeDelta(owed, money("-2000"))
	assert.Equal(t, money("3000"), owed)
	assert.Equal(t, money("-2000"), applied)

	owed, applied = accounting.ApplyPayeeDelta(owed, money("-4000"))
	assert.Equal(t, domain.Money(0), owed)
	assert.Equal(t, money("-3000"), applied)

	owed, applied = accounting.ApplyPayeeDelta(owed, money("-1"))
	assert.Equal(t, domain.Money(0), owed)
	assert.Equal(t, domain.Money(0), applied)
}

func TestReconcile_DayClose(t *testing.T) {
	ms := []domain.Movement{
		sale(t, "s1", 0, domain.SaleInput{GrossAmount: money("1000"), Customer: "ana", Method: domain.MethodCash, TotalPaid: ptr(money("1000"))}),
		expense(t, "e1", time.Hour, money("200"), domain.MethodCash),
		closure(t, "c1", 2*time.Hour, money("800"), true),
	}

	r := accounting.Reconcile(ms, domain.Window{})
	assert.Equal(t, money("1000"), r.Totals.TotalSales)
	assert.Equal(t, money("200"), r.Totals.TotalExpenses)
	assert.Equal(t, money("800"), r.Totals.TotalDeclaredWithdrawn)
	assert.Equal(t, domain.Money(0), r.Totals.TheoreticalCash)
	assert.Equal(t, money("800"), r.Totals.CashDiscrepancy)
	assert.Equal(t, money("800"), r.Totals.NetProfit)
	assert.Equal(t, money("1000"), r.Totals.ByMethod[domain.MethodCash])
	assert.Equal(t, 3, r.Totals.MovementCount)
	require.Len(t, r.Items, 3)
	assert.Equal(t, "c1", r.Items[0].MovementID)
	assert.Equal(t, "s1", r.Items[2].MovementID)
}

func TestReconcile_MethodsAndNonCashExpense(t *testing.T) {
	ms := []domain.Movement{
		sale(t, "s1", 0, domain.SaleInput{
			GrossAmount: money("100"), Customer: "a", Method: domain.MethodMixed,
			Cash: money("10"), Card: money("20"), Transfer: money("30"), System: money("5"),
		}),
		expense(t, "e1", time.Minute, money("40"), domain.MethodCard),
	}
	r := accounting.Reconcile(ms, domain.Window{})
	assert.Equal(t, money("10"), r.Totals.ByMethod[domain.MethodCash])
	assert.Equal(t, money("20"), r.Totals.ByMethod[domain.MethodCard])
	assert.Equal(t, money("30"), r.Totals.ByMethod[domain.MethodTransfer])
	assert.Equal(t, money("5"), r.Totals.ByMethod[domain.MethodSystem])
	assert.Equal(t, money("10"), r.Totals.TheoreticalCash)
	assert.Equal(t, money("60"), r.Totals.NetProfit)
}

func TestReconcile_WindowInclusive(t *testing.T) {
	ms := []domain.Movement{
		closure(t, "before", -time.Second, money("1"), false),
		closure(t, "start", 0, money("2"), false),
		closure(t, "end", time.Hour, money("4"), false),
		closure(t, "after", time.Hour+time.Second, money("8"), false),
	}
	from, to := day, day.Add(time.Hour)
	r := accounting.Reconcile(ms, domain.Window{From: &from, To: &to})
	assert.Equal(t, money("6"), r.Totals.TotalDeclaredWithdrawn)
	assert.Len(t, r.Items, 2)

	onlyFrom := accounting.Reconcile(ms, domain.Window{From: &to})
	assert.Equal(t, money("12"), onlyFrom.Totals.TotalDeclaredWithdrawn)
}

func TestReconcile_VoidedExclusion(t *testing.T) {
	base := []domain.Movement{
		sale(t, "s1", 0, domain.SaleInput{GrossAmount: money("300"), Customer: "a", Method: domain.MethodCash, TotalPaid: ptr(money("300"))}),
		expense(t, "e1", time.Minute, money("50"), domain.MethodCash),
	}
	want := accounting.Reconcile(base, domain.Window{}).Totals

	extras := []domain.Movement{
		sale(t, "v1", 2*time.Minute, domain.SaleInput{GrossAmount: money("999"), Customer: "b", Method: domain.MethodCard, TotalPaid: ptr(money("999"))}),
		expense(t, "v2", 3*time.Minute, money("77"), domain.MethodCash),
		closure(t, "v3", 4*time.Minute, money("123"), true),
	}
	for i := range extras {
		require.NoError(t, extras[i].MarkVoided("owner", day))
	}

	got := accounting.Reconcile(append(append([]domain.Movement{}, base...), extras...), domain.Window{})
	assert.Equal(t, want.TotalSales, got.Totals.TotalSales)
	assert.Equal(t, want.TotalExpenses, got.Totals.TotalExpenses)
	assert.Equal(t, want.TotalDeclaredWithdrawn, got.Totals.TotalDeclaredWithdrawn)
	assert.Equal(t, want.TheoreticalCash, got.Totals.TheoreticalCash)
	assert.Equal(t, want.ByMethod, got.Totals.ByMethod)
	assert.Equal(t, want.MovementCount, got.Totals.MovementCount)
	assert.Equal(t, 3, got.Totals.VoidedCount)
	assert.Len(t, got.Items, 5)
}

func randomMovements(t *testing.T, rng *rand.Rand, n int) []domain.Movement {
	ms := make([]domain.Movement, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("m%03d", i)
		offset := time.Duration(rng.Intn(48*60)) * time.Minute
		amount := domain.Money(rng.Int63n(100000))
		var m domain.Movement
		switch rng.Intn(4) {
		case 0:
			m = sale(t, id, offset, domain.SaleInput{
				GrossAmount: amount, Customer: "c", Method: domain.MethodMixed,
				Cash: amount / 3, Card: amount / 4, Transfer: amount / 5,
			})
		case 1:
			m = expense(t, id, offset, amount+1, domain.MethodCash)
		case 2:
			m = closure(t, id, offset, amount, rng.Intn(2) == 0)
		default:
			m = sale(t, id, offset, domain.SaleInput{GrossAmount: amount, Customer: "d", Method: domain.MethodCard, TotalPaid: ptr(amount)})
		}
		if rng.Intn(5) == 0 {
			require.NoError(t, m.MarkVoided("owner", day))
		}
		ms = append(ms, m)
	}
	return ms
}

func TestReconcile_Additivity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		ms := randomMovements(t, rng, 40)
		split := rng.Intn(len(ms))
		from, to := day.Add(6*time.Hour), day.Add(30*time.Hour)
		w := domain.Window{From: &from, To: &to}

		whole := accounting.Reconcile(ms, w).Totals
		a := accounting.Reconcile(ms[:split], w).Totals
		b := accounting.Reconcile(ms[split:], w).Totals
		assert.Equal(t, whole, a.Add(b), "round %d", round)
	}
}

func TestReconcile_OrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ms := randomMovements(t, rng, 30)
	want := accounting.Reconcile(ms, domain.Window{})

	shuffled := append([]domain.Movement{}, ms...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	got := accounting.Reconcile(shuffled, domain.Window{})
	assert.Equal(t, want.Totals, got.Totals)
	assert.Equal(t, want.Items, got.Items)
}

func TestProject_Restricted(t *testing.T) {
	var ms []domain.Movement
	for i := 0; i < 12; i++ {
		ms = append(ms, sale(t, fmt.Sprintf("s%02d", i), time.Duration(i)*time.Minute, domain.SaleInput{
			GrossAmount: money("10"), Customer: "ana", Method: domain.MethodCash, TotalPaid: ptr(money("8")),
		}))
	}
	transfer := sale(t, "t1", 20*time.Minute, domain.SaleInput{
		GrossAmount: money("50"), Customer: "bob", Method: domain.MethodTransfer, TotalPaid: ptr(money("50")), Payee: "x",
	})
	voided := sale(t, "v1", 21*time.Minute, domain.SaleInput{GrossAmount: money("1"), Customer: "z", Method: domain.MethodCash})
	require.NoError(t, voided.MarkVoided("owner", day))
	ms = append(ms, transfer, voided,
		expense(t, "e1", 22*time.Minute, money("5"), domain.MethodCash),
		closure(t, "c1", 23*time.Minute, money("5"), true),
		closure(t, "w1", 24*time.Minute, money("5"), false),
	)

	view := accounting.Project(accounting.Reconcile(ms, domain.Window{}), domain.RoleEmployee, 10)
	assert.Equal(t, domain.ProfileRestricted, view.Profile)
	assert.Nil(t, view.Totals)
	require.Len(t, view.Items, 10)
	for _, it := range view.Items {
		assert.Equal(t, domain.KindSale, it.Kind)
		assert.Nil(t, it.GrossAmount)
		assert.Nil(t, it.Payment)
		assert.Nil(t, it.Void)
		assert.NotEqual(t, "v1", it.MovementID)
	}
	assert.Equal(t, "t1", view.Items[0].MovementID)
	assert.Equal(t, accounting.RedactedCounterpart, view.Items[0].Customer)
	assert.Equal(t, accounting.RedactedCounterpart, view.Items[0].Payee)
	assert.Equal(t, money("50"), view.Items[0].TotalPaid)
	assert.Equal(t, "ANA", view.Items[1].Customer)
	assert.Equal(t, money("8"), view.Items[1].TotalPaid)
}

func TestProject_UnknownRoleFailsClosed(t *testing.T) {
	ms := []domain.Movement{expense(t, "e1", 0, money("5"), domain.MethodCash)}
	view := accounting.Project(accounting.Reconcile(ms, domain.Window{}), domain.Role("MANAGER"), 0)
	assert.Nil(t, view.Totals)
	assert.Empty(t, view.Items)
}

func TestProject_Full(t *testing.T) {
	voided := sale(t, "v1", 0, domain.SaleInput{GrossAmount: money("1"), Customer: "z", Method: domain.MethodCash})
	require.NoError(t, voided.MarkVoided("owner", day))
	ms := []domain.Movement{voided, expense(t, "e1", time.Minute, money("5"), domain.MethodCard)}

	view := accounting.Project(accounting.Reconcile(ms, domain.Window{}), domain.RoleOwner, 10)
	require.NotNil(t, view.Totals)
	assert.Equal(t, money("5"), view.Totals.TotalExpenses)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "gasto", view.Items[0].Description)
	require.NotNil(t, view.Items[0].ExpenseMethod)
	assert.Equal(t, domain.MethodCard, *view.Items[0].ExpenseMethod)
	require.NotNil(t, view.Items[1].Void)
	assert.True(t, view.Items[1].Void.Voided)
	require.NotNil(t, view.Items[1].GrossAmount)
}

func TestProjectPayees(t *testing.T) {
	warn := money("100")
	payees := []domain.Payee{{Name: "X", Alias: "Dist", AmountOwed: money("150"), WarningCap: &warn}}

	restricted := accounting.ProjectPayees(payees, domain.RoleEmployee)
	require.Len(t, restricted, 1)
	assert.Nil(t, restricted[0].AmountOwed)
	assert.Nil(t, restricted[0].WarningCap)
	assert.Nil(t, restricted[0].OverCap)

	full := accounting.ProjectPayees(payees, domain.RoleDev)
	require.NotNil(t, full[0].AmountOwed)
	assert.Equal(t, money("150"), *full[0].AmountOwed)
	assert.True(t, *full[0].OverCap)
}
