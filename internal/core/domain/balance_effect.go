package domain

// BalanceEffect is what applying (or reversing) a movement does to the denormalized balances.
// A zero effect touches nothing.
type BalanceEffect struct {
	MovementID string
	Actor      string
	Action     HistoryAction

	CustomerName  string
	CustomerPhone string
	DebtDelta     Money

	// PayeeDelta is signed: negative pays down the payee. The store applies it
	// floored at zero and reports the delta it actually applied.
	PayeeName  string
	PayeeDelta Money
}

// TouchesCustomer reports whether the effect references a customer.
func (e BalanceEffect) TouchesCustomer() bool { return e.CustomerName != "" }

// TouchesPayee reports whether the effect changes a payee balance.
func (e BalanceEffect) TouchesPayee() bool { return e.PayeeName != "" && e.PayeeDelta != 0 }

// VoidPolicy selects how a void reverses payee balances.
type VoidPolicy string

const (
	// VoidPolicyFull reverses both customer and payee effects.
	VoidPolicyFull VoidPolicy = "full"
	// VoidPolicyForensic reverses the customer effect only.
	VoidPolicyForensic VoidPolicy = "forensic"
)

// IsValid reports whether p is a known policy.
func (p VoidPolicy) IsValid() bool {
	return p == VoidPolicyFull || p == VoidPolicyForensic
}
