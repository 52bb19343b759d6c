package domain

// PaymentMethod tags how a movement was settled.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodCard     PaymentMethod = "CARD"
	MethodTransfer PaymentMethod = "TRANSFER"
	MethodMixed    PaymentMethod = "MIXED"
	// MethodSystem is a bookkeeping settlement that never touches the drawer.
	MethodSystem PaymentMethod = "SYSTEM"
)

// IsValid reports whether the method is one of the known tags.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case MethodCash, MethodCard, MethodTransfer, MethodMixed, MethodSystem:
		return true
	}
	return false
}

// Payment is the settlement breakdown of a sale. Total is always Cash+Card+Transfer+System.
type Payment struct {
	Method   PaymentMethod `json:"method"`
	Cash     Money         `json:"cash"`
	Card     Money         `json:"card"`
	Transfer Money         `json:"transfer"`
	System   Money         `json:"system"`
}

// Total returns the amount actually paid.
func (p Payment) Total() Money {
	return p.Cash + p.Card + p.Transfer + p.System
}

// Portions returns the non-zero amount per single settlement method.
func (p Payment) Portions() map[PaymentMethod]Money {
	out := make(map[PaymentMethod]Money, 4)
	if p.Cash != 0 {
		out[MethodCash] = p.Cash
	}
	if p.Card != 0 {
		out[MethodCard] = p.Card
	}
	if p.Transfer != 0 {
		out[MethodTransfer] = p.Transfer
	}
	if p.System != 0 {
		out[MethodSystem] = p.System
	}
	return out
}
