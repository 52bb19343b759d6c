// Package memory provides an in-memory ledger store for tests and local runs.
package memory

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/utils/accounting"
	"github.com/SscSPs/shop_ledger/internal/utils/pagination"
)

// Store keeps the whole ledger in maps guarded by one RWMutex. Every write runs under
// the write lock, which makes each mutation atomic across movement, customer and payee.
type Store struct {
	mu        sync.RWMutex
	movements map[string]domain.Movement
	customers map[string]domain.Customer
	payees    map[string]domain.Payee
	history   []domain.CustomerHistoryEntry
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		movements: make(map[string]domain.Movement),
		customers: make(map[string]domain.Customer),
		payees:    make(map[string]domain.Payee),
	}
}

var (
	_ portsrepo.MovementRepositoryFacade = (*Store)(nil)
	_ portsrepo.CustomerRepositoryFacade = (*Store)(nil)
	_ portsrepo.PayeeRepositoryFacade    = (*Store)(nil)
	_ portsrepo.SnapshotReader           = (*Store)(nil)
)

// Provider returns a RepositoryProvider backed by s.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{MovementRepo: s, CustomerRepo: s, PayeeRepo: s, SnapshotRepo: s}
}

// clone copies the movement and its detail so callers never share state with the store.
func clone(m domain.Movement) domain.Movement {
	switch d := m.Detail.(type) {
	case *domain.Sale:
		c := *d
		m.Detail = &c
	case *domain.Expense:
		c := *d
		m.Detail = &c
	case *domain.Withdrawal:
		c := *d
		m.Detail = &c
	}
	if m.Void.VoidedAt != nil {
		at := *m.Void.VoidedAt
		m.Void.VoidedAt = &at
	}
	return m
}

// SaveMovement implements MovementWriter.
func (s *Store) SaveMovement(_ context.Context, movement domain.Movement, effect domain.BalanceEffect) (*domain.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.movements[movement.MovementID]; exists {
		return nil, apperrors.NewAppError(http.StatusConflict, "movement already exists", apperrors.ErrDuplicate)
	}

	// Check everything that can fail before touching any balance.
	var payee domain.Payee
	if effect.TouchesPayee() {
		p, ok := s.payees[effect.PayeeName]
		if !ok {
			return nil, apperrors.NewNotFoundError("payee " + effect.PayeeName + " not found")
		}
		payee = p
	}

	stored := clone(movement)
	if effect.TouchesPayee() {
		var applied domain.Money
		payee.AmountOwed, applied = accounting.ApplyPayeeDelta(payee.AmountOwed, effect.PayeeDelta)
		payee.LastUpdatedAt = movement.CreatedAt
		s.payees[payee.Name] = payee
		if sale, ok := stored.Sale(); ok {
			sale.PayeeSettled = -applied
		}
	}
	if effect.TouchesCustomer() {
		s.applyCustomerLocked(effect, movement.CreatedAt, "")
	}

	s.movements[stored.MovementID] = stored
	out := clone(stored)
	return &out, nil
}

func (s *Store) applyCustomerLocked(effect domain.BalanceEffect, at time.Time, note string) domain.Customer {
	c, ok := s.customers[effect.CustomerName]
	if !ok {
		c = domain.Customer{Name: effect.CustomerName, CreatedAt: at}
		if effect.Action == domain.HistoryAdjustment {
			effect.Action = domain.HistoryOpening
		}
	}
	if c.Phone == "" && effect.CustomerPhone != "" {
		c.Phone = effect.CustomerPhone
	}
	c.DebtBalance += effect.DebtDelta
	c.LastUpdatedAt = at
	s.customers[c.Name] = c

	if effect.DebtDelta != 0 || effect.Action == domain.HistoryOpening || effect.Action == domain.HistoryAdjustment {
		s.history = append(s.history, domain.CustomerHistoryEntry{
			CustomerName: c.Name,
			At:           at,
			Delta:        effect.DebtDelta,
			BalanceAfter: c.DebtBalance,
			Action:       effect.Action,
			MovementID:   effect.MovementID,
			Actor:        effect.Actor,
			Note:         note,
		})
	}
	return c
}

// VoidMovement implements MovementWriter.
func (s *Store) VoidMovement(_ context.Context, movementID, actor string, voidedAt time.Time, reversal domain.BalanceEffect) (*domain.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movements[movementID]
	if !ok {
		return nil, apperrors.NewNotFoundError("movement " + movementID + " not found")
	}
	if err := m.MarkVoided(actor, voidedAt); err != nil {
		return nil, err
	}
	if reversal.TouchesPayee() {
		p, ok := s.payees[reversal.PayeeName]
		if !ok {
			return nil, apperrors.NewNotFoundError("payee " + reversal.PayeeName + " not found")
		}
		p.AmountOwed, _ = accounting.ApplyPayeeDelta(p.AmountOwed, reversal.PayeeDelta)
		p.LastUpdatedAt = voidedAt
		s.payees[p.Name] = p
	}
	if reversal.TouchesCustomer() {
		s.applyCustomerLocked(reversal, voidedAt, "")
	}

	s.movements[movementID] = m
	out := clone(m)
	return &out, nil
}

// FindMovementByID implements MovementReader.
func (s *Store) FindMovementByID(_ context.Context, movementID string) (*domain.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.movements[movementID]
	if !ok {
		return nil, apperrors.NewNotFoundError("movement " + movementID + " not found")
	}
	out := clone(m)
	return &out, nil
}

func (s *Store) sortedMovementsLocked() []domain.Movement {
	out := make([]domain.Movement, 0, len(s.movements))
	for _, m := range s.movements {
		out = append(out, clone(m))
	}
	accounting.SortNewestFirst(out)
	return out
}

// ListMovementsInRange implements MovementReader.
func (s *Store) ListMovementsInRange(_ context.Context, window domain.Window) ([]domain.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Movement, 0)
	for _, m := range s.sortedMovementsLocked() {
		if window.Contains(m.CreatedAt) {
			out = append(out, m)
		}
	}
	return out, nil
}

// ListMovements implements MovementReader.
func (s *Store) ListMovements(_ context.Context, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError(err.Error())
		}
		cursor = &c
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	page := make([]domain.Movement, 0, limit)
	var next *string
	for _, m := range s.sortedMovementsLocked() {
		if cursor != nil && !cursor.Before(m.CreatedAt, m.MovementID) {
			continue
		}
		if len(page) == limit {
			last := page[len(page)-1]
			token := pagination.EncodeToken(last.CreatedAt, last.MovementID)
			next = &token
			break
		}
		page = append(page, m)
	}
	return page, next, nil
}

// FindCustomer implements CustomerReader.
func (s *Store) FindCustomer(_ context.Context, nameOrPhone string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.customers[domain.NormalizeName(nameOrPhone)]; ok {
		return &c, nil
	}
	phone := strings.TrimSpace(nameOrPhone)
	for _, c := range s.customers {
		if c.Phone != "" && c.Phone == phone {
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("customer " + nameOrPhone + " not found")
}

// SearchCustomers implements CustomerReader.
func (s *Store) SearchCustomers(_ context.Context, fragment string, limit int) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := domain.NormalizeName(fragment)
	out := make([]domain.Customer, 0)
	for _, c := range s.customers {
		if strings.Contains(c.Name, needle) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListDebtors implements CustomerReader.
func (s *Store) ListDebtors(_ context.Context, limit int) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Customer, 0)
	for _, c := range s.customers {
		if c.DebtBalance > 0 {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DebtBalance != out[j].DebtBalance {
			return out[i].DebtBalance > out[j].DebtBalance
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListCustomerHistory implements CustomerReader.
func (s *Store) ListCustomerHistory(_ context.Context, customerName string, limit int) ([]domain.CustomerHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CustomerHistoryEntry, 0)
	for i := len(s.history) - 1; i >= 0 && len(out) < limit; i-- {
		if s.history[i].CustomerName == customerName {
			out = append(out, s.history[i])
		}
	}
	return out, nil
}

// AdjustCustomerDebt implements CustomerWriter.
func (s *Store) AdjustCustomerDebt(_ context.Context, name, phone string, delta domain.Money, actor, note string, at time.Time) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.applyCustomerLocked(domain.BalanceEffect{
		CustomerName:  domain.NormalizeName(name),
		CustomerPhone: phone,
		DebtDelta:     delta,
		Action:        domain.HistoryAdjustment,
		Actor:         actor,
	}, at, note)
	if phone != "" {
		c.Phone = phone
		s.customers[c.Name] = c
	}
	return &c, nil
}

// FindPayeeByName implements PayeeReader.
func (s *Store) FindPayeeByName(_ context.Context, name string) (*domain.Payee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payees[domain.NormalizeName(name)]
	if !ok {
		return nil, apperrors.NewNotFoundError("payee " + name + " not found")
	}
	return &p, nil
}

// ListPayees implements PayeeReader.
func (s *Store) ListPayees(_ context.Context) ([]domain.Payee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Payee, 0, len(s.payees))
	for _, p := range s.payees {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UpsertPayee implements PayeeWriter.
func (s *Store) UpsertPayee(_ context.Context, name, alias string, topUp domain.Money, warningCap *domain.Money, at time.Time) (*domain.Payee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := domain.NormalizeName(name)
	p, ok := s.payees[key]
	if !ok {
		p = domain.Payee{Name: key, Alias: key, CreatedAt: at}
	}
	if alias != "" {
		p.Alias = alias
	}
	if warningCap != nil {
		v := *warningCap
		p.WarningCap = &v
	}
	p.AmountOwed += topUp
	p.LastUpdatedAt = at
	s.payees[key] = p
	return &p, nil
}

// Snapshot implements SnapshotReader.
func (s *Store) Snapshot(_ context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &domain.Snapshot{
		TakenAt:   time.Now().UTC(),
		Customers: make([]domain.Customer, 0, len(s.customers)),
		Payees:    make([]domain.Payee, 0, len(s.payees)),
		Movements: s.sortedMovementsLocked(),
		History:   append([]domain.CustomerHistoryEntry(nil), s.history...),
	}
	for _, c := range s.customers {
		snap.Customers = append(snap.Customers, c)
	}
	sort.Slice(snap.Customers, func(i, j int) bool { return snap.Customers[i].Name < snap.Customers[j].Name })
	for _, p := range s.payees {
		snap.Payees = append(snap.Payees, p)
	}
	sort.Slice(snap.Payees, func(i, j int) bool { return snap.Payees[i].Name < snap.Payees[j].Name })
	return snap, nil
}
