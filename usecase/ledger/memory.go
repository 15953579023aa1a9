package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/nk-nigeria/blackjack-engine/entity"
)

var _ PlayerStore = &MemoryStore{}

// MemoryStore keeps balances in process. It backs the simulator and tests.
type MemoryStore struct {
	mu       sync.Mutex
	balances map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{balances: make(map[string]int64)}
}

// Open creates or resets an account.
func (m *MemoryStore) Open(playerID string, balance int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[playerID] = balance
}

func (m *MemoryStore) GetBalance(_ context.Context, playerID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[playerID]
	if !ok {
		return 0, fmt.Errorf("%s: %w", playerID, entity.ErrPlayerNotFound)
	}
	return b, nil
}

func (m *MemoryStore) Debit(_ context.Context, playerID string, amount int64, _ Reason) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("negative debit %d", amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[playerID]
	if !ok {
		return 0, fmt.Errorf("%s: %w", playerID, entity.ErrPlayerNotFound)
	}
	if b < amount {
		return b, fmt.Errorf("balance %d < %d: %w", b, amount, entity.ErrInsufficientFunds)
	}
	m.balances[playerID] = b - amount
	return b - amount, nil
}

func (m *MemoryStore) Credit(_ context.Context, playerID string, amount int64, _ Reason) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("negative credit %d", amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[playerID]
	if !ok {
		return 0, fmt.Errorf("%s: %w", playerID, entity.ErrPlayerNotFound)
	}
	m.balances[playerID] = b + amount
	return b + amount, nil
}

var _ AuditLog = &MemoryAuditLog{}

type MemoryAuditLog struct {
	mu      sync.Mutex
	records []AuditRecord
}

func (l *MemoryAuditLog) Record(_ context.Context, rec AuditRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
	return nil
}

func (l *MemoryAuditLog) Records() []AuditRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]AuditRecord(nil), l.records...)
}

type Event struct {
	PlayerID string
	Type     EventType
	Payload  entity.Result
}

var _ Notifier = &MemoryNotifier{}

type MemoryNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *MemoryNotifier) Emit(_ context.Context, playerID string, eventType EventType, payload entity.Result) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, Event{PlayerID: playerID, Type: eventType, Payload: payload})
	return nil
}

func (n *MemoryNotifier) Events() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Event(nil), n.events...)
}

// Types lists the emitted event types in order.
func (n *MemoryNotifier) Types() []EventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]EventType, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}

type NopNotifier struct{}

func (NopNotifier) Emit(context.Context, string, EventType, entity.Result) error { return nil }

type NopAuditLog struct{}

func (NopAuditLog) Record(context.Context, AuditRecord) error { return nil }
