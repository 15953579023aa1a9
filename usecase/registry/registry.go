package registry

import (
	"context"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/usecase/engine"
	"go.uber.org/zap"
)

// EvictFn runs for every reaped round that still owes the player money, while
// the player's slot is held. An error keeps the slot for the next pass.
type EvictFn func(ctx context.Context, playerID string, round *engine.Round) error

type entry struct {
	// sem is a one-slot semaphore serialising every action of the player.
	sem        chan struct{}
	round      *engine.Round
	lastActive time.Time
}

// Registry maps players to their single live round.
type Registry struct {
	mu      sync.RWMutex
	entries *linkedhashmap.Map
	clock   quartz.Clock
	logger  *zap.Logger
	onEvict EvictFn
}

type Option func(*Registry)

func WithClock(c quartz.Clock) Option {
	return func(r *Registry) { r.clock = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

func WithEvictFn(fn EvictFn) Option {
	return func(r *Registry) { r.onEvict = fn }
}

func New(opts ...Option) *Registry {
	r := &Registry{
		entries: linkedhashmap.New(),
		clock:   quartz.NewReal(),
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// SetEvictFn installs the hook after construction, for owners built around the registry.
func (r *Registry) SetEvictFn(fn EvictFn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onEvict = fn
}

// Lease is exclusive access to one player's slot until Release.
type Lease struct {
	reg      *Registry
	playerID string
	e        *entry
	once     sync.Once
}

func (l *Lease) PlayerID() string { return l.playerID }

// Round is nil when the player has never bet or the round was cleared.
func (l *Lease) Round() *engine.Round { return l.e.round }

// Replace installs a new round, discarding the previous one.
func (l *Lease) Replace(round *engine.Round) {
	l.e.round = round
}

func (l *Lease) Release() {
	l.once.Do(func() {
		l.e.lastActive = l.reg.clock.Now()
		<-l.e.sem
	})
}

// GetOrCreate locks the player's slot, creating an empty one when missing.
func (r *Registry) GetOrCreate(ctx context.Context, playerID string) (*Lease, error) {
	return r.acquire(ctx, playerID, true)
}

// Get locks the slot of a player that has a round, or fails with ErrSessionNotFound.
func (r *Registry) Get(ctx context.Context, playerID string) (*Lease, error) {
	l, err := r.acquire(ctx, playerID, false)
	if err != nil {
		return nil, err
	}
	if l.Round() == nil {
		l.Release()
		return nil, entity.ErrSessionNotFound
	}
	return l, nil
}

func (r *Registry) acquire(ctx context.Context, playerID string, create bool) (*Lease, error) {
	for {
		e, err := r.lookup(playerID, create)
		if err != nil {
			return nil, err
		}
		select {
		case e.sem <- struct{}{}:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		// The slot may have been cleared or reaped while we waited.
		r.mu.RLock()
		cur, ok := r.entries.Get(playerID)
		r.mu.RUnlock()
		if ok && cur.(*entry) == e {
			return &Lease{reg: r, playerID: playerID, e: e}, nil
		}
		<-e.sem
	}
}

func (r *Registry) lookup(playerID string, create bool) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.entries.Get(playerID); ok {
		return v.(*entry), nil
	}
	if !create {
		return nil, entity.ErrSessionNotFound
	}
	e := &entry{
		sem:        make(chan struct{}, 1),
		lastActive: r.clock.Now(),
	}
	r.entries.Put(playerID, e)
	return e, nil
}

// Clear drops the player's slot. A lease already held stays valid until released.
func (r *Registry) Clear(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries.Remove(playerID)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries.Size()
}

// Reap evicts slots idle for at least ttl and returns how many went. Slots with
// an action in flight are skipped. Rounds still owing money go through the
// evict hook first and stay put when it fails.
func (r *Registry) Reap(ctx context.Context, ttl time.Duration) int {
	now := r.clock.Now()
	type victim struct {
		playerID string
		e        *entry
	}
	var victims []victim

	r.mu.Lock()
	it := r.entries.Iterator()
	for it.Next() {
		e := it.Value().(*entry)
		select {
		case e.sem <- struct{}{}:
		default:
			continue
		}
		if now.Sub(e.lastActive) < ttl {
			<-e.sem
			continue
		}
		victims = append(victims, victim{playerID: it.Key().(string), e: e})
	}
	onEvict := r.onEvict
	r.mu.Unlock()

	evicted := 0
	for _, v := range victims {
		if v.e.round != nil && v.e.round.Owing() && onEvict != nil {
			if err := onEvict(ctx, v.playerID, v.e.round); err != nil {
				r.logger.Warn("keeping idle session", zap.String("player_id", v.playerID), zap.Error(err))
				<-v.e.sem
				continue
			}
		}
		r.mu.Lock()
		if cur, ok := r.entries.Get(v.playerID); ok && cur == v.e {
			r.entries.Remove(v.playerID)
		}
		r.mu.Unlock()
		<-v.e.sem
		evicted++
		r.logger.Info("reaped idle session", zap.String("player_id", v.playerID))
	}
	return evicted
}

// Run reaps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval, ttl time.Duration) error {
	w := r.clock.TickerFunc(ctx, interval, func() error {
		if n := r.Reap(ctx, ttl); n > 0 {
			r.logger.Debug("reaper pass", zap.Int("evicted", n))
		}
		return nil
	}, "registry", "reap")
	return w.Wait()
}
