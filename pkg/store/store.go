package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	campus "github.com/goliatone/go-campus"
	"github.com/goliatone/go-campus/pkg/activity"
)

// Lifecycle verbs emitted through activity hooks.
const (
	VerbUpdated  = "state.updated"
	VerbReset    = "state.reset"
	VerbRestored = "state.restored"
)

// Option configures a Store.
type Option func(*config)

type config struct {
	storage Storage
	now     func() time.Time
	hooks   activity.Hooks
	channel string
}

// WithStorage wires the durable slot the store hydrates from and persists to.
func WithStorage(storage Storage) Option {
	return func(cfg *config) {
		cfg.storage = storage
	}
}

// WithNow overrides the time source used for defaults and event timestamps.
func WithNow(now func() time.Time) Option {
	return func(cfg *config) {
		if now != nil {
			cfg.now = now
		}
	}
}

// WithHooks subscribes hooks to state lifecycle events.
func WithHooks(hooks ...activity.Hook) Option {
	return func(cfg *config) {
		cfg.hooks = append(cfg.hooks, hooks...)
	}
}

// WithChannel overrides the default event channel.
func WithChannel(channel string) Option {
	return func(cfg *config) {
		cfg.channel = channel
	}
}

// Store holds the committed DomainState for the process. Mutation is
// serialized: every transform observes the latest committed state.
type Store struct {
	mu      sync.Mutex
	state   campus.DomainState
	storage Storage
	now     func() time.Time
	emitter *activity.Emitter
}

// New constructs a Store and hydrates it once. When the slot is empty,
// unreadable or unparsable the store silently starts from defaults;
// corrupted durable content must never block usage.
func New(opts ...Option) *Store {
	cfg := config{
		storage: NewMemoryStorage(),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	s := &Store{
		storage: cfg.storage,
		now:     cfg.now,
		emitter: activity.NewEmitter(cfg.hooks, activity.Config{
			Enabled: len(cfg.hooks) > 0,
			Channel: cfg.channel,
		}),
	}
	s.state = s.hydrate()
	return s
}

func (s *Store) hydrate() campus.DomainState {
	defaults := campus.DefaultState(s.now())
	raw, ok, err := s.storage.Load(context.Background())
	if err != nil || !ok {
		return defaults
	}
	return campus.Merge(defaults, raw)
}

// Read returns an isolated snapshot of the current state. Never fails.
func (s *Store) Read() campus.DomainState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return campus.Clone(s.state)
}

// Update applies transform to the latest committed state and commits the
// result atomically, then persists it best-effort. The committed snapshot is
// returned.
func (s *Store) Update(transform campus.Transform) campus.DomainState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if transform != nil {
		s.state = transform(campus.Clone(s.state))
	}
	persisted := s.persist()
	s.emit(VerbUpdated, map[string]any{"persisted": persisted})
	return campus.Clone(s.state)
}

// Reset replaces the state with a fresh default instance and clears the
// durable slot.
func (s *Store) Reset() campus.DomainState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = campus.DefaultState(s.now())
	_ = s.storage.Clear(context.Background())
	s.emit(VerbReset, nil)
	return campus.Clone(s.state)
}

// Restore completes candidate against fresh defaults via the merge policy
// and replaces the state wholesale. Validation belongs to the caller: once a
// candidate reaches here malformed values are absorbed, not rejected.
func (s *Store) Restore(candidate map[string]any) error {
	raw, err := json.Marshal(candidate)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = campus.Merge(campus.DefaultState(s.now()), raw)
	persisted := s.persist()
	s.emit(VerbRestored, map[string]any{"persisted": persisted})
	return nil
}

// persist writes the committed state to the slot. Failures are swallowed:
// in-memory state stays authoritative for the session.
func (s *Store) persist() bool {
	data, err := json.Marshal(s.state)
	if err != nil {
		return false
	}
	return s.storage.Save(context.Background(), data) == nil
}

func (s *Store) emit(verb string, metadata map[string]any) {
	if !s.emitter.Enabled() {
		return
	}
	_ = s.emitter.Emit(context.Background(), activity.Event{
		Verb:       verb,
		ObjectType: "domain-state",
		Metadata:   metadata,
		OccurredAt: s.now(),
	})
}
