// Package engine is the progression and economy service. It owns the
// document, serialises every mutating operation, persists the full document
// after each one and then notifies subscribers.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"velorace/internal/ledger"
	"velorace/internal/metrics"
	"velorace/internal/model"
	"velorace/internal/seed"
	"velorace/internal/store"
)

// StorageKey names the persisted document. Bump the suffix whenever the
// document shape changes so an older document is never decoded into it.
const StorageKey = "velorace_data_v5"

// ErrInvariant is returned when an operation would leave balances that do
// not reconcile. The operation is discarded.
var ErrInvariant = errors.New("balance invariant violated")

// Result is returned by operations that can be refused.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ok(format string, args ...any) Result {
	return Result{Success: true, Message: fmt.Sprintf(format, args...)}
}

func refused(format string, args ...any) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

// Change describes a committed operation.
type Change struct {
	Operation string    `json:"operation"`
	At        time.Time `json:"at"`
}

type Listener func(Change)

type subscription struct {
	id int
	fn Listener
}

type Option func(*Engine)

func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// WithClock overrides time.Now for timestamps and event dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithKey overrides StorageKey.
func WithKey(key string) Option {
	return func(e *Engine) {
		if key != "" {
			e.key = key
		}
	}
}

type Engine struct {
	store    store.Store
	key      string
	log      logrus.FieldLogger
	now      func() time.Time
	cravings []model.CravingItem

	// writeMu serialises mutations end to end, including notification.
	writeMu sync.Mutex

	mu     sync.RWMutex
	doc    *model.Document
	subs   []subscription
	nextID int
}

// New loads the document from st, seeding the sample dataset when none is
// stored yet.
func New(ctx context.Context, st store.Store, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:    st,
		key:      StorageKey,
		log:      logrus.StandardLogger(),
		now:      time.Now,
		cravings: seed.Cravings(),
	}
	for _, opt := range opts {
		opt(e)
	}

	data, err := st.Load(ctx, e.key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		doc := seed.Document(e.now())
		if err := e.persist(ctx, doc); err != nil {
			return nil, err
		}
		e.doc = doc
		e.log.WithField("key", e.key).Info("Seeded sample document")
	case err != nil:
		return nil, fmt.Errorf("load document: %w", err)
	default:
		doc, err := model.Decode(data)
		if err != nil {
			return nil, err
		}
		e.doc = doc
		e.log.WithFields(logrus.Fields{
			"key":   e.key,
			"users": len(doc.Users),
		}).Info("Loaded document")
	}

	return e, nil
}

// Snapshot returns a deep copy of the current document.
func (e *Engine) Snapshot() (*model.Document, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Clone()
}

// Cravings returns the shop menu.
func (e *Engine) Cravings() []model.CravingItem {
	out := make([]model.CravingItem, len(e.cravings))
	copy(out, e.cravings)
	return out
}

func (e *Engine) craving(id string) *model.CravingItem {
	for i := range e.cravings {
		if e.cravings[i].ID == id {
			return &e.cravings[i]
		}
	}
	return nil
}

// Subscribe registers fn for every committed change and returns a function
// that removes it. Listeners run synchronously and must not call mutating
// operations.
func (e *Engine) Subscribe(fn Listener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscription{id: id, fn: fn})
	metrics.SetSubscribers(len(e.subs))

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				break
			}
		}
		metrics.SetSubscribers(len(e.subs))
	}
}

func (e *Engine) persist(ctx context.Context, doc *model.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	if err := e.store.Save(ctx, e.key, data); err != nil {
		return fmt.Errorf("persist document: %w", err)
	}
	return nil
}

type outcome int

const (
	commit outcome = iota
	noop
	refuse
)

func (o outcome) label() string {
	switch o {
	case commit:
		return metrics.OutcomeCommitted
	case refuse:
		return metrics.OutcomeRefused
	default:
		return metrics.OutcomeNoop
	}
}

// txn is the working copy one operation mutates.
type txn struct {
	doc     *model.Document
	now     time.Time
	touched map[string]bool
}

func (tx *txn) touch(userID string) {
	tx.touched[userID] = true
}

func (tx *txn) notify(userID string, typ model.NotificationType, source string, format string, args ...any) {
	tx.doc.Notifications = append(tx.doc.Notifications, &model.Notification{
		ID:           uuid.New().String(),
		UserID:       userID,
		Type:         typ,
		Message:      fmt.Sprintf(format, args...),
		SourceUserID: source,
		Timestamp:    tx.now,
	})
}

func (tx *txn) post(userID string, payload model.FeedPayload) *model.FeedItem {
	item := &model.FeedItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		Timestamp: tx.now,
		Likes:     []string{},
		Comments:  []model.Comment{},
		Payload:   payload,
	}
	tx.doc.ActivityFeed = append(tx.doc.ActivityFeed, item)
	return item
}

// mutate runs fn against a clone of the document. Only a commit outcome
// whose touched users reconcile is persisted, swapped in and announced.
func (e *Engine) mutate(ctx context.Context, op string, fn func(tx *txn) (outcome, error)) error {
	start := time.Now()
	log := e.log.WithField("operation", op)

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.mu.RLock()
	doc, err := e.doc.Clone()
	e.mu.RUnlock()
	if err != nil {
		metrics.ObserveOperation(op, metrics.OutcomeFailed, time.Since(start))
		return err
	}

	tx := &txn{doc: doc, now: e.now(), touched: make(map[string]bool)}
	out, err := fn(tx)
	if err != nil {
		metrics.ObserveOperation(op, metrics.OutcomeFailed, time.Since(start))
		return err
	}
	if out != commit {
		if out == refuse {
			log.Info("Refused")
		}
		metrics.ObserveOperation(op, out.label(), time.Since(start))
		return nil
	}

	for userID := range tx.touched {
		if err := ledger.Reconcile(doc, userID); err != nil {
			metrics.ObserveOperation(op, metrics.OutcomeFailed, time.Since(start))
			log.WithError(err).Error("Discarding operation")
			return fmt.Errorf("%w: %v", ErrInvariant, err)
		}
	}

	if err := e.persist(ctx, doc); err != nil {
		metrics.ObserveOperation(op, metrics.OutcomeFailed, time.Since(start))
		log.WithError(err).Error("Failed to persist document")
		return err
	}

	e.mu.Lock()
	e.doc = doc
	subs := make([]subscription, len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	change := Change{Operation: op, At: tx.now}
	for _, s := range subs {
		s.fn(change)
	}

	metrics.ObserveOperation(op, metrics.OutcomeCommitted, time.Since(start))
	log.Debug("Committed")
	return nil
}
