package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/pokedex/internal/state"
)

var (
	// ErrUnknownEndpoint is returned when a key names an unregistered endpoint.
	ErrUnknownEndpoint = errors.New("unknown endpoint")
	// ErrUnsubscribed is returned by Fetch when its subscription closes early.
	ErrUnsubscribed = errors.New("subscription closed")
)

// Cache issues GET requests keyed by Key, runs at most one request per key at a
// time and publishes every status transition to the key's subscribers and to
// the state store. A failed key stays failed until Invalidate.
type Cache struct {
	ctx       context.Context
	fetcher   Fetcher
	store     *state.Store
	endpoints map[string]Endpoint
	log       *zap.SugaredLogger
	now       func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	nextSub uint64
}

type entry struct {
	key    Key
	status state.Status
	// inFlight is set while the key's request runs. It is the only gate on
	// starting a request, so a key never has two.
	inFlight bool
	// stale marks an in-flight result that must be thrown away because the
	// key was invalidated while the request was running.
	stale bool
	subs  map[uint64]*Subscription
}

// Option customises a Cache.
type Option func(*Cache)

// WithLogger attaches a logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// WithContext sets the context every fetch runs under. Cancelling it aborts
// in-flight requests, which then finish in the Error phase.
func WithContext(ctx context.Context) Option {
	return func(c *Cache) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithStore publishes statuses into store instead of a private one.
func WithStore(store *state.Store) Option {
	return func(c *Cache) {
		if store != nil {
			c.store = store
		}
	}
}

// New creates a Cache serving the given endpoints through fetcher.
func New(fetcher Fetcher, endpoints []Endpoint, opts ...Option) *Cache {
	c := &Cache{
		ctx:       context.Background(),
		fetcher:   fetcher,
		store:     &state.Store{},
		endpoints: make(map[string]Endpoint, len(endpoints)),
		log:       zap.NewNop().Sugar(),
		now:       time.Now,
		entries:   make(map[string]*entry),
	}
	for _, ep := range endpoints {
		c.endpoints[ep.Name] = ep
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the state store the cache publishes to.
func (c *Cache) Store() *state.Store {
	return c.store
}

// Subscribe registers interest in key. The first subscriber of a key without
// an entry moves it to Loading and starts the request; later subscribers
// share that entry. The subscription's channel receives the current status
// right away.
func (c *Cache) Subscribe(key Key) (*Subscription, error) {
	if _, ok := c.endpoints[key.Endpoint]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEndpoint, key.Endpoint)
	}
	id := key.String()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		e = &entry{key: key, subs: make(map[uint64]*Subscription)}
		c.entries[id] = e
	}
	c.nextSub++
	sub := &Subscription{
		id:    c.nextSub,
		key:   key,
		ch:    make(chan state.Status, 1),
		cache: c,
	}
	e.subs[sub.id] = sub

	if e.status.Phase == state.Uninitialized && !e.inFlight {
		c.startLocked(id, e)
	}
	sub.deliver(e.status)
	return sub, nil
}

// Invalidate forgets the result for key. Subscribed keys are fetched again;
// unsubscribed keys return to Uninitialized. A request already in flight is
// not duplicated: its result is dropped and a single refetch follows.
func (c *Cache) Invalidate(key Key) {
	id := key.String()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return
	}
	if e.inFlight {
		e.stale = true
		return
	}
	if len(e.subs) == 0 {
		delete(c.entries, id)
		c.store.Delete(id)
		return
	}
	c.startLocked(id, e)
	c.publishLocked(e)
}

// Status returns the current status for key.
func (c *Cache) Status(key Key) state.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key.String()]; ok {
		return e.status
	}
	return state.Status{}
}

// Fetch subscribes to key and blocks until it reaches Success or Error, or ctx
// ends. It returns the payload of a successful query.
func (c *Cache) Fetch(ctx context.Context, key Key) (any, error) {
	sub, err := c.Subscribe(key)
	if err != nil {
		return nil, err
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case status, ok := <-sub.C():
			if !ok {
				return nil, ErrUnsubscribed
			}
			switch status.Phase {
			case state.Success:
				return status.Data, nil
			case state.Error:
				return nil, status.Err
			}
		}
	}
}

// startLocked moves e to Loading and launches its request. c.mu must be held.
func (c *Cache) startLocked(id string, e *entry) {
	e.inFlight = true
	e.stale = false
	e.status = state.Status{Phase: state.Loading, UpdatedAt: c.now()}
	c.store.Set(id, e.status)
	go c.run(id, e.key)
}

func (c *Cache) run(id string, key Key) {
	flight := uuid.NewString()
	log := c.log.With("query", id, "flight", flight)
	started := c.now()
	log.Debugw("query started")

	data, err := c.execute(key)
	if err != nil {
		log.Warnw("query failed", "error", err, "elapsed", time.Since(started))
	} else {
		log.Infow("query succeeded", "elapsed", time.Since(started))
	}
	c.complete(id, data, err)
}

func (c *Cache) execute(key Key) (any, error) {
	ep := c.endpoints[key.Endpoint]
	req, err := ep.Build(key.Params)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", key.Endpoint, err)
	}
	body, err := c.fetcher.Get(c.ctx, req.Path, req.Query)
	if err != nil {
		return nil, err
	}
	return ep.Parse(body)
}

func (c *Cache) complete(id string, data any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return
	}
	e.inFlight = false

	if e.stale {
		if len(e.subs) == 0 {
			delete(c.entries, id)
			c.store.Delete(id)
			return
		}
		// Still Loading from the subscribers' point of view; no publish needed.
		c.startLocked(id, e)
		return
	}

	if err != nil {
		e.status = state.Status{Phase: state.Error, Err: err, UpdatedAt: c.now()}
	} else {
		e.status = state.Status{Phase: state.Success, Data: data, UpdatedAt: c.now()}
	}
	c.store.Set(id, e.status)
	c.publishLocked(e)
}

// publishLocked pushes e.status to every subscriber. Delivery never blocks,
// so holding c.mu keeps per-key transitions ordered for every subscriber.
func (c *Cache) publishLocked(e *entry) {
	for _, sub := range e.subs {
		sub.deliver(e.status)
	}
}

func (c *Cache) unsubscribe(sub *Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[sub.key.String()]; ok {
		delete(e.subs, sub.id)
	}
	close(sub.ch)
}
