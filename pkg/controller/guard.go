package controller

import (
	"sync"
	"sync/atomic"
)

// Guard admits one submission at a time. TryAcquire never blocks.
type Guard interface {
	TryAcquire() (release func(), ok bool)
}

type flagGuard struct {
	busy atomic.Bool
}

// NewGuard returns a Guard local to one controller.
func NewGuard() Guard {
	return &flagGuard{}
}

func (g *flagGuard) TryAcquire() (func(), bool) {
	if !g.busy.CompareAndSwap(false, true) {
		return nil, false
	}
	var once sync.Once
	return func() { once.Do(func() { g.busy.Store(false) }) }, true
}

// KeyedGuards hands out guards shared by key, so separate requests carrying
// the same submission token exclude each other. Idle keys are dropped.
type KeyedGuards struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewKeyedGuards constructs an empty registry.
func NewKeyedGuards() *KeyedGuards {
	return &KeyedGuards{inFlight: make(map[string]struct{})}
}

// For returns the guard for key. An empty key yields an independent guard.
func (k *KeyedGuards) For(key string) Guard {
	if key == "" {
		return NewGuard()
	}
	return keyedGuard{owner: k, key: key}
}

// Pending reports how many keys currently hold a submission.
func (k *KeyedGuards) Pending() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.inFlight)
}

type keyedGuard struct {
	owner *KeyedGuards
	key   string
}

func (g keyedGuard) TryAcquire() (func(), bool) {
	k := g.owner
	k.mu.Lock()
	defer k.mu.Unlock()

	if _, busy := k.inFlight[g.key]; busy {
		return nil, false
	}
	k.inFlight[g.key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			k.mu.Lock()
			delete(k.inFlight, g.key)
			k.mu.Unlock()
		})
	}, true
}
