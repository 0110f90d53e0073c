package store

import (
	"log"
	"sync"
	"time"
)

// DefaultAutosaveDelay matches the builder's one-second debounce window.
const DefaultAutosaveDelay = time.Second

// Autosaver debounces draft persistence: each Mark records the latest state
// and (re)schedules a flush, so rapid mutations coalesce into one write.
// The flush timer is cancelled and rescheduled on every Mark, and Flush
// forces the pending write immediately, making timing deterministic in tests.
type Autosaver struct {
	kv    *Store
	key   string
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	dirty   bool
	pending any
}

// NewAutosaver creates an autosaver writing to key with the given debounce
// delay. A non-positive delay uses the default.
func NewAutosaver(kv *Store, key string, delay time.Duration) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{kv: kv, key: key, delay: delay}
}

// Mark records state as the value to persist and schedules a flush after the
// debounce delay, cancelling any previously scheduled flush.
func (a *Autosaver) Mark(state any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = state
	a.dirty = true
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, func() {
		if err := a.Flush(); err != nil {
			log.Printf("[autosave] flush failed for %q: %v", a.key, err)
		}
	})
}

// Dirty reports whether a marked state is awaiting flush.
func (a *Autosaver) Dirty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dirty
}

// Flush writes the pending state now. It is a no-op when nothing is dirty.
func (a *Autosaver) Flush() error {
	a.mu.Lock()
	if !a.dirty {
		a.mu.Unlock()
		return nil
	}
	state := a.pending
	a.dirty = false
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()

	return a.kv.Save(a.key, state)
}

// Stop cancels any scheduled flush and discards the pending state.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.dirty = false
	a.pending = nil
}
