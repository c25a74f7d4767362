// Package notify is the in-app toast center. Toasts auto-expire after a
// short TTL; a host view subscribes to render the active stack.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bhukyapavithra/Smart-Dairy-farm/pubsub"
)

const (
	// ToastTTL is how long a toast stays visible before auto-dismissing.
	ToastTTL = 5 * time.Second

	// sweepInterval is how often the background sweep runs.
	sweepInterval = 250 * time.Millisecond
)

// Level is the visual severity of a toast.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Toast is one transient message.
type Toast struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Center holds the currently visible toasts, oldest first.
type Center struct {
	bus *pubsub.Broadcaster[[]Toast]
	now func() time.Time

	mu     sync.RWMutex
	toasts []Toast

	stopSweep chan struct{}
	wg        sync.WaitGroup
}

// NewCenter starts a center with its background expiry sweep running.
func NewCenter() *Center {
	c := &Center{
		bus:       pubsub.New[[]Toast](),
		now:       time.Now,
		stopSweep: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.sweepLoop()

	return c
}

// Subscribe registers fn for every change to the visible stack.
func (c *Center) Subscribe(fn func([]Toast)) func() {
	return c.bus.Subscribe(fn)
}

// Show enqueues a toast and returns its id for manual dismissal.
func (c *Center) Show(level Level, message string) string {
	now := c.now()
	toast := Toast{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(ToastTTL),
	}

	c.mu.Lock()
	c.toasts = append(c.toasts, toast)
	active := c.activeLocked()
	c.mu.Unlock()

	c.bus.Publish(active)
	return toast.ID
}

// Success and friends are shorthands for the common levels.
func (c *Center) Success(message string) string { return c.Show(LevelSuccess, message) }
func (c *Center) Error(message string) string   { return c.Show(LevelError, message) }
func (c *Center) Info(message string) string    { return c.Show(LevelInfo, message) }
func (c *Center) Warning(message string) string { return c.Show(LevelWarning, message) }

// Dismiss removes a toast before its TTL runs out. Unknown ids are a no-op.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	removed := false
	for i, t := range c.toasts {
		if t.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			removed = true
			break
		}
	}
	active := c.activeLocked()
	c.mu.Unlock()

	if removed {
		c.bus.Publish(active)
	}
}

// Active returns the toasts still within their TTL, oldest first.
func (c *Center) Active() []Toast {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeLocked()
}

func (c *Center) activeLocked() []Toast {
	now := c.now()
	var active []Toast
	for _, t := range c.toasts {
		if t.ExpiresAt.After(now) {
			active = append(active, t)
		}
	}
	return active
}

// sweepLoop drops expired toasts and notifies subscribers when the visible
// stack shrinks.
func (c *Center) sweepLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stopSweep:
			return
		}
	}
}

func (c *Center) sweep() {
	now := c.now()

	c.mu.Lock()
	kept := c.toasts[:0]
	for _, t := range c.toasts {
		if t.ExpiresAt.After(now) {
			kept = append(kept, t)
		}
	}
	expired := len(c.toasts) - len(kept)
	c.toasts = kept
	active := c.activeLocked()
	c.mu.Unlock()

	if expired > 0 {
		c.bus.Publish(active)
	}
}

// Close stops the background sweep and waits for it to finish.
func (c *Center) Close() error {
	close(c.stopSweep)
	c.wg.Wait()
	return nil
}
