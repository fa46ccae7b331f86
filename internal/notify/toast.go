// Package notify holds the ephemeral feedback layer: a toast queue and a
// yes/no confirmation prompt. It has no dependency on the other packages and
// is consumed by every view model surface.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ToastKind classifies a toast.
type ToastKind string

// Toast kinds.
const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
	ToastWarning ToastKind = "warning"
)

// defaultToastTTL is how long a toast stays visible without a manual dismiss.
const defaultToastTTL = 5 * time.Second

// Toast is one queued notification.
type Toast struct {
	ID      string
	Message string
	Kind    ToastKind
}

// ToastCenter is an append-only toast queue. Toasts keep insertion order,
// duplicates are not deduplicated, and each entry expires on its own timer
// or earlier on manual dismiss.
type ToastCenter struct {
	mu       sync.Mutex
	toasts   []Toast
	timers   map[string]*time.Timer
	ttl      time.Duration
	listener func(Toast)
}

// ToastOption configures a ToastCenter.
type ToastOption func(*ToastCenter)

// WithTTL overrides the auto-expiry delay.
func WithTTL(ttl time.Duration) ToastOption {
	return func(c *ToastCenter) { c.ttl = ttl }
}

// WithListener registers a callback invoked for every pushed toast, used by
// the terminal renderer.
func WithListener(listener func(Toast)) ToastOption {
	return func(c *ToastCenter) { c.listener = listener }
}

// NewToastCenter creates an empty toast queue.
func NewToastCenter(opts ...ToastOption) *ToastCenter {
	c := &ToastCenter{
		timers: make(map[string]*time.Timer),
		ttl:    defaultToastTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push appends a toast and schedules its expiry. Returns the toast ID.
func (c *ToastCenter) Push(message string, kind ToastKind) string {
	toast := Toast{ID: uuid.NewString(), Message: message, Kind: kind}

	c.mu.Lock()
	c.toasts = append(c.toasts, toast)
	c.timers[toast.ID] = time.AfterFunc(c.ttl, func() {
		c.Dismiss(toast.ID)
	})
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		listener(toast)
	}
	return toast.ID
}

// Success pushes a success toast.
func (c *ToastCenter) Success(message string) string { return c.Push(message, ToastSuccess) }

// Error pushes an error toast.
func (c *ToastCenter) Error(message string) string { return c.Push(message, ToastError) }

// Info pushes an info toast.
func (c *ToastCenter) Info(message string) string { return c.Push(message, ToastInfo) }

// Warning pushes a warning toast.
func (c *ToastCenter) Warning(message string) string { return c.Push(message, ToastWarning) }

// Dismiss removes a toast before its timer fires. Unknown IDs are ignored.
func (c *ToastCenter) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	for i, toast := range c.toasts {
		if toast.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
	}
}

// Active returns the currently queued toasts in insertion order.
func (c *ToastCenter) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}
