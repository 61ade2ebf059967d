package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TWRT/todo-client/internal/models"
)

const DefaultToastDuration = 3 * time.Second

// Notifier holds the toasts currently on screen. Toasts drop out once their
// duration has elapsed or when dismissed.
type Notifier struct {
	mu     sync.Mutex
	toasts []models.Toast
	now    func() time.Time
}

func NewNotifier(now func() time.Time) *Notifier {
	if now == nil {
		now = time.Now
	}
	return &Notifier{now: now}
}

// Add posts a toast. A non-positive duration uses DefaultToastDuration.
func (n *Notifier) Add(kind models.ToastType, message string, duration time.Duration) models.Toast {
	if duration <= 0 {
		duration = DefaultToastDuration
	}

	toast := models.Toast{
		Id:         uuid.NewString(),
		Type:       kind,
		Message:    message,
		DurationMs: duration.Milliseconds(),
		ExpiresAt:  n.now().Add(duration),
	}

	n.mu.Lock()
	n.toasts = append(n.toasts, toast)
	n.mu.Unlock()

	return toast
}

func (n *Notifier) Success(message string) models.Toast {
	return n.Add(models.ToastSuccess, message, 0)
}

func (n *Notifier) Error(message string) models.Toast {
	return n.Add(models.ToastError, message, 0)
}

func (n *Notifier) Info(message string) models.Toast {
	return n.Add(models.ToastInfo, message, 0)
}

// Remove dismisses a toast and reports whether it was still showing.
func (n *Notifier) Remove(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.pruneLocked()
	for i, t := range n.toasts {
		if t.Id == id {
			n.toasts = append(n.toasts[:i], n.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// Active returns the unexpired toasts, oldest first.
func (n *Notifier) Active() []models.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.pruneLocked()
	return append([]models.Toast{}, n.toasts...)
}

func (n *Notifier) pruneLocked() {
	now := n.now()
	kept := n.toasts[:0]
	for _, t := range n.toasts {
		if t.ExpiresAt.After(now) {
			kept = append(kept, t)
		}
	}
	n.toasts = kept
}
