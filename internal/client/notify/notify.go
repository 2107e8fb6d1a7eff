// Package notify is the transient-message queue. Error toasts stay until
// dismissed; success and info toasts auto-expire. The core reports session
// invalidation through this queue but never depends on it for correctness.
package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/dkrasnova/brandkit/internal/client/signal"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Toast is one queued message.
type Toast struct {
	ID          string
	Severity    Severity
	Message     string
	AutoDismiss bool
}

const (
	dismissAfter = 4 * time.Second
	maxVisible   = 3
)

// Queue holds pending toasts. Fire-and-forget: enqueuing never fails and
// never blocks.
type Queue struct {
	toasts *signal.Cell[[]Toast]

	// test seam around time.AfterFunc
	schedule func(d time.Duration, f func())
}

func NewQueue() *Queue {
	return &Queue{
		toasts: signal.NewCell([]Toast{}),
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// All exposes the full queue.
func (q *Queue) All() signal.Signal[[]Toast] { return signal.ReadOnly(q.toasts) }

// Visible returns the most recent toasts, capped for display.
func (q *Queue) Visible() []Toast {
	all := q.toasts.Get()
	if len(all) <= maxVisible {
		return all
	}
	return all[len(all)-maxVisible:]
}

// Success enqueues an auto-dismissing success toast.
func (q *Queue) Success(message string) string {
	return q.push(SeveritySuccess, message, true)
}

// Info enqueues an auto-dismissing info toast.
func (q *Queue) Info(message string) string {
	return q.push(SeverityInfo, message, true)
}

// Error enqueues a persistent error toast. Errors never auto-dismiss.
func (q *Queue) Error(message string) string {
	return q.push(SeverityError, message, false)
}

// Enqueue adds a toast of the given severity, for callers holding only the
// collaborator contract.
func (q *Queue) Enqueue(severity Severity, message string) string {
	switch severity {
	case SeverityError:
		return q.Error(message)
	case SeverityInfo:
		return q.Info(message)
	default:
		return q.Success(message)
	}
}

// Dismiss removes the toast with the given id; unknown ids are a no-op.
func (q *Queue) Dismiss(id string) {
	q.toasts.Update(func(all []Toast) []Toast {
		out := make([]Toast, 0, len(all))
		for _, t := range all {
			if t.ID != id {
				out = append(out, t)
			}
		}
		return out
	})
}

func (q *Queue) push(severity Severity, message string, autoDismiss bool) string {
	id := uuid.New().String()
	t := Toast{ID: id, Severity: severity, Message: message, AutoDismiss: autoDismiss}

	q.toasts.Update(func(all []Toast) []Toast {
		return append(append([]Toast(nil), all...), t)
	})

	if autoDismiss {
		q.schedule(dismissAfter, func() { q.Dismiss(id) })
	}
	return id
}
