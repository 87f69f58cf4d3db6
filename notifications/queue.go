package notifications

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwdavis0200/TaskFlow-sub001/services"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// DefaultLimit is how many notifications may be visible at once.
const DefaultLimit = 3

// defaultDuration is the auto-dismiss delay per severity.
func defaultDuration(severity Severity) time.Duration {
	switch severity {
	case SeverityWarning:
		return 5 * time.Second
	case SeverityError:
		return 6 * time.Second
	}
	return 4 * time.Second
}

type Notification struct {
	ID        string        `json:"id"`
	Message   string        `json:"message"`
	Severity  Severity      `json:"severity"`
	Dismissed bool          `json:"dismissed"`
	CreatedAt time.Time     `json:"createdAt"`
	Duration  time.Duration `json:"duration"`
}

// Queue is a bounded set of user-facing notifications. When full, admitting a
// new notification evicts the longest-resident one regardless of severity.
// Every notification auto-dismisses after its duration unless dismissed first.
type Queue struct {
	mu     sync.Mutex
	limit  int
	clock  Clock
	active []*Notification
	timers map[string]Timer
	sink   func(Notification)
}

// NewQueue builds a queue showing at most limit notifications at once.
// A limit below 1 falls back to DefaultLimit.
func NewQueue(limit int, clock Clock) *Queue {
	if limit < 1 {
		limit = DefaultLimit
	}
	if clock == nil {
		clock = RealClock()
	}
	return &Queue{
		limit:  limit,
		clock:  clock,
		timers: make(map[string]Timer),
	}
}

// OnShow registers a sink invoked for every admitted notification, outside
// the queue lock.
func (q *Queue) OnShow(sink func(Notification)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sink = sink
}

// Show admits a notification with the severity's default expiry and returns
// its id.
func (q *Queue) Show(message string, severity Severity) string {
	return q.ShowFor(message, severity, defaultDuration(severity))
}

// ShowFor admits a notification with an explicit expiry. If the queue is at
// its limit the oldest active notification is evicted first.
func (q *Queue) ShowFor(message string, severity Severity, duration time.Duration) string {
	if duration <= 0 {
		duration = defaultDuration(severity)
	}

	n := Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Severity:  severity,
		CreatedAt: q.clock.Now(),
		Duration:  duration,
	}

	q.mu.Lock()
	for len(q.active) >= q.limit {
		q.removeLocked(q.active[0].ID)
	}
	q.active = append(q.active, &n)
	id := n.ID
	q.timers[id] = q.clock.AfterFunc(duration, func() {
		q.expire(id)
	})
	sink := q.sink
	q.mu.Unlock()

	if sink != nil {
		sink(n)
	}
	return id
}

func (q *Queue) expire(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, n := range q.active {
		if n.ID == id {
			n.Dismissed = true
		}
	}
	q.removeLocked(id)
}

// Dismiss removes a notification immediately, cancelling its expiry timer.
// Unknown or already-removed ids are a no-op.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.removeLocked(id)
}

// DismissAll clears every active notification and cancels all timers.
func (q *Queue) DismissAll() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, n := range q.active {
		if t, ok := q.timers[n.ID]; ok {
			t.Stop()
			delete(q.timers, n.ID)
		}
	}
	q.active = q.active[:0]
}

// removeLocked drops one notification and cancels its timer. Idempotent.
func (q *Queue) removeLocked(id string) {
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	for i, n := range q.active {
		if n.ID == id {
			q.active = append(q.active[:i], q.active[i+1:]...)
			return
		}
	}
}

// Active returns the visible notifications in insertion order.
func (q *Queue) Active() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notification, len(q.active))
	for i, n := range q.active {
		out[i] = *n
	}
	return out
}

// HandleError maps an operation error to a human-readable message and shows
// it with error severity, returning the notification id. This is the terminal
// sink for user-visible failures.
func (q *Queue) HandleError(err error, operationLabel string) string {
	return q.Show(messageForError(err, operationLabel), SeverityError)
}

func messageForError(err error, operationLabel string) string {
	if err == nil {
		return "Failed to " + operationLabel
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "permission denied"), strings.Contains(lower, "forbidden"):
		return "You don't have permission to perform this action."
	case errors.Is(err, services.ErrNotFound):
		return "This item no longer exists. It may have been deleted."
	case strings.Contains(lower, "unauthenticated"), strings.Contains(lower, "unauthorized"):
		return "You need to sign in to continue."
	case strings.Contains(lower, "network"), strings.Contains(lower, "connection"), strings.Contains(lower, "timeout"):
		return "Connection problem. Please check your network and try again."
	case msg != "":
		return msg
	}
	return "Failed to " + operationLabel
}
