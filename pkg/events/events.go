package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	PostCreated    = "post.created"
	PostDeleted    = "post.deleted"
	PostShared     = "post.shared"
	StoryCreated   = "story.created"
	ViewInvalidate = "views.invalidate"
)

// HomeView is the path of the home timeline.
const HomeView = "/"

// Publisher is satisfied by *NatsConn.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Envelope wraps every payload published on the bus.
type Envelope struct {
	ID         string          `json:"id"`
	Subject    string          `json:"subject"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type PostEvent struct {
	PostID uint   `json:"post_id"`
	UserID string `json:"user_id"`
}

type ShareEvent struct {
	ShareID uint   `json:"share_id"`
	PostID  uint   `json:"post_id"`
	UserID  string `json:"user_id"`
}

type StoryEvent struct {
	StoryID   uint      `json:"story_id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type InvalidationEvent struct {
	Path string `json:"path"`
}

// Bus publishes domain events and view invalidations. With a nil
// publisher events are only logged.
type Bus struct {
	pub Publisher
	log *logrus.Entry
	now func() time.Time
}

func NewBus(pub Publisher, log *logrus.Entry) *Bus {
	return &Bus{pub: pub, log: log, now: time.Now}
}

// Emit publishes payload on subject. Failures are logged and never
// returned: the action that produced the event has already committed.
func (b *Bus) Emit(ctx context.Context, subject string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		b.log.WithError(err).WithField("subject", subject).Error("failed to encode event")
		return
	}
	env := Envelope{
		ID:         uuid.NewString(),
		Subject:    subject,
		OccurredAt: b.now().UTC(),
		Payload:    raw,
	}
	data, err := json.Marshal(env)
	if err != nil {
		b.log.WithError(err).WithField("subject", subject).Error("failed to encode envelope")
		return
	}

	entry := b.log.WithFields(logrus.Fields{"subject": subject, "event_id": env.ID})
	if b.pub == nil {
		entry.Debug("event (no broker configured)")
		return
	}
	if err := b.pub.Publish(subject, data); err != nil {
		entry.WithError(err).Warn("failed to publish event")
		return
	}
	entry.Debug("published event")
}

// Invalidate signals that the named view must be re-rendered.
func (b *Bus) Invalidate(ctx context.Context, path string) {
	b.Emit(ctx, ViewInvalidate, InvalidationEvent{Path: path})
}
