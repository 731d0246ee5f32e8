package server

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nattapong/sarakham-jobs/internal/db"
)

func TestEventHubDeliversToSubscriber(t *testing.T) {
	hub := NewEventHub()
	userID := uuid.New()

	ch, cancel := hub.Subscribe(userID)
	defer cancel()

	hub.Publish(userID, db.Notification{Title: "สวัสดี"})

	select {
	case n := <-ch:
		assert.Equal(t, "สวัสดี", n.Title)
	default:
		t.Fatal("expected a buffered notification")
	}
}

func TestEventHubIsolatesUsers(t *testing.T) {
	hub := NewEventHub()
	ch, cancel := hub.Subscribe(uuid.New())
	defer cancel()

	hub.Publish(uuid.New(), db.Notification{Title: "ของคนอื่น"})

	select {
	case <-ch:
		t.Fatal("notification leaked across users")
	default:
	}
}

func TestEventHubCancelStopsDelivery(t *testing.T) {
	hub := NewEventHub()
	userID := uuid.New()

	ch, cancel := hub.Subscribe(userID)
	cancel()

	hub.Publish(userID, db.Notification{Title: "หลังยกเลิก"})

	select {
	case <-ch:
		t.Fatal("delivery after cancel")
	default:
	}
}

func TestSSEWriterFormat(t *testing.T) {
	rec := httptest.NewRecorder()

	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)
	require.NoError(t, sse.SendEvent("notification", map[string]string{"title": "x"}))
	require.NoError(t, sse.SendComment("keepalive"))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "event: notification\n")
	assert.Contains(t, body, `data: {"title":"x"}`)
	assert.Contains(t, body, ": keepalive\n")
}

type fakeNotificationStore struct {
	created []db.Notification
	read    map[uuid.UUID]bool
}

func (f *fakeNotificationStore) CreateNotification(_ context.Context, n *db.Notification) (*db.Notification, error) {
	cp := *n
	cp.ID = uuid.New()
	f.created = append(f.created, cp)
	return &cp, nil
}

func (f *fakeNotificationStore) ListNotifications(_ context.Context, userID uuid.UUID) ([]db.Notification, error) {
	var out []db.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkNotificationRead(_ context.Context, id, _ uuid.UUID) (bool, error) {
	return f.read[id], nil
}

func TestNotifyStoresAndPublishes(t *testing.T) {
	store := &fakeNotificationStore{read: map[uuid.UUID]bool{}}
	hub := NewEventHub()
	svc := NewNotificationService(store, hub, zap.NewNop())
	userID := uuid.New()

	ch, cancel := svc.Subscribe(userID)
	defer cancel()

	require.NoError(t, svc.Notify(context.Background(), userID, "หัวข้อ", "ข้อความ", db.NotifyInfo))

	require.Len(t, store.created, 1)
	select {
	case n := <-ch:
		assert.Equal(t, "หัวข้อ", n.Title)
		assert.NotEqual(t, uuid.Nil, n.ID)
	default:
		t.Fatal("expected a live notification")
	}
}

func TestMarkReadUnknownNotification(t *testing.T) {
	store := &fakeNotificationStore{read: map[uuid.UUID]bool{}}
	svc := NewNotificationService(store, NewEventHub(), zap.NewNop())

	err := svc.MarkRead(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}
