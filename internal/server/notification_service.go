package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nattapong/sarakham-jobs/internal/db"
)

// NotificationStore is the slice of the database the notification service
// needs.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *db.Notification) (*db.Notification, error)
	ListNotifications(ctx context.Context, userID uuid.UUID) ([]db.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

// NotificationService persists notifications and pushes them to live streams.
type NotificationService struct {
	store  NotificationStore
	hub    *EventHub
	logger *zap.Logger
}

// NewNotificationService creates a notification service.
func NewNotificationService(store NotificationStore, hub *EventHub, logger *zap.Logger) *NotificationService {
	return &NotificationService{store: store, hub: hub, logger: logger}
}

// Notify stores a notification and publishes it to the user's open streams.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, title, message string, typ db.NotificationType) error {
	created, err := s.store.CreateNotification(ctx, &db.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
	})
	if err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	s.hub.Publish(userID, *created)
	return nil
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]db.Notification, error) {
	return s.store.ListNotifications(ctx, userID)
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	ok, err := s.store.MarkNotificationRead(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

// Subscribe opens a live stream of the user's notifications.
func (s *NotificationService) Subscribe(userID uuid.UUID) (<-chan db.Notification, func()) {
	return s.hub.Subscribe(userID)
}
