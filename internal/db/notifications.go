package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Notification Methods
// -----------------------------------------------------------------------------

// CreateNotification inserts a notification for a user and returns it.
func (db *DB) CreateNotification(ctx context.Context, n *Notification) (*Notification, error) {
	var out Notification
	err := db.pool.QueryRow(ctx,
		`INSERT INTO notifications (user_id, title, message, type)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, title, message, type, is_read, created_at`,
		n.UserID, n.Title, n.Message, n.Type,
	).Scan(&out.ID, &out.UserID, &out.Title, &out.Message, &out.Type, &out.IsRead, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &out, nil
}

// ListNotifications retrieves a user's notifications, newest first.
func (db *DB) ListNotifications(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, title, message, type, is_read, created_at
		 FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifs []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifs = append(notifs, n)
	}
	return notifs, nil
}

// MarkNotificationRead flips is_read for a notification owned by the user.
// The owner check lives in the query so one user cannot mark another's rows.
// It reports whether a row matched.
func (db *DB) MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
