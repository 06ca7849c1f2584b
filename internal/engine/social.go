package engine

import (
	"context"

	"github.com/google/uuid"

	"velorace/internal/model"
)

// SendDirectMessage stores a message and notifies the recipient. Unknown
// sender or recipient is a no-op.
func (e *Engine) SendDirectMessage(ctx context.Context, senderID, recipientID, text string) error {
	return e.mutate(ctx, "sendDirectMessage", func(tx *txn) (outcome, error) {
		sender := tx.doc.UserByID(senderID)
		if sender == nil || tx.doc.UserByID(recipientID) == nil {
			return noop, nil
		}

		tx.doc.DirectMessages = append(tx.doc.DirectMessages, &model.DirectMessage{
			ID:          uuid.New().String(),
			SenderID:    senderID,
			RecipientID: recipientID,
			Text:        text,
			Timestamp:   tx.now,
		})
		tx.notify(recipientID, model.NotifyMessage, senderID, "New message from %s", sender.Username)
		return commit, nil
	})
}

// LikeFeedItem toggles the session user's like on a feed item.
func (e *Engine) LikeFeedItem(ctx context.Context, itemID string) error {
	return e.mutate(ctx, "likeFeedItem", func(tx *txn) (outcome, error) {
		u := tx.doc.CurrentUser()
		item := tx.doc.FeedItemByID(itemID)
		if u == nil || item == nil {
			return noop, nil
		}
		item.ToggleLike(u.ID)
		return commit, nil
	})
}

func (e *Engine) DismissNotification(ctx context.Context, id string) error {
	return e.mutate(ctx, "dismissNotification", func(tx *txn) (outcome, error) {
		for i, n := range tx.doc.Notifications {
			if n.ID == id {
				tx.doc.Notifications = append(tx.doc.Notifications[:i], tx.doc.Notifications[i+1:]...)
				return commit, nil
			}
		}
		return noop, nil
	})
}

func (e *Engine) MarkNotificationsRead(ctx context.Context, userID string) error {
	return e.mutate(ctx, "markNotificationsRead", func(tx *txn) (outcome, error) {
		changed := false
		for _, n := range tx.doc.Notifications {
			if n.UserID == userID && !n.Read {
				n.Read = true
				changed = true
			}
		}
		if !changed {
			return noop, nil
		}
		return commit, nil
	})
}
