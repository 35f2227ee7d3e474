package notification

import (
	"time"
)

const (
	TypeEscrowHeld = "escrow_held"

	collectionNotifications = "notifications"
)

type Notification struct {
	// ID names the document. Writes with the same ID overwrite each other.
	ID          string
	RecipientID string
	Title       string
	Message     string
	Type        string
	ReferenceID string
	IsRead      bool
	CreatedAt   time.Time
}

func (n *Notification) document() map[string]interface{} {
	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return map[string]interface{}{
		"recipientID": n.RecipientID,
		"title":       n.Title,
		"message":     n.Message,
		"type":        n.Type,
		"referenceID": n.ReferenceID,
		"isRead":      n.IsRead,
		"createdAt":   createdAt,
	}
}
