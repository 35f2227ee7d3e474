// Package notification stores in-app notifications that the web client reads in real time.
package notification

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/rs/zerolog/log"
)

type Writer interface {
	Write(ctx context.Context, notification *Notification) error
}

type FirestoreWriter struct {
	client *firestore.Client
}

func NewFirestoreWriter(ctx context.Context, firebaseApp *firebase.App) (*FirestoreWriter, error) {
	client, err := firebaseApp.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &FirestoreWriter{
		client: client,
	}, nil
}

// Write stores notification under its ID, or under a generated ID when it has none.
func (w *FirestoreWriter) Write(ctx context.Context, notification *Notification) error {
	collection := w.client.Collection(collectionNotifications)

	var ref *firestore.DocumentRef
	var err error
	if notification.ID != "" {
		ref = collection.Doc(notification.ID)
		_, err = ref.Set(ctx, notification.document())
	} else {
		ref, _, err = collection.Add(ctx, notification.document())
	}
	if err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}

	log.Info().
		Str("notification_id", ref.ID).
		Str("recipient_id", notification.RecipientID).
		Str("type", notification.Type).
		Msg("notification written")
	return nil
}

func (w *FirestoreWriter) Close() error {
	return w.client.Close()
}
