package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"matchday-backend-go/internal/models"
)

const activityLogsCollection = "activity_logs"

type firestoreActivityRepository struct {
	client *firestore.Client
}

// NewFirestoreActivityRepository creates a new Firestore-backed activity-log repository.
func NewFirestoreActivityRepository(client *firestore.Client) ActivityRepository {
	return &firestoreActivityRepository{client: client}
}

func (r *firestoreActivityRepository) Create(ctx context.Context, entry models.ActivityLog) error {
	docRef := r.client.Collection(activityLogsCollection).NewDoc()
	if _, err := docRef.Create(ctx, &entry); err != nil {
		return fmt.Errorf("failed to create activity log entry: %w", err)
	}
	return nil
}
