package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"matchday-backend-go/internal/models"
)

const matchesCollection = "matches"

type firestoreMatchRepository struct {
	client *firestore.Client
}

// NewFirestoreMatchRepository creates a new Firestore-backed match repository.
func NewFirestoreMatchRepository(client *firestore.Client) MatchRepository {
	return &firestoreMatchRepository{client: client}
}

func (r *firestoreMatchRepository) Create(ctx context.Context, match *models.Match) (string, error) {
	docRef := r.client.Collection(matchesCollection).NewDoc()
	match.ID = docRef.ID
	if _, err := docRef.Create(ctx, match); err != nil {
		return "", fmt.Errorf("failed to create match: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	if id == "" {
		return nil, errors.New("match ID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(matchesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("match '%s': %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get match '%s': %w", id, err)
	}
	var match models.Match
	if err := docSnap.DataTo(&match); err != nil {
		return nil, fmt.Errorf("failed to decode match data for '%s': %w", id, err)
	}
	match.ID = docSnap.Ref.ID
	return &match, nil
}

func (r *firestoreMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	iter := r.client.Collection(matchesCollection).OrderBy("date", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var matches []*models.Match
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate matches: %w", err)
		}
		var match models.Match
		if err := doc.DataTo(&match); err != nil {
			return nil, fmt.Errorf("failed to decode match data (ID: %s): %w", doc.Ref.ID, err)
		}
		match.ID = doc.Ref.ID
		matches = append(matches, &match)
	}
	return matches, nil
}

func (r *firestoreMatchRepository) Update(ctx context.Context, match *models.Match) error {
	if match.ID == "" {
		return errors.New("match ID cannot be empty for Update operation")
	}
	if _, err := r.client.Collection(matchesCollection).Doc(match.ID).Set(ctx, match); err != nil {
		return fmt.Errorf("failed to update match '%s': %w", match.ID, err)
	}
	return nil
}

// SetStatus updates only the status and votingDeadline fields. Passing a nil
// deadline deletes the field, which keeps the invariant that a deadline exists
// only while the match is in voting.
func (r *firestoreMatchRepository) SetStatus(ctx context.Context, id string, matchStatus models.MatchStatus, votingDeadline *time.Time) error {
	if id == "" {
		return errors.New("match ID cannot be empty for SetStatus operation")
	}
	deadlineValue := interface{}(firestore.Delete)
	if votingDeadline != nil {
		deadlineValue = *votingDeadline
	}
	_, err := r.client.Collection(matchesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(matchStatus)},
		{Path: "votingDeadline", Value: deadlineValue},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("match '%s': %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to set status for match '%s': %w", id, err)
	}
	return nil
}
