package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"matchday-backend-go/internal/models"
)

const tournamentsCollection = "tournaments"

type firestoreTournamentRepository struct {
	client *firestore.Client
}

// NewFirestoreTournamentRepository creates a new Firestore-backed tournament repository.
func NewFirestoreTournamentRepository(client *firestore.Client) TournamentRepository {
	return &firestoreTournamentRepository{client: client}
}

func (r *firestoreTournamentRepository) Create(ctx context.Context, t *models.Tournament) (string, error) {
	docRef := r.client.Collection(tournamentsCollection).NewDoc()
	t.ID = docRef.ID
	if _, err := docRef.Create(ctx, t); err != nil {
		return "", fmt.Errorf("failed to create tournament: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	if id == "" {
		return nil, errors.New("tournament ID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(tournamentsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("tournament '%s': %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tournament '%s': %w", id, err)
	}
	var t models.Tournament
	if err := docSnap.DataTo(&t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament data for '%s': %w", id, err)
	}
	t.ID = docSnap.Ref.ID
	return &t, nil
}

func (r *firestoreTournamentRepository) List(ctx context.Context) ([]*models.Tournament, error) {
	iter := r.client.Collection(tournamentsCollection).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var tournaments []*models.Tournament
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate tournaments: %w", err)
		}
		var t models.Tournament
		if err := doc.DataTo(&t); err != nil {
			return nil, fmt.Errorf("failed to decode tournament data (ID: %s): %w", doc.Ref.ID, err)
		}
		t.ID = doc.Ref.ID
		tournaments = append(tournaments, &t)
	}
	return tournaments, nil
}

func (r *firestoreTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	if t.ID == "" {
		return errors.New("tournament ID cannot be empty for Update operation")
	}
	if _, err := r.client.Collection(tournamentsCollection).Doc(t.ID).Set(ctx, t); err != nil {
		return fmt.Errorf("failed to update tournament '%s': %w", t.ID, err)
	}
	return nil
}
