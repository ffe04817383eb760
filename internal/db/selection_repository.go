package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"matchday-backend-go/internal/models"
)

const selectionsCollection = "team_selections"

type firestoreSelectionRepository struct {
	client *firestore.Client
}

// NewFirestoreSelectionRepository creates a new Firestore-backed selection repository.
func NewFirestoreSelectionRepository(client *firestore.Client) SelectionRepository {
	return &firestoreSelectionRepository{client: client}
}

// Save overwrites the selection document wholesale; there is no partial update
// path for rosters.
func (r *firestoreSelectionRepository) Save(ctx context.Context, selection *models.TeamSelection) error {
	if selection.MatchID == "" {
		return errors.New("matchID cannot be empty for selection Save")
	}
	_, err := r.client.Collection(selectionsCollection).Doc(selection.MatchID).Set(ctx, selection)
	if err != nil {
		return fmt.Errorf("failed to save selection for match '%s': %w", selection.MatchID, err)
	}
	return nil
}

func (r *firestoreSelectionRepository) GetByMatch(ctx context.Context, matchID string) (*models.TeamSelection, error) {
	if matchID == "" {
		return nil, errors.New("matchID cannot be empty for selection GetByMatch")
	}
	docSnap, err := r.client.Collection(selectionsCollection).Doc(matchID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("selection for match '%s': %w", matchID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get selection for match '%s': %w", matchID, err)
	}

	var selection models.TeamSelection
	if err := docSnap.DataTo(&selection); err != nil {
		return nil, fmt.Errorf("failed to decode selection data for match '%s': %w", matchID, err)
	}
	selection.MatchID = docSnap.Ref.ID
	return &selection, nil
}
