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

const votesCollection = "votes"

type firestoreVoteRepository struct {
	client *firestore.Client
}

// NewFirestoreVoteRepository creates a new Firestore-backed vote repository.
func NewFirestoreVoteRepository(client *firestore.Client) VoteRepository {
	return &firestoreVoteRepository{client: client}
}

// Upsert writes one user's entry under entries.<email> with a field-path
// merge. Two voters writing different keys concurrently both survive; a
// whole-document Set here would let one clobber the other.
func (r *firestoreVoteRepository) Upsert(ctx context.Context, matchID, email string, entry models.VoteEntry) error {
	if matchID == "" || email == "" {
		return errors.New("matchID and email are required for vote Upsert")
	}
	_, err := r.client.Collection(votesCollection).Doc(matchID).Set(ctx,
		map[string]interface{}{
			"entries": map[string]models.VoteEntry{email: entry},
		},
		firestore.Merge(firestore.FieldPath{"entries", email}),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert vote for '%s' on match '%s': %w", email, matchID, err)
	}
	return nil
}

// GetByMatch returns the vote document for a match. A match nobody has voted
// on yet yields an empty entry map rather than an error.
func (r *firestoreVoteRepository) GetByMatch(ctx context.Context, matchID string) (*models.MatchVotes, error) {
	if matchID == "" {
		return nil, errors.New("matchID cannot be empty for GetByMatch operation")
	}
	docSnap, err := r.client.Collection(votesCollection).Doc(matchID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &models.MatchVotes{MatchID: matchID, Entries: map[string]models.VoteEntry{}}, nil
		}
		return nil, fmt.Errorf("failed to get votes for match '%s': %w", matchID, err)
	}

	var votes models.MatchVotes
	if err := docSnap.DataTo(&votes); err != nil {
		return nil, fmt.Errorf("failed to decode vote data for match '%s': %w", matchID, err)
	}
	votes.MatchID = docSnap.Ref.ID
	if votes.Entries == nil {
		votes.Entries = map[string]models.VoteEntry{}
	}
	return &votes, nil
}
