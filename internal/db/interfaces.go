package db

import (
	"context"
	"time"

	"matchday-backend-go/internal/models"
)

// UserRepository stores user documents keyed by email.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, statusFilter models.UserStatus) ([]*models.User, error)
	GetByJerseyNumber(ctx context.Context, number int) (*models.User, error)
}

// TournamentRepository stores tournament documents.
type TournamentRepository interface {
	Create(ctx context.Context, t *models.Tournament) (string, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context) ([]*models.Tournament, error)
	Update(ctx context.Context, t *models.Tournament) error
}

// MatchRepository stores match documents.
type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) (string, error)
	GetByID(ctx context.Context, id string) (*models.Match, error)
	List(ctx context.Context) ([]*models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	// SetStatus updates the status field alone; a nil votingDeadline deletes
	// the deadline field from the document.
	SetStatus(ctx context.Context, id string, status models.MatchStatus, votingDeadline *time.Time) error
}

// VoteRepository stores one availability document per match, keyed by match
// ID, with a map of entries keyed by user email.
type VoteRepository interface {
	// Upsert writes a single user's entry using a field-path-scoped merge so
	// concurrent voters on different keys never clobber each other.
	Upsert(ctx context.Context, matchID, email string, entry models.VoteEntry) error
	// GetByMatch returns the vote document, or an empty entry map when no one
	// has voted yet.
	GetByMatch(ctx context.Context, matchID string) (*models.MatchVotes, error)
}

// SelectionRepository stores one team selection per match, keyed by match ID.
type SelectionRepository interface {
	Save(ctx context.Context, selection *models.TeamSelection) error
	GetByMatch(ctx context.Context, matchID string) (*models.TeamSelection, error)
}

// PaymentRepository stores payment requests and per-match summaries. The
// request status change and the summary counter adjustment are applied inside
// one transaction so the counters cannot drift from the request set.
type PaymentRepository interface {
	// CreateBatch writes the requests and the seeded summary transactionally;
	// it fails with ErrAlreadyExists when the match already has a summary.
	CreateBatch(ctx context.Context, requests []*models.PaymentRequest, summary *models.MatchPaymentSummary) error
	GetRequestByID(ctx context.Context, id string) (*models.PaymentRequest, error)
	GetRequestsByMatch(ctx context.Context, matchID string) ([]*models.PaymentRequest, error)
	GetRequestsByUser(ctx context.Context, email string) ([]*models.PaymentRequest, error)
	GetSummaryByMatch(ctx context.Context, matchID string) (*models.MatchPaymentSummary, error)
	// UpdateRequestAndSummary reads the request and its match summary in a
	// transaction, applies mutate to both, and writes them back atomically.
	// Returning an error from mutate aborts the transaction unchanged.
	UpdateRequestAndSummary(ctx context.Context, requestID string, mutate func(req *models.PaymentRequest, sum *models.MatchPaymentSummary) error) error
	// UpdateRequest writes the request document alone (proof attachment).
	UpdateRequest(ctx context.Context, req *models.PaymentRequest) error
}

// ActivityRepository appends activity-log entries.
type ActivityRepository interface {
	Create(ctx context.Context, entry models.ActivityLog) error
}
