package core

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"matchday-backend-go/internal/models"
)

// AuthAdmin is the slice of the Firebase Auth admin client the user service
// needs to keep custom claims in sync with user documents.
type AuthAdmin interface {
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
	SetCustomUserClaims(ctx context.Context, uid string, claims map[string]interface{}) error
}

// UserService handles registration, approval and role administration.
type UserService interface {
	// ValidateRegistration runs the registration checks without writing
	// anything; used by the pre-flight validate endpoint.
	ValidateRegistration(ctx context.Context, req models.RegisterRequest) error
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	GetByEmail(ctx context.Context, identity models.Identity, email string) (*models.User, error)
	List(ctx context.Context, identity models.Identity, statusFilter models.UserStatus) ([]*models.User, error)
	Approve(ctx context.Context, identity models.Identity, email string) (*models.User, error)
	Suspend(ctx context.Context, identity models.Identity, email string) (*models.User, error)
	SetRoles(ctx context.Context, identity models.Identity, email string, roles []models.Role) (*models.User, error)
}

// TournamentService handles tournament CRUD.
type TournamentService interface {
	Create(ctx context.Context, identity models.Identity, req models.CreateTournamentRequest) (*models.Tournament, error)
	GetByID(ctx context.Context, identity models.Identity, id string) (*models.Tournament, error)
	List(ctx context.Context, identity models.Identity) ([]*models.Tournament, error)
	Update(ctx context.Context, identity models.Identity, id string, req models.CreateTournamentRequest) (*models.Tournament, error)
}

// MatchService owns the match record and its status field.
type MatchService interface {
	Create(ctx context.Context, identity models.Identity, req models.SaveMatchRequest) (*models.Match, error)
	Update(ctx context.Context, identity models.Identity, id string, req models.SaveMatchRequest) (*models.Match, error)
	GetByID(ctx context.Context, identity models.Identity, id string) (*models.Match, error)
	List(ctx context.Context, identity models.Identity) ([]*models.Match, error)
	SetStatus(ctx context.Context, identity models.Identity, id string, req models.SetMatchStatusRequest) (*models.Match, error)
}

// VoteService records availability answers and computes tallies. One policy
// applies to every vote write: the match must be in voting and the deadline,
// when set, must not have passed.
type VoteService interface {
	Cast(ctx context.Context, identity models.Identity, matchID string, voteStatus models.VoteStatus) error
	Board(ctx context.Context, identity models.Identity, matchID string) ([]models.VoterEntry, models.VoteTally, error)
}

// SelectionService owns the roster attached to a match and the
// publish/recall transitions.
type SelectionService interface {
	Save(ctx context.Context, identity models.Identity, matchID string, req models.SaveSelectionRequest) (*models.TeamSelection, error)
	Publish(ctx context.Context, identity models.Identity, matchID string) error
	Recall(ctx context.Context, identity models.Identity, matchID string) error
	View(ctx context.Context, identity models.Identity, matchID string) (*models.TeamSelection, error)
	Candidates(ctx context.Context, identity models.Identity, matchID string) ([]models.SelectionCandidate, error)
}

// PaymentService drives the pending -> submitted -> verified/rejected
// lifecycle and keeps the match summary consistent.
type PaymentService interface {
	Initiate(ctx context.Context, identity models.Identity, req models.InitiatePaymentsRequest) (*models.MatchPaymentSummary, []*models.PaymentRequest, error)
	Submit(ctx context.Context, identity models.Identity, requestID string, req models.SubmitPaymentRequest) (*models.PaymentRequest, error)
	Verify(ctx context.Context, identity models.Identity, requestID string, req models.VerifyPaymentRequest) (*models.PaymentRequest, error)
	MyRequests(ctx context.Context, identity models.Identity) ([]*models.PaymentRequest, models.UserPaymentTotals, error)
	MatchPayments(ctx context.Context, identity models.Identity, matchID string) ([]*models.PaymentRequest, *models.MatchPaymentSummary, error)
	// ValidateProofUpload runs the attach-proof preconditions without writing
	// anything, so a rejected upload never reaches the storage bucket.
	ValidateProofUpload(ctx context.Context, identity models.Identity, requestID string) error
	AttachProof(ctx context.Context, identity models.Identity, requestID, proofURL string) (*models.PaymentRequest, error)
}

// ActivityService appends activity-log entries. Failures are logged and never
// fail the operation that triggered them.
type ActivityService interface {
	Record(ctx context.Context, entry models.ActivityLog)
}
