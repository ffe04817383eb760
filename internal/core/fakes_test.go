package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"

	"matchday-backend-go/internal/db"
	"matchday-backend-go/internal/models"
)

// In-memory repository fakes shared by the service tests.

func approvedIdentity(email string, roles ...models.Role) models.Identity {
	return models.Identity{
		UID:    "uid-" + email,
		Email:  email,
		Roles:  roles,
		Status: models.UserStatusApproved,
	}
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("user '%s': %w", email, db.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.Email]; ok {
		return fmt.Errorf("user '%s': %w", user.Email, db.ErrAlreadyExists)
	}
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, statusFilter models.UserStatus) ([]*models.User, error) {
	var users []*models.User
	for _, user := range r.users {
		if statusFilter != "" && user.UserStatus != statusFilter {
			continue
		}
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

func (r *fakeUserRepo) GetByJerseyNumber(_ context.Context, number int) (*models.User, error) {
	for _, user := range r.users {
		if user.JerseyNumber == number && user.UserStatus != models.UserStatusSuspended {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("jersey number %d: %w", number, db.ErrNotFound)
}

type fakeTournamentRepo struct {
	tournaments map[string]*models.Tournament
	nextID      int
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{tournaments: map[string]*models.Tournament{}}
}

func (r *fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) (string, error) {
	r.nextID++
	t.ID = fmt.Sprintf("tournament-%d", r.nextID)
	copied := *t
	r.tournaments[t.ID] = &copied
	return t.ID, nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id string) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, fmt.Errorf("tournament '%s': %w", id, db.ErrNotFound)
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTournamentRepo) List(_ context.Context) ([]*models.Tournament, error) {
	var tournaments []*models.Tournament
	for _, t := range r.tournaments {
		copied := *t
		tournaments = append(tournaments, &copied)
	}
	return tournaments, nil
}

func (r *fakeTournamentRepo) Update(_ context.Context, t *models.Tournament) error {
	copied := *t
	r.tournaments[t.ID] = &copied
	return nil
}

type fakeMatchRepo struct {
	matches map[string]*models.Match
	nextID  int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: map[string]*models.Match{}}
}

func (r *fakeMatchRepo) Create(_ context.Context, match *models.Match) (string, error) {
	r.nextID++
	match.ID = fmt.Sprintf("match-%d", r.nextID)
	copied := *match
	r.matches[match.ID] = &copied
	return match.ID, nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id string) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, fmt.Errorf("match '%s': %w", id, db.ErrNotFound)
	}
	copied := *match
	return &copied, nil
}

func (r *fakeMatchRepo) List(_ context.Context) ([]*models.Match, error) {
	var matches []*models.Match
	for _, match := range r.matches {
		copied := *match
		matches = append(matches, &copied)
	}
	return matches, nil
}

func (r *fakeMatchRepo) Update(_ context.Context, match *models.Match) error {
	copied := *match
	r.matches[match.ID] = &copied
	return nil
}

func (r *fakeMatchRepo) SetStatus(_ context.Context, id string, status models.MatchStatus, votingDeadline *time.Time) error {
	match, ok := r.matches[id]
	if !ok {
		return fmt.Errorf("match '%s': %w", id, db.ErrNotFound)
	}
	match.Status = status
	match.VotingDeadline = votingDeadline
	return nil
}

type fakeVoteRepo struct {
	votes map[string]*models.MatchVotes
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: map[string]*models.MatchVotes{}}
}

func (r *fakeVoteRepo) Upsert(_ context.Context, matchID, email string, entry models.VoteEntry) error {
	doc, ok := r.votes[matchID]
	if !ok {
		doc = &models.MatchVotes{MatchID: matchID, Entries: map[string]models.VoteEntry{}}
		r.votes[matchID] = doc
	}
	doc.Entries[email] = entry
	return nil
}

func (r *fakeVoteRepo) GetByMatch(_ context.Context, matchID string) (*models.MatchVotes, error) {
	doc, ok := r.votes[matchID]
	if !ok {
		return &models.MatchVotes{MatchID: matchID, Entries: map[string]models.VoteEntry{}}, nil
	}
	entries := make(map[string]models.VoteEntry, len(doc.Entries))
	for k, v := range doc.Entries {
		entries[k] = v
	}
	return &models.MatchVotes{MatchID: matchID, Entries: entries}, nil
}

type fakeSelectionRepo struct {
	selections map[string]*models.TeamSelection
}

func newFakeSelectionRepo() *fakeSelectionRepo {
	return &fakeSelectionRepo{selections: map[string]*models.TeamSelection{}}
}

func (r *fakeSelectionRepo) Save(_ context.Context, selection *models.TeamSelection) error {
	copied := *selection
	r.selections[selection.MatchID] = &copied
	return nil
}

func (r *fakeSelectionRepo) GetByMatch(_ context.Context, matchID string) (*models.TeamSelection, error) {
	selection, ok := r.selections[matchID]
	if !ok {
		return nil, fmt.Errorf("selection for match '%s': %w", matchID, db.ErrNotFound)
	}
	copied := *selection
	return &copied, nil
}

type fakePaymentRepo struct {
	requests  map[string]*models.PaymentRequest
	summaries map[string]*models.MatchPaymentSummary
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		requests:  map[string]*models.PaymentRequest{},
		summaries: map[string]*models.MatchPaymentSummary{},
	}
}

func (r *fakePaymentRepo) CreateBatch(_ context.Context, requests []*models.PaymentRequest, summary *models.MatchPaymentSummary) error {
	if _, ok := r.summaries[summary.MatchID]; ok {
		return fmt.Errorf("payment summary for match '%s': %w", summary.MatchID, db.ErrAlreadyExists)
	}
	for _, req := range requests {
		copied := *req
		r.requests[req.ID] = &copied
	}
	copied := *summary
	r.summaries[summary.MatchID] = &copied
	return nil
}

func (r *fakePaymentRepo) GetRequestByID(_ context.Context, id string) (*models.PaymentRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, fmt.Errorf("payment request '%s': %w", id, db.ErrNotFound)
	}
	copied := *req
	return &copied, nil
}

func (r *fakePaymentRepo) GetRequestsByMatch(_ context.Context, matchID string) ([]*models.PaymentRequest, error) {
	var requests []*models.PaymentRequest
	for _, req := range r.requests {
		if req.MatchID == matchID {
			copied := *req
			requests = append(requests, &copied)
		}
	}
	return requests, nil
}

func (r *fakePaymentRepo) GetRequestsByUser(_ context.Context, email string) ([]*models.PaymentRequest, error) {
	var requests []*models.PaymentRequest
	for _, req := range r.requests {
		if strings.EqualFold(req.UserEmail, email) {
			copied := *req
			requests = append(requests, &copied)
		}
	}
	return requests, nil
}

func (r *fakePaymentRepo) GetSummaryByMatch(_ context.Context, matchID string) (*models.MatchPaymentSummary, error) {
	summary, ok := r.summaries[matchID]
	if !ok {
		return nil, fmt.Errorf("payment summary for match '%s': %w", matchID, db.ErrNotFound)
	}
	copied := *summary
	return &copied, nil
}

// UpdateRequestAndSummary mirrors the Firestore transaction: mutate runs on
// copies, and nothing is stored unless it succeeds.
func (r *fakePaymentRepo) UpdateRequestAndSummary(_ context.Context, requestID string, mutate func(req *models.PaymentRequest, sum *models.MatchPaymentSummary) error) error {
	req, ok := r.requests[requestID]
	if !ok {
		return fmt.Errorf("payment request '%s': %w", requestID, db.ErrNotFound)
	}
	summary, ok := r.summaries[req.MatchID]
	if !ok {
		return fmt.Errorf("payment summary for match '%s': %w", req.MatchID, db.ErrNotFound)
	}

	reqCopy := *req
	sumCopy := *summary
	if err := mutate(&reqCopy, &sumCopy); err != nil {
		return err
	}
	r.requests[requestID] = &reqCopy
	r.summaries[req.MatchID] = &sumCopy
	return nil
}

func (r *fakePaymentRepo) UpdateRequest(_ context.Context, req *models.PaymentRequest) error {
	copied := *req
	r.requests[req.ID] = &copied
	return nil
}

type fakeActivityRepo struct {
	entries []models.ActivityLog
}

func (r *fakeActivityRepo) Create(_ context.Context, entry models.ActivityLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

// fakeAuthAdmin records claims writes keyed by UID and resolves emails to
// deterministic UIDs.
type fakeAuthAdmin struct {
	claims map[string]map[string]interface{}
}

func newFakeAuthAdmin() *fakeAuthAdmin {
	return &fakeAuthAdmin{claims: map[string]map[string]interface{}{}}
}

func (a *fakeAuthAdmin) GetUserByEmail(_ context.Context, email string) (*auth.UserRecord, error) {
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: "uid-" + email, Email: email}}, nil
}

func (a *fakeAuthAdmin) SetCustomUserClaims(_ context.Context, uid string, claims map[string]interface{}) error {
	a.claims[uid] = claims
	return nil
}
