package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"matchday-backend-go/internal/models"
)

type paymentFixture struct {
	service     PaymentService
	paymentRepo *fakePaymentRepo
	matchID     string
	manager     models.Identity
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	matchRepo := newFakeMatchRepo()
	matchID, err := matchRepo.Create(context.Background(), &models.Match{
		HomeTeam: "Riverside FC",
		AwayTeam: "Harbour United",
		Status:   models.MatchStatusTeamAnnounced,
	})
	require.NoError(t, err)

	paymentRepo := newFakePaymentRepo()
	activity := NewActivityService(&fakeActivityRepo{}, zap.NewNop())
	return &paymentFixture{
		service:     NewPaymentService(paymentRepo, matchRepo, activity),
		paymentRepo: paymentRepo,
		matchID:     matchID,
		manager:     approvedIdentity("manager@club.test", models.RoleManager),
	}
}

func (fx *paymentFixture) initiate(t *testing.T, amount float64, players ...string) (*models.MatchPaymentSummary, []*models.PaymentRequest) {
	t.Helper()
	summary, requests, err := fx.service.Initiate(context.Background(), fx.manager, models.InitiatePaymentsRequest{
		MatchID: fx.matchID,
		Amount:  amount,
		DueDate: "2026-09-20",
		Players: players,
	})
	require.NoError(t, err)
	return summary, requests
}

func requestFor(t *testing.T, requests []*models.PaymentRequest, email string) *models.PaymentRequest {
	t.Helper()
	for _, req := range requests {
		if req.UserEmail == email {
			return req
		}
	}
	t.Fatalf("no payment request for %s", email)
	return nil
}

func TestInitiateSeedsRequestsAndSummary(t *testing.T) {
	fx := newPaymentFixture(t)

	summary, requests, err := fx.service.Initiate(context.Background(), fx.manager, models.InitiatePaymentsRequest{
		MatchID: fx.matchID,
		Amount:  100,
		DueDate: "2026-09-20",
		Players: []string{"p1@club.test", "p2@club.test", "p3@club.test", "p4@club.test", "p5@club.test"},
	})
	require.NoError(t, err)

	require.Len(t, requests, 5)
	for _, req := range requests {
		assert.Equal(t, models.PaymentPending, req.Status)
		assert.Equal(t, 100.0, req.Amount)
		assert.Equal(t, fx.manager.Email, req.RequestedBy)
		assert.NotEmpty(t, req.ID)
	}

	assert.Equal(t, 5, summary.PendingCount)
	assert.Equal(t, 0, summary.SubmittedCount)
	assert.Equal(t, 0, summary.VerifiedCount)
	assert.Equal(t, 500.0, summary.TotalExpected)
	assert.Equal(t, 0.0, summary.TotalSubmitted)
}

func TestInitiateTwiceForSameMatchFails(t *testing.T) {
	fx := newPaymentFixture(t)
	fx.initiate(t, 100, "p1@club.test", "p2@club.test")

	_, _, err := fx.service.Initiate(context.Background(), fx.manager, models.InitiatePaymentsRequest{
		MatchID: fx.matchID,
		Amount:  150,
		DueDate: "2026-09-25",
		Players: []string{"p3@club.test"},
	})
	assert.ErrorIs(t, err, ErrInvalidState)

	// The failed re-initiation must not add requests or reseed the summary.
	requests, err := fx.paymentRepo.GetRequestsByMatch(context.Background(), fx.matchID)
	require.NoError(t, err)
	assert.Len(t, requests, 2)
	summary, err := fx.paymentRepo.GetSummaryByMatch(context.Background(), fx.matchID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.PendingCount)
	assert.Equal(t, 200.0, summary.TotalExpected)
}

func TestInitiateValidation(t *testing.T) {
	fx := newPaymentFixture(t)

	_, _, err := fx.service.Initiate(context.Background(), fx.manager, models.InitiatePaymentsRequest{
		MatchID: "",
		Amount:  -5,
		DueDate: "soon",
	})
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "matchId")
	assert.Contains(t, ve.Fields, "amount")
	assert.Contains(t, ve.Fields, "dueDate")
	assert.Contains(t, ve.Fields, "players")
}

func TestInitiateRejectsDuplicatePlayers(t *testing.T) {
	fx := newPaymentFixture(t)

	_, _, err := fx.service.Initiate(context.Background(), fx.manager, models.InitiatePaymentsRequest{
		MatchID: fx.matchID,
		Amount:  100,
		DueDate: "2026-09-20",
		Players: []string{"p1@club.test", "P1@club.test"},
	})
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "players")
}

func TestInitiateUnknownMatch(t *testing.T) {
	fx := newPaymentFixture(t)

	_, _, err := fx.service.Initiate(context.Background(), fx.manager, models.InitiatePaymentsRequest{
		MatchID: "no-such-match",
		Amount:  100,
		DueDate: "2026-09-20",
		Players: []string{"p1@club.test"},
	})
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestInitiateRequiresManager(t *testing.T) {
	fx := newPaymentFixture(t)
	admin := approvedIdentity("admin@club.test", models.RoleAdmin)

	_, _, err := fx.service.Initiate(context.Background(), admin, models.InitiatePaymentsRequest{
		MatchID: fx.matchID,
		Amount:  100,
		DueDate: "2026-09-20",
		Players: []string{"p1@club.test"},
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSubmitMovesCounters(t *testing.T) {
	fx := newPaymentFixture(t)
	_, requests := fx.initiate(t, 100, "p1@club.test", "p2@club.test", "p3@club.test", "p4@club.test", "p5@club.test")

	player := approvedIdentity("p1@club.test", models.RolePlayer)
	target := requestFor(t, requests, "p1@club.test")

	submitted, err := fx.service.Submit(context.Background(), player, target.ID, models.SubmitPaymentRequest{
		Amount:       100,
		Contribution: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentSubmitted, submitted.Status)
	assert.Equal(t, 100.0, submitted.SubmittedAmount)
	require.NotNil(t, submitted.SubmittedAt)

	summary, err := fx.paymentRepo.GetSummaryByMatch(context.Background(), fx.matchID)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.PendingCount)
	assert.Equal(t, 1, summary.SubmittedCount)
	assert.Equal(t, 100.0, summary.TotalSubmitted)
	assert.Equal(t, 0.0, summary.TotalVerified)
}

func TestSubmitRejectsOtherPlayersRequest(t *testing.T) {
	fx := newPaymentFixture(t)
	_, requests := fx.initiate(t, 100, "p1@club.test", "p2@club.test")

	intruder := approvedIdentity("p2@club.test", models.RolePlayer)
	target := requestFor(t, requests, "p1@club.test")

	_, err := fx.service.Submit(context.Background(), intruder, target.ID, models.SubmitPaymentRequest{Amount: 100})
	assert.ErrorIs(t, err, ErrForbidden)

	// The request and summary stay untouched after the aborted transaction.
	stored, err := fx.paymentRepo.GetRequestByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, stored.Status)
	summary, err := fx.paymentRepo.GetSummaryByMatch(context.Background(), fx.matchID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.PendingCount)
}

func TestSubmitTwiceFails(t *testing.T) {
	fx := newPaymentFixture(t)
	_, requests := fx.initiate(t, 100, "p1@club.test")

	player := approvedIdentity("p1@club.test", models.RolePlayer)
	target := requestFor(t, requests, "p1@club.test")

	_, err := fx.service.Submit(context.Background(), player, target.ID, models.SubmitPaymentRequest{Amount: 100})
	require.NoError(t, err)

	_, err = fx.service.Submit(context.Background(), player, target.ID, models.SubmitPaymentRequest{Amount: 100})
	assert.ErrorIs(t, err, ErrInvalidState)

	// Counters are not double-moved by the rejected resubmit.
	summary, err := fx.paymentRepo.GetSummaryByMatch(context.Background(), fx.matchID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.PendingCount)
	assert.Equal(t, 1, summary.SubmittedCount)
	assert.Equal(t, 100.0, summary.TotalSubmitted)
}

func TestSubmitUnknownRequest(t *testing.T) {
	fx := newPaymentFixture(t)
	player := approvedIdentity("p1@club.test", models.RolePlayer)

	_, err := fx.service.Submit(context.Background(), player, "no-such-request", models.SubmitPaymentRequest{Amount: 100})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestVerifyMovesCountersAndTotals(t *testing.T) {
	fx := newPaymentFixture(t)
	_, requests := fx.initiate(t, 100, "p1@club.test", "p2@club.test", "p3@club.test", "p4@club.test", "p5@club.test")

	player := approvedIdentity("p1@club.test", models.RolePlayer)
	target := requestFor(t, requests, "p1@club.test")
	_, err := fx.service.Submit(context.Background(), player, target.ID, models.SubmitPaymentRequest{
		Amount:       100,
		Contribution: 20,
	})
	require.NoError(t, err)

	verified, err := fx.service.Verify(context.Background(), fx.manager, target.ID, models.VerifyPaymentRequest{Verified: true})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentVerified, verified.Status)
	assert.Equal(t, fx.manager.Email, verified.VerifiedBy)
	require.NotNil(t, verified.VerifiedAt)

	summary, err := fx.paymentRepo.GetSummaryByMatch(context.Background(), fx.matchID)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.PendingCount)
	assert.Equal(t, 0, summary.SubmittedCount)
	assert.Equal(t, 1, summary.VerifiedCount)
	assert.Equal(t, 100.0, summary.TotalVerified)
	assert.Equal(t, 20.0, summary.TotalContributions)
}

func TestVerifyRequiresSubmittedRequest(t *testing.T) {
	fx := newPaymentFixture(t)
	_, requests := fx.initiate(t, 100, "p1@club.test")
	target := requestFor(t, requests, "p1@club.test")

	_, err := fx.service.Verify(context.Background(), fx.manager, target.ID, models.VerifyPaymentRequest{Verified: true})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRejectIsTerminal(t *testing.T) {
	fx := newPaymentFixture(t)
	_, requests := fx.initiate(t, 100, "p1@club.test")

	player := approvedIdentity("p1@club.test", models.RolePlayer)
	target := requestFor(t, requests, "p1@club.test")
	_, err := fx.service.Submit(context.Background(), player, target.ID, models.SubmitPaymentRequest{Amount: 100})
	require.NoError(t, err)

	rejected, err := fx.service.Verify(context.Background(), fx.manager, target.ID, models.VerifyPaymentRequest{Verified: false, Notes: "wrong reference"})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRejected, rejected.Status)

	summary, err := fx.paymentRepo.GetSummaryByMatch(context.Background(), fx.matchID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.SubmittedCount)
	assert.Equal(t, 0, summary.VerifiedCount)
	assert.Equal(t, 0.0, summary.TotalVerified)

	// A rejected request can be neither re-verified nor re-submitted.
	_, err = fx.service.Verify(context.Background(), fx.manager, target.ID, models.VerifyPaymentRequest{Verified: true})
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = fx.service.Submit(context.Background(), player, target.ID, models.SubmitPaymentRequest{Amount: 100})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestMyRequestsTotals(t *testing.T) {
	fx := newPaymentFixture(t)
	_, requests := fx.initiate(t, 100, "p1@club.test", "p2@club.test")

	player := approvedIdentity("p1@club.test", models.RolePlayer)
	target := requestFor(t, requests, "p1@club.test")
	_, err := fx.service.Submit(context.Background(), player, target.ID, models.SubmitPaymentRequest{Amount: 120})
	require.NoError(t, err)

	mine, totals, err := fx.service.MyRequests(context.Background(), player)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 100.0, totals.Requested)
	assert.Equal(t, 120.0, totals.Submitted)
	assert.Equal(t, 0.0, totals.Verified)

	_, err = fx.service.Verify(context.Background(), fx.manager, target.ID, models.VerifyPaymentRequest{Verified: true})
	require.NoError(t, err)

	_, totals, err = fx.service.MyRequests(context.Background(), player)
	require.NoError(t, err)
	assert.Equal(t, 0.0, totals.Submitted)
	assert.Equal(t, 120.0, totals.Verified)
}

func TestMatchPaymentsRequiresManager(t *testing.T) {
	fx := newPaymentFixture(t)
	fx.initiate(t, 100, "p1@club.test")

	player := approvedIdentity("p1@club.test", models.RolePlayer)
	_, _, err := fx.service.MatchPayments(context.Background(), player, fx.matchID)
	assert.ErrorIs(t, err, ErrForbidden)

	requests, summary, err := fx.service.MatchPayments(context.Background(), fx.manager, fx.matchID)
	require.NoError(t, err)
	assert.Len(t, requests, 1)
	assert.Equal(t, 1, summary.PendingCount)
}

func TestMatchPaymentsUnknownMatch(t *testing.T) {
	fx := newPaymentFixture(t)

	_, _, err := fx.service.MatchPayments(context.Background(), fx.manager, "no-such-match")
	assert.ErrorIs(t, err, ErrSummaryNotFound)
}

func TestValidateProofUploadPreconditions(t *testing.T) {
	fx := newPaymentFixture(t)
	_, requests := fx.initiate(t, 100, "p1@club.test")

	player := approvedIdentity("p1@club.test", models.RolePlayer)
	target := requestFor(t, requests, "p1@club.test")

	assert.NoError(t, fx.service.ValidateProofUpload(context.Background(), player, target.ID))

	other := approvedIdentity("p2@club.test", models.RolePlayer)
	assert.ErrorIs(t, fx.service.ValidateProofUpload(context.Background(), other, target.ID), ErrForbidden)

	assert.ErrorIs(t, fx.service.ValidateProofUpload(context.Background(), player, "no-such-request"), ErrPaymentNotFound)

	_, err := fx.service.Submit(context.Background(), player, target.ID, models.SubmitPaymentRequest{Amount: 100})
	require.NoError(t, err)
	assert.ErrorIs(t, fx.service.ValidateProofUpload(context.Background(), player, target.ID), ErrInvalidState)
}

func TestAttachProofOnlyWhilePending(t *testing.T) {
	fx := newPaymentFixture(t)
	_, requests := fx.initiate(t, 100, "p1@club.test")

	player := approvedIdentity("p1@club.test", models.RolePlayer)
	target := requestFor(t, requests, "p1@club.test")

	updated, err := fx.service.AttachProof(context.Background(), player, target.ID, "https://storage.test/proof.png")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.test/proof.png", updated.ProofURL)

	other := approvedIdentity("p2@club.test", models.RolePlayer)
	_, err = fx.service.AttachProof(context.Background(), other, target.ID, "https://storage.test/other.png")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = fx.service.Submit(context.Background(), player, target.ID, models.SubmitPaymentRequest{Amount: 100})
	require.NoError(t, err)
	_, err = fx.service.AttachProof(context.Background(), player, target.ID, "https://storage.test/late.png")
	assert.ErrorIs(t, err, ErrInvalidState)
}
