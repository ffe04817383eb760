package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"matchday-backend-go/internal/db"
	"matchday-backend-go/internal/models"
)

type paymentService struct {
	paymentRepo db.PaymentRepository
	matchRepo   db.MatchRepository
	activity    ActivityService
	now         func() time.Time
}

// NewPaymentService creates a PaymentService.
func NewPaymentService(paymentRepo db.PaymentRepository, matchRepo db.MatchRepository, activity ActivityService) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		matchRepo:   matchRepo,
		activity:    activity,
		now:         time.Now,
	}
}

// Initiate creates one pending request per player and the match summary,
// seeded with totalExpected = amount x player count.
func (s *paymentService) Initiate(ctx context.Context, identity models.Identity, req models.InitiatePaymentsRequest) (*models.MatchPaymentSummary, []*models.PaymentRequest, error) {
	if err := Require(identity, CapPaymentInitiate); err != nil {
		return nil, nil, err
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.MatchID) == "" {
		fields["matchId"] = "match is required"
	}
	if req.Amount <= 0 {
		fields["amount"] = "amount must be positive"
	}
	if _, err := time.Parse("2006-01-02", req.DueDate); err != nil {
		fields["dueDate"] = "due date must be YYYY-MM-DD"
	}
	if len(req.Players) == 0 {
		fields["players"] = "at least one player is required"
	}
	seen := map[string]bool{}
	for _, email := range req.Players {
		email = strings.TrimSpace(strings.ToLower(email))
		if email == "" {
			fields["players"] = "player emails must be non-empty"
			break
		}
		if seen[email] {
			fields["players"] = fmt.Sprintf("duplicate player %s", email)
			break
		}
		seen[email] = true
	}
	if len(fields) > 0 {
		return nil, nil, &ValidationError{Fields: fields}
	}

	if _, err := s.matchRepo.GetByID(ctx, req.MatchID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrMatchNotFound, req.MatchID)
		}
		return nil, nil, fmt.Errorf("failed to get match: %w", err)
	}

	requests := make([]*models.PaymentRequest, 0, len(req.Players))
	for _, email := range req.Players {
		requests = append(requests, &models.PaymentRequest{
			ID:          uuid.NewString(),
			MatchID:     req.MatchID,
			UserEmail:   strings.TrimSpace(strings.ToLower(email)),
			Amount:      req.Amount,
			Status:      models.PaymentPending,
			DueDate:     req.DueDate,
			RequestedBy: identity.Email,
		})
	}
	summary := &models.MatchPaymentSummary{
		MatchID:       req.MatchID,
		PendingCount:  len(requests),
		TotalExpected: req.Amount * float64(len(requests)),
		UpdatedAt:     s.now().UTC(),
	}

	if err := s.paymentRepo.CreateBatch(ctx, requests, summary); err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			return nil, nil, fmt.Errorf("%w: payments already initiated for match %s", ErrInvalidState, req.MatchID)
		}
		return nil, nil, fmt.Errorf("failed to initiate payments: %w", err)
	}

	s.activity.Record(ctx, models.ActivityLog{
		Actor:      identity.Email,
		Action:     "PAYMENT_INITIATE",
		TargetType: "MATCH",
		TargetID:   req.MatchID,
		Details: map[string]interface{}{
			"amount":  req.Amount,
			"players": len(requests),
		},
	})
	return summary, requests, nil
}

// Submit marks the caller's own pending request as paid. The status change
// and the summary counter moves happen in one transaction.
func (s *paymentService) Submit(ctx context.Context, identity models.Identity, requestID string, req models.SubmitPaymentRequest) (*models.PaymentRequest, error) {
	if err := Require(identity, CapPaymentSubmit); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, newValidationError("amount", "amount must be positive")
	}
	if req.Contribution < 0 {
		return nil, newValidationError("contribution", "contribution cannot be negative")
	}

	var updated *models.PaymentRequest
	err := s.paymentRepo.UpdateRequestAndSummary(ctx, requestID, func(pr *models.PaymentRequest, sum *models.MatchPaymentSummary) error {
		if !strings.EqualFold(pr.UserEmail, identity.Email) {
			return fmt.Errorf("%w: request belongs to another player", ErrForbidden)
		}
		if pr.Status != models.PaymentPending {
			return fmt.Errorf("%w: request already submitted or verified", ErrInvalidState)
		}

		now := s.now().UTC()
		pr.Status = models.PaymentSubmitted
		pr.SubmittedAmount = req.Amount
		pr.Contribution = req.Contribution
		if req.ProofURL != "" {
			pr.ProofURL = req.ProofURL
		}
		pr.SubmitNotes = req.Notes
		pr.SubmittedAt = &now

		sum.PendingCount--
		sum.SubmittedCount++
		sum.TotalSubmitted += req.Amount
		sum.UpdatedAt = now

		updated = pr
		return nil
	})
	if err != nil {
		return nil, s.mapPaymentError(err)
	}
	return updated, nil
}

// Verify settles a submitted request as verified or rejected. Verified
// amounts and contributions flow into the summary totals; a rejection is
// terminal and leaves the request out of every bucket.
func (s *paymentService) Verify(ctx context.Context, identity models.Identity, requestID string, req models.VerifyPaymentRequest) (*models.PaymentRequest, error) {
	if err := Require(identity, CapPaymentVerify); err != nil {
		return nil, err
	}

	var updated *models.PaymentRequest
	err := s.paymentRepo.UpdateRequestAndSummary(ctx, requestID, func(pr *models.PaymentRequest, sum *models.MatchPaymentSummary) error {
		if pr.Status != models.PaymentSubmitted {
			return fmt.Errorf("%w: only submitted requests can be verified, request is %q", ErrInvalidState, pr.Status)
		}

		now := s.now().UTC()
		pr.VerifiedBy = identity.Email
		pr.VerifyNotes = req.Notes
		pr.VerifiedAt = &now

		sum.SubmittedCount--
		if req.Verified {
			pr.Status = models.PaymentVerified
			sum.VerifiedCount++
			sum.TotalVerified += pr.SubmittedAmount
			sum.TotalContributions += pr.Contribution
		} else {
			pr.Status = models.PaymentRejected
		}
		sum.UpdatedAt = now

		updated = pr
		return nil
	})
	if err != nil {
		return nil, s.mapPaymentError(err)
	}

	action := "PAYMENT_REJECT"
	if req.Verified {
		action = "PAYMENT_VERIFY"
	}
	s.activity.Record(ctx, models.ActivityLog{
		Actor:      identity.Email,
		Action:     action,
		TargetType: "PAYMENT_REQUEST",
		TargetID:   requestID,
	})
	return updated, nil
}

// MyRequests returns the caller's requests and their dashboard totals.
func (s *paymentService) MyRequests(ctx context.Context, identity models.Identity) ([]*models.PaymentRequest, models.UserPaymentTotals, error) {
	if err := Require(identity, CapPaymentSubmit); err != nil {
		return nil, models.UserPaymentTotals{}, err
	}

	requests, err := s.paymentRepo.GetRequestsByUser(ctx, strings.ToLower(identity.Email))
	if err != nil {
		return nil, models.UserPaymentTotals{}, fmt.Errorf("failed to list payment requests: %w", err)
	}

	var totals models.UserPaymentTotals
	for _, pr := range requests {
		totals.Requested += pr.Amount
		switch pr.Status {
		case models.PaymentSubmitted:
			totals.Submitted += pr.SubmittedAmount
		case models.PaymentVerified:
			totals.Verified += pr.SubmittedAmount
		}
	}
	return requests, totals, nil
}

// MatchPayments returns all requests for a match plus the summary.
func (s *paymentService) MatchPayments(ctx context.Context, identity models.Identity, matchID string) ([]*models.PaymentRequest, *models.MatchPaymentSummary, error) {
	if err := Require(identity, CapPaymentVerify); err != nil {
		return nil, nil, err
	}

	summary, err := s.paymentRepo.GetSummaryByMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: match %s", ErrSummaryNotFound, matchID)
		}
		return nil, nil, fmt.Errorf("failed to get payment summary: %w", err)
	}
	requests, err := s.paymentRepo.GetRequestsByMatch(ctx, matchID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list payment requests: %w", err)
	}
	return requests, summary, nil
}

// loadOwnPendingRequest fetches the request and enforces the attach-proof
// preconditions: the caller owns it and it is still pending.
func (s *paymentService) loadOwnPendingRequest(ctx context.Context, identity models.Identity, requestID string) (*models.PaymentRequest, error) {
	pr, err := s.paymentRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, s.mapPaymentError(err)
	}
	if !strings.EqualFold(pr.UserEmail, identity.Email) {
		return nil, fmt.Errorf("%w: request belongs to another player", ErrForbidden)
	}
	if pr.Status != models.PaymentPending {
		return nil, fmt.Errorf("%w: proof can only be attached while pending", ErrInvalidState)
	}
	return pr, nil
}

// ValidateProofUpload checks that the caller may attach proof to the request.
// Handlers call this before writing the uploaded file to storage, so a
// forbidden or stale upload never leaves an orphan object behind.
func (s *paymentService) ValidateProofUpload(ctx context.Context, identity models.Identity, requestID string) error {
	if err := Require(identity, CapPaymentSubmit); err != nil {
		return err
	}
	_, err := s.loadOwnPendingRequest(ctx, identity, requestID)
	return err
}

// AttachProof stores an uploaded proof URL on the caller's own request. Only
// legal while the request is still pending; after submission the proof rides
// along with the submit call itself.
func (s *paymentService) AttachProof(ctx context.Context, identity models.Identity, requestID, proofURL string) (*models.PaymentRequest, error) {
	if err := Require(identity, CapPaymentSubmit); err != nil {
		return nil, err
	}
	if proofURL == "" {
		return nil, newValidationError("proof", "proof file is required")
	}

	pr, err := s.loadOwnPendingRequest(ctx, identity, requestID)
	if err != nil {
		return nil, err
	}

	pr.ProofURL = proofURL
	if err := s.paymentRepo.UpdateRequest(ctx, pr); err != nil {
		return nil, fmt.Errorf("failed to attach proof: %w", err)
	}
	return pr, nil
}

// mapPaymentError lifts repository not-found errors into service sentinels
// and passes everything else through.
func (s *paymentService) mapPaymentError(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrPaymentNotFound, err)
	}
	return err
}
