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

const (
	paymentRequestsCollection  = "payment_requests"
	paymentSummariesCollection = "match_payment_summaries"
)

type firestorePaymentRepository struct {
	client *firestore.Client
}

// NewFirestorePaymentRepository creates a new Firestore-backed payment repository.
func NewFirestorePaymentRepository(client *firestore.Client) PaymentRepository {
	return &firestorePaymentRepository{client: client}
}

// CreateBatch writes all per-player requests and the match summary in one
// Firestore transaction, so a partially initiated payment round never exists.
// A summary already present for the match aborts with ErrAlreadyExists and
// nothing written; re-initiating a round must fail loudly, not fork the
// counters from the request set.
func (r *firestorePaymentRepository) CreateBatch(ctx context.Context, requests []*models.PaymentRequest, summary *models.MatchPaymentSummary) error {
	if summary == nil || summary.MatchID == "" {
		return errors.New("summary with matchID is required for CreateBatch")
	}
	for _, req := range requests {
		if req.ID == "" {
			return errors.New("payment request ID cannot be empty for CreateBatch")
		}
	}

	sumRef := r.client.Collection(paymentSummariesCollection).Doc(summary.MatchID)
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(sumRef)
		if err == nil {
			return fmt.Errorf("payment summary for match '%s': %w", summary.MatchID, ErrAlreadyExists)
		}
		if status.Code(err) != codes.NotFound {
			return fmt.Errorf("failed to check payment summary for match '%s': %w", summary.MatchID, err)
		}

		for _, req := range requests {
			if err := tx.Create(r.client.Collection(paymentRequestsCollection).Doc(req.ID), req); err != nil {
				return fmt.Errorf("failed to create payment request '%s': %w", req.ID, err)
			}
		}
		if err := tx.Create(sumRef, summary); err != nil {
			return fmt.Errorf("failed to create payment summary for match '%s': %w", summary.MatchID, err)
		}
		return nil
	})
}

func (r *firestorePaymentRepository) GetRequestByID(ctx context.Context, id string) (*models.PaymentRequest, error) {
	if id == "" {
		return nil, errors.New("request ID cannot be empty for GetRequestByID")
	}
	docSnap, err := r.client.Collection(paymentRequestsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("payment request '%s': %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment request '%s': %w", id, err)
	}
	var req models.PaymentRequest
	if err := docSnap.DataTo(&req); err != nil {
		return nil, fmt.Errorf("failed to decode payment request '%s': %w", id, err)
	}
	req.ID = docSnap.Ref.ID
	return &req, nil
}

func (r *firestorePaymentRepository) GetRequestsByMatch(ctx context.Context, matchID string) ([]*models.PaymentRequest, error) {
	return r.queryRequests(ctx, r.client.Collection(paymentRequestsCollection).Where("matchId", "==", matchID))
}

func (r *firestorePaymentRepository) GetRequestsByUser(ctx context.Context, email string) ([]*models.PaymentRequest, error) {
	return r.queryRequests(ctx, r.client.Collection(paymentRequestsCollection).Where("userEmail", "==", email))
}

func (r *firestorePaymentRepository) queryRequests(ctx context.Context, query firestore.Query) ([]*models.PaymentRequest, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var requests []*models.PaymentRequest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate payment requests: %w", err)
		}
		var req models.PaymentRequest
		if err := doc.DataTo(&req); err != nil {
			return nil, fmt.Errorf("failed to decode payment request (ID: %s): %w", doc.Ref.ID, err)
		}
		req.ID = doc.Ref.ID
		requests = append(requests, &req)
	}
	return requests, nil
}

func (r *firestorePaymentRepository) GetSummaryByMatch(ctx context.Context, matchID string) (*models.MatchPaymentSummary, error) {
	if matchID == "" {
		return nil, errors.New("matchID cannot be empty for GetSummaryByMatch")
	}
	docSnap, err := r.client.Collection(paymentSummariesCollection).Doc(matchID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("payment summary for match '%s': %w", matchID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment summary for match '%s': %w", matchID, err)
	}
	var summary models.MatchPaymentSummary
	if err := docSnap.DataTo(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode payment summary for match '%s': %w", matchID, err)
	}
	summary.MatchID = docSnap.Ref.ID
	return &summary, nil
}

// UpdateRequestAndSummary applies mutate to a request and its match summary
// inside one Firestore transaction. Both documents are re-read under the
// transaction, so concurrent submissions serialize and the counters always
// match the request set. An error from mutate aborts with nothing written.
func (r *firestorePaymentRepository) UpdateRequestAndSummary(ctx context.Context, requestID string, mutate func(req *models.PaymentRequest, sum *models.MatchPaymentSummary) error) error {
	if requestID == "" {
		return errors.New("requestID cannot be empty for UpdateRequestAndSummary")
	}
	reqRef := r.client.Collection(paymentRequestsCollection).Doc(requestID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		reqSnap, err := tx.Get(reqRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("payment request '%s': %w", requestID, ErrNotFound)
			}
			return fmt.Errorf("failed to get payment request '%s' in transaction: %w", requestID, err)
		}
		var req models.PaymentRequest
		if err := reqSnap.DataTo(&req); err != nil {
			return fmt.Errorf("failed to decode payment request '%s': %w", requestID, err)
		}
		req.ID = reqSnap.Ref.ID

		sumRef := r.client.Collection(paymentSummariesCollection).Doc(req.MatchID)
		sumSnap, err := tx.Get(sumRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("payment summary for match '%s': %w", req.MatchID, ErrNotFound)
			}
			return fmt.Errorf("failed to get payment summary for match '%s' in transaction: %w", req.MatchID, err)
		}
		var summary models.MatchPaymentSummary
		if err := sumSnap.DataTo(&summary); err != nil {
			return fmt.Errorf("failed to decode payment summary for match '%s': %w", req.MatchID, err)
		}
		summary.MatchID = sumSnap.Ref.ID

		if err := mutate(&req, &summary); err != nil {
			return err
		}

		if err := tx.Set(reqRef, &req); err != nil {
			return fmt.Errorf("failed to write payment request '%s': %w", requestID, err)
		}
		if err := tx.Set(sumRef, &summary); err != nil {
			return fmt.Errorf("failed to write payment summary for match '%s': %w", req.MatchID, err)
		}
		return nil
	})
}

func (r *firestorePaymentRepository) UpdateRequest(ctx context.Context, req *models.PaymentRequest) error {
	if req.ID == "" {
		return errors.New("request ID cannot be empty for UpdateRequest")
	}
	if _, err := r.client.Collection(paymentRequestsCollection).Doc(req.ID).Set(ctx, req); err != nil {
		return fmt.Errorf("failed to update payment request '%s': %w", req.ID, err)
	}
	return nil
}
