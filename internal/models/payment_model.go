package models

import "time"

// PaymentStatus is the lifecycle state of a payment request. Transitions are
// forward-only: pending -> submitted -> verified or rejected.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSubmitted PaymentStatus = "submitted"
	PaymentVerified  PaymentStatus = "verified"
	PaymentRejected  PaymentStatus = "rejected"
)

// PaymentRequest is one player's payment obligation for a match.
type PaymentRequest struct {
	ID          string        `json:"id" firestore:"-"`
	MatchID     string        `json:"matchId" firestore:"matchId"`
	UserEmail   string        `json:"userEmail" firestore:"userEmail"`
	Amount      float64       `json:"amount" firestore:"amount"`
	Status      PaymentStatus `json:"status" firestore:"status"`
	DueDate     string        `json:"dueDate" firestore:"dueDate"`
	RequestedBy string        `json:"requestedBy" firestore:"requestedBy"`

	// Submission fields, set when the player marks the request paid.
	SubmittedAmount float64    `json:"submittedAmount,omitempty" firestore:"submittedAmount,omitempty"`
	Contribution    float64    `json:"contribution,omitempty" firestore:"contribution,omitempty"`
	ProofURL        string     `json:"proofUrl,omitempty" firestore:"proofUrl,omitempty"`
	SubmitNotes     string     `json:"submitNotes,omitempty" firestore:"submitNotes,omitempty"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty" firestore:"submittedAt,omitempty"`

	// Verification fields, set when a manager verifies or rejects.
	VerifiedBy  string     `json:"verifiedBy,omitempty" firestore:"verifiedBy,omitempty"`
	VerifyNotes string     `json:"verifyNotes,omitempty" firestore:"verifyNotes,omitempty"`
	VerifiedAt  *time.Time `json:"verifiedAt,omitempty" firestore:"verifiedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// MatchPaymentSummary aggregates the payment requests of one match. The match
// ID is the document ID. Counter adjustments are written in the same Firestore
// transaction as the request status change, so the counters always equal the
// sums over the request documents.
type MatchPaymentSummary struct {
	MatchID            string    `json:"matchId" firestore:"-"`
	PendingCount       int       `json:"pendingCount" firestore:"pendingCount"`
	SubmittedCount     int       `json:"submittedCount" firestore:"submittedCount"`
	VerifiedCount      int       `json:"verifiedCount" firestore:"verifiedCount"`
	TotalExpected      float64   `json:"totalExpected" firestore:"totalExpected"`
	TotalSubmitted     float64   `json:"totalSubmitted" firestore:"totalSubmitted"`
	TotalVerified      float64   `json:"totalVerified" firestore:"totalVerified"`
	TotalContributions float64   `json:"totalContributions" firestore:"totalContributions"`
	UpdatedAt          time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// UserPaymentTotals aggregates one user's requests across all matches for the
// dashboard view.
type UserPaymentTotals struct {
	Requested float64 `json:"requested"`
	Submitted float64 `json:"submitted"`
	Verified  float64 `json:"verified"`
}
