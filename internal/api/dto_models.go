package api

import "matchday-backend-go/internal/models"

// ErrorResponse is the generic error body. Fields is present only for
// validation failures and maps field names to messages.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// SuccessResponse is a generic body for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// VoteBoardResponse is the GET votes payload: entries in display order plus
// the tally.
type VoteBoardResponse struct {
	Entries []models.VoterEntry `json:"entries"`
	Tally   models.VoteTally    `json:"tally"`
}

// PaymentInitiateResponse returns the created requests and the seeded summary.
type PaymentInitiateResponse struct {
	Summary  *models.MatchPaymentSummary `json:"summary"`
	Requests []*models.PaymentRequest    `json:"requests"`
}

// MatchPaymentsResponse is the manager's per-match payment view.
type MatchPaymentsResponse struct {
	Summary  *models.MatchPaymentSummary `json:"summary"`
	Requests []*models.PaymentRequest    `json:"requests"`
}

// MyPaymentsResponse is the player's dashboard view of their own requests.
type MyPaymentsResponse struct {
	Requests []*models.PaymentRequest `json:"requests"`
	Totals   models.UserPaymentTotals `json:"totals"`
}
