package models

// RegisterRequest is the anonymous registration payload. Validation is done in
// the user service; the validate endpoint runs the same checks without writing.
type RegisterRequest struct {
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	Phone        string `json:"phone"`
	JerseyNumber int    `json:"jerseyNumber"`
	DateOfBirth  string `json:"dateOfBirth"`
}

// SetRolesRequest replaces a user's role set.
type SetRolesRequest struct {
	Roles []Role `json:"roles"`
}

// CreateTournamentRequest creates or updates a tournament.
type CreateTournamentRequest struct {
	Name      string `json:"name"`
	Season    string `json:"season"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SaveMatchRequest creates or updates a match. VotingDeadline is RFC3339 and
// only accepted while Status is "voting".
type SaveMatchRequest struct {
	HomeTeam       string      `json:"homeTeam"`
	AwayTeam       string      `json:"awayTeam"`
	TournamentID   string      `json:"tournamentId"`
	Date           string      `json:"date"`
	Time           string      `json:"time"`
	Venue          string      `json:"venue"`
	JerseyColor    JerseyColor `json:"jerseyColor"`
	Status         MatchStatus `json:"status"`
	VotingDeadline string      `json:"votingDeadline"`
}

// SetMatchStatusRequest sets a match status explicitly.
type SetMatchStatusRequest struct {
	Status         MatchStatus `json:"status"`
	VotingDeadline string      `json:"votingDeadline"`
}

// CastVoteRequest records the caller's availability for a match.
type CastVoteRequest struct {
	Status VoteStatus `json:"status"`
}

// SaveSelectionRequest overwrites the roster for a match.
type SaveSelectionRequest struct {
	Starters    []SelectionEntry `json:"starters"`
	Substitutes []SelectionEntry `json:"substitutes"`
}

// InitiatePaymentsRequest creates one payment request per player for a match.
type InitiatePaymentsRequest struct {
	MatchID string   `json:"matchId"`
	Amount  float64  `json:"amount"`
	DueDate string   `json:"dueDate"`
	Players []string `json:"players"` // emails
}

// SubmitPaymentRequest marks a payment request as paid by its target user.
type SubmitPaymentRequest struct {
	Amount       float64 `json:"amount"`
	Contribution float64 `json:"contribution"`
	ProofURL     string  `json:"proofUrl"`
	Notes        string  `json:"notes"`
}

// VerifyPaymentRequest verifies or rejects a submitted payment request.
type VerifyPaymentRequest struct {
	Verified bool   `json:"verified"`
	Notes    string `json:"notes"`
}
