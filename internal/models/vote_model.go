package models

import "time"

// VoteStatus is a player's declared availability for a match.
type VoteStatus string

const (
	VoteAvailable    VoteStatus = "available"
	VoteNotAvailable VoteStatus = "not_available"
	VoteTentative    VoteStatus = "tentative"
)

// ValidVoteStatuses lists the accepted availability answers.
var ValidVoteStatuses = []VoteStatus{VoteAvailable, VoteNotAvailable, VoteTentative}

// VoteEntry is one user's current answer. Repeat votes overwrite the entry;
// no history is kept.
type VoteEntry struct {
	Status    VoteStatus `json:"status" firestore:"status"`
	UpdatedAt time.Time  `json:"updatedAt" firestore:"updatedAt"`
}

// MatchVotes holds all availability answers for one match, keyed by user
// email. The match ID is the document ID.
type MatchVotes struct {
	MatchID string               `json:"matchId" firestore:"-"`
	Entries map[string]VoteEntry `json:"entries" firestore:"entries"`
}

// VoterEntry is one row of the vote board, flattened for display ordering
// (available before tentative before not_available, then by email).
type VoterEntry struct {
	Email     string     `json:"email"`
	Status    VoteStatus `json:"status"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// VoteTally is the aggregate view of a match's votes.
type VoteTally struct {
	Available    int `json:"available"`
	Tentative    int `json:"tentative"`
	NotAvailable int `json:"notAvailable"`
	Total        int `json:"total"`
}
