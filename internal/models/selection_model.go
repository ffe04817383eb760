package models

import "time"

// Roster size limits for a selection.
const (
	MaxStarters    = 11
	MaxSubstitutes = 5
)

// SelectionEntry is one player on the selected roster.
type SelectionEntry struct {
	Email        string `json:"email" firestore:"email"`
	DisplayName  string `json:"displayName" firestore:"displayName"`
	JerseyNumber int    `json:"jerseyNumber" firestore:"jerseyNumber"`
	RoleTag      string `json:"roleTag,omitempty" firestore:"roleTag,omitempty"` // e.g. "GK", "captain"
}

// TeamSelection is the chosen roster for a match, saved wholesale on every
// update. The match ID is the document ID. No email may appear in both lists.
type TeamSelection struct {
	MatchID     string           `json:"matchId" firestore:"-"`
	Starters    []SelectionEntry `json:"starters" firestore:"starters"`
	Substitutes []SelectionEntry `json:"substitutes" firestore:"substitutes"`
	UpdatedBy   string           `json:"updatedBy" firestore:"updatedBy"`
	UpdatedAt   time.Time        `json:"updatedAt" firestore:"updatedAt"`
}

// SelectionCandidate is a voter eligible for selection, shown to selectors
// alongside their declared availability.
type SelectionCandidate struct {
	Email  string     `json:"email"`
	Status VoteStatus `json:"status"`
}
