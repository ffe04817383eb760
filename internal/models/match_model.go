package models

import "time"

// MatchStatus is the lifecycle state of a match. The only dedicated transition
// actions are publish (voting -> team-announced) and recall (the reverse);
// every other move is an explicit status set by an admin or manager. Deadline
// passing never changes status on its own.
type MatchStatus string

const (
	MatchStatusScheduled     MatchStatus = "scheduled"
	MatchStatusVoting        MatchStatus = "voting"
	MatchStatusTeamAnnounced MatchStatus = "team-announced"
	MatchStatusCompleted     MatchStatus = "completed"
	MatchStatusCancelled     MatchStatus = "cancelled"
)

// ValidMatchStatuses lists the accepted match statuses.
var ValidMatchStatuses = []MatchStatus{
	MatchStatusScheduled,
	MatchStatusVoting,
	MatchStatusTeamAnnounced,
	MatchStatusCompleted,
	MatchStatusCancelled,
}

// JerseyColor is the kit choice for a match.
type JerseyColor string

const (
	JerseyHome      JerseyColor = "home"
	JerseyAway      JerseyColor = "away"
	JerseyAlternate JerseyColor = "alternate"
)

// ValidJerseyColors lists the accepted jersey colors.
var ValidJerseyColors = []JerseyColor{JerseyHome, JerseyAway, JerseyAlternate}

// Match is a scheduled fixture. TournamentName is resolved from TournamentID
// when the match is created or updated. VotingDeadline is only present while
// Status is "voting"; updates clear it otherwise.
type Match struct {
	ID             string      `json:"id" firestore:"-"`
	HomeTeam       string      `json:"homeTeam" firestore:"homeTeam"`
	AwayTeam       string      `json:"awayTeam" firestore:"awayTeam"`
	TournamentID   string      `json:"tournamentId" firestore:"tournamentId"`
	TournamentName string      `json:"tournamentName" firestore:"tournamentName"`
	Date           string      `json:"date" firestore:"date"` // YYYY-MM-DD
	Time           string      `json:"time" firestore:"time"` // HH:MM
	Venue          string      `json:"venue" firestore:"venue"`
	JerseyColor    JerseyColor `json:"jerseyColor" firestore:"jerseyColor"`
	Status         MatchStatus `json:"status" firestore:"status"`
	VotingDeadline *time.Time  `json:"votingDeadline,omitempty" firestore:"votingDeadline,omitempty"`
	CreatedBy      string      `json:"createdBy" firestore:"createdBy"`
	CreatedAt      time.Time   `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt      time.Time   `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
