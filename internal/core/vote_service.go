package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"matchday-backend-go/internal/db"
	"matchday-backend-go/internal/models"
)

type voteService struct {
	voteRepo  db.VoteRepository
	matchRepo db.MatchRepository
	now       func() time.Time
}

// NewVoteService creates a VoteService.
func NewVoteService(voteRepo db.VoteRepository, matchRepo db.MatchRepository) VoteService {
	return &voteService{voteRepo: voteRepo, matchRepo: matchRepo, now: time.Now}
}

// Cast records the caller's availability. The same policy applies to every
// vote write: the match must exist and be in voting, and when a deadline is
// set the vote must land before it.
func (s *voteService) Cast(ctx context.Context, identity models.Identity, matchID string, voteStatus models.VoteStatus) error {
	if err := Require(identity, CapVoteCast); err != nil {
		return err
	}

	statusOK := false
	for _, st := range models.ValidVoteStatuses {
		if voteStatus == st {
			statusOK = true
			break
		}
	}
	if !statusOK {
		return newValidationError("status", fmt.Sprintf("status must be one of %v", models.ValidVoteStatuses))
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		return fmt.Errorf("failed to get match: %w", err)
	}
	if match.Status != models.MatchStatusVoting {
		return fmt.Errorf("%w: match is %q, voting is closed", ErrInvalidState, match.Status)
	}
	if match.VotingDeadline != nil && !s.now().Before(*match.VotingDeadline) {
		return fmt.Errorf("%w: deadline was %s", ErrVoteClosed, match.VotingDeadline.Format(time.RFC3339))
	}

	entry := models.VoteEntry{Status: voteStatus, UpdatedAt: s.now().UTC()}
	if err := s.voteRepo.Upsert(ctx, matchID, identity.Email, entry); err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}
	return nil
}

// displayRank orders the board: available, then tentative, then not_available.
func displayRank(status models.VoteStatus) int {
	switch status {
	case models.VoteAvailable:
		return 0
	case models.VoteTentative:
		return 1
	default:
		return 2
	}
}

// Board returns the flattened, display-ordered vote entries and their tally.
func (s *voteService) Board(ctx context.Context, identity models.Identity, matchID string) ([]models.VoterEntry, models.VoteTally, error) {
	if err := Require(identity, CapMatchView); err != nil {
		return nil, models.VoteTally{}, err
	}

	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, models.VoteTally{}, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		return nil, models.VoteTally{}, fmt.Errorf("failed to get match: %w", err)
	}

	votes, err := s.voteRepo.GetByMatch(ctx, matchID)
	if err != nil {
		return nil, models.VoteTally{}, fmt.Errorf("failed to get votes: %w", err)
	}

	var tally models.VoteTally
	entries := make([]models.VoterEntry, 0, len(votes.Entries))
	for email, entry := range votes.Entries {
		entries = append(entries, models.VoterEntry{
			Email:     email,
			Status:    entry.Status,
			UpdatedAt: entry.UpdatedAt,
		})
		switch entry.Status {
		case models.VoteAvailable:
			tally.Available++
		case models.VoteTentative:
			tally.Tentative++
		case models.VoteNotAvailable:
			tally.NotAvailable++
		}
		tally.Total++
	}

	sort.Slice(entries, func(i, j int) bool {
		ri, rj := displayRank(entries[i].Status), displayRank(entries[j].Status)
		if ri != rj {
			return ri < rj
		}
		return entries[i].Email < entries[j].Email
	})

	return entries, tally, nil
}
