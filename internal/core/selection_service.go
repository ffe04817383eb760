package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/thoas/go-funk"

	"matchday-backend-go/internal/db"
	"matchday-backend-go/internal/models"
)

type selectionService struct {
	selectionRepo db.SelectionRepository
	matchRepo     db.MatchRepository
	voteRepo      db.VoteRepository
	activity      ActivityService
	now           func() time.Time
}

// NewSelectionService creates a SelectionService.
func NewSelectionService(selectionRepo db.SelectionRepository, matchRepo db.MatchRepository, voteRepo db.VoteRepository, activity ActivityService) SelectionService {
	return &selectionService{
		selectionRepo: selectionRepo,
		matchRepo:     matchRepo,
		voteRepo:      voteRepo,
		activity:      activity,
		now:           time.Now,
	}
}

func entryEmails(entries []models.SelectionEntry) []string {
	emails := make([]string, 0, len(entries))
	for _, e := range entries {
		emails = append(emails, strings.ToLower(e.Email))
	}
	return emails
}

// validateRoster enforces list sizes and the disjointness invariant. When
// exact is true (publish), the starters list must be exactly eleven.
func validateRoster(starters, substitutes []models.SelectionEntry, exact bool) error {
	fields := map[string]string{}

	if exact && len(starters) != models.MaxStarters {
		fields["starters"] = fmt.Sprintf("exactly %d starters required to publish, got %d", models.MaxStarters, len(starters))
	} else if len(starters) > models.MaxStarters {
		fields["starters"] = fmt.Sprintf("at most %d starters allowed, got %d", models.MaxStarters, len(starters))
	}
	if len(substitutes) > models.MaxSubstitutes {
		fields["substitutes"] = fmt.Sprintf("at most %d substitutes allowed, got %d", models.MaxSubstitutes, len(substitutes))
	}

	starterEmails := entryEmails(starters)
	var overlap []string
	for _, sub := range substitutes {
		if funk.ContainsString(starterEmails, strings.ToLower(sub.Email)) {
			name := sub.DisplayName
			if name == "" {
				name = sub.Email
			}
			overlap = append(overlap, name)
		}
	}
	if len(overlap) > 0 {
		fields["substitutes"] = "players listed as both starter and substitute: " + strings.Join(overlap, ", ")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Save overwrites the roster for a match. It does not require the match to be
// in any particular status; only publish enforces the exact-eleven rule.
func (s *selectionService) Save(ctx context.Context, identity models.Identity, matchID string, req models.SaveSelectionRequest) (*models.TeamSelection, error) {
	if err := Require(identity, CapSelectionManage); err != nil {
		return nil, err
	}
	if _, err := s.loadMatch(ctx, matchID); err != nil {
		return nil, err
	}
	if err := validateRoster(req.Starters, req.Substitutes, false); err != nil {
		return nil, err
	}

	selection := &models.TeamSelection{
		MatchID:     matchID,
		Starters:    req.Starters,
		Substitutes: req.Substitutes,
		UpdatedBy:   identity.Email,
		UpdatedAt:   s.now().UTC(),
	}
	if err := s.selectionRepo.Save(ctx, selection); err != nil {
		return nil, fmt.Errorf("failed to save selection: %w", err)
	}
	return selection, nil
}

// Publish announces the team: it requires a full eleven plus a legal bench and
// flips the match status to team-announced. The roster itself is untouched.
func (s *selectionService) Publish(ctx context.Context, identity models.Identity, matchID string) error {
	if err := Require(identity, CapSelectionPublish); err != nil {
		return err
	}
	if _, err := s.loadMatch(ctx, matchID); err != nil {
		return err
	}

	selection, err := s.loadSelection(ctx, matchID)
	if err != nil {
		return err
	}
	if err := validateRoster(selection.Starters, selection.Substitutes, true); err != nil {
		return err
	}

	if err := s.matchRepo.SetStatus(ctx, matchID, models.MatchStatusTeamAnnounced, nil); err != nil {
		return fmt.Errorf("failed to publish selection: %w", err)
	}

	s.activity.Record(ctx, models.ActivityLog{
		Actor:      identity.Email,
		Action:     "SELECTION_PUBLISH",
		TargetType: "MATCH",
		TargetID:   matchID,
	})
	return nil
}

// Recall retracts an announced team, returning the match to voting. The
// persisted roster is left as-is so it can be adjusted and re-published.
func (s *selectionService) Recall(ctx context.Context, identity models.Identity, matchID string) error {
	if err := Require(identity, CapSelectionRecall); err != nil {
		return err
	}
	match, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return err
	}

	if err := s.matchRepo.SetStatus(ctx, matchID, models.MatchStatusVoting, match.VotingDeadline); err != nil {
		return fmt.Errorf("failed to recall selection: %w", err)
	}

	s.activity.Record(ctx, models.ActivityLog{
		Actor:      identity.Email,
		Action:     "SELECTION_RECALL",
		TargetType: "MATCH",
		TargetID:   matchID,
	})
	return nil
}

func (s *selectionService) View(ctx context.Context, identity models.Identity, matchID string) (*models.TeamSelection, error) {
	if err := Require(identity, CapMatchView); err != nil {
		return nil, err
	}
	return s.loadSelection(ctx, matchID)
}

// Candidates lists voters answering available or tentative who are not
// already on either roster list, ordered available-first then by email.
func (s *selectionService) Candidates(ctx context.Context, identity models.Identity, matchID string) ([]models.SelectionCandidate, error) {
	if err := Require(identity, CapSelectionManage); err != nil {
		return nil, err
	}
	if _, err := s.loadMatch(ctx, matchID); err != nil {
		return nil, err
	}

	votes, err := s.voteRepo.GetByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}

	var picked []string
	selection, err := s.selectionRepo.GetByMatch(ctx, matchID)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to get selection: %w", err)
	}
	if selection != nil {
		picked = append(entryEmails(selection.Starters), entryEmails(selection.Substitutes)...)
	}

	candidates := make([]models.SelectionCandidate, 0, len(votes.Entries))
	for email, entry := range votes.Entries {
		if entry.Status == models.VoteNotAvailable {
			continue
		}
		if funk.ContainsString(picked, strings.ToLower(email)) {
			continue
		}
		candidates = append(candidates, models.SelectionCandidate{Email: email, Status: entry.Status})
	}

	sort.Slice(candidates, func(i, j int) bool {
		ri, rj := displayRank(candidates[i].Status), displayRank(candidates[j].Status)
		if ri != rj {
			return ri < rj
		}
		return candidates[i].Email < candidates[j].Email
	})
	return candidates, nil
}

func (s *selectionService) loadMatch(ctx context.Context, matchID string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

func (s *selectionService) loadSelection(ctx context.Context, matchID string) (*models.TeamSelection, error) {
	selection, err := s.selectionRepo.GetByMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: match %s", ErrSelectionNotFound, matchID)
		}
		return nil, fmt.Errorf("failed to get selection: %w", err)
	}
	return selection, nil
}
