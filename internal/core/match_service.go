package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"matchday-backend-go/internal/db"
	"matchday-backend-go/internal/models"
)

type matchService struct {
	matchRepo      db.MatchRepository
	tournamentRepo db.TournamentRepository
}

// NewMatchService creates a MatchService.
func NewMatchService(matchRepo db.MatchRepository, tournamentRepo db.TournamentRepository) MatchService {
	return &matchService{matchRepo: matchRepo, tournamentRepo: tournamentRepo}
}

// validateMatchRequest checks field shapes and enum membership and parses the
// voting deadline. The deadline is only legal while status is "voting".
func validateMatchRequest(req models.SaveMatchRequest) (*time.Time, error) {
	fields := map[string]string{}

	if strings.TrimSpace(req.HomeTeam) == "" {
		fields["homeTeam"] = "home team is required"
	}
	if strings.TrimSpace(req.AwayTeam) == "" {
		fields["awayTeam"] = "away team is required"
	}
	if strings.TrimSpace(req.Venue) == "" {
		fields["venue"] = "venue is required"
	}
	if strings.TrimSpace(req.TournamentID) == "" {
		fields["tournamentId"] = "tournament is required"
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		fields["date"] = "date must be YYYY-MM-DD"
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		fields["time"] = "time must be HH:MM"
	}

	colorOK := false
	for _, c := range models.ValidJerseyColors {
		if req.JerseyColor == c {
			colorOK = true
			break
		}
	}
	if !colorOK {
		fields["jerseyColor"] = fmt.Sprintf("jersey color must be one of %v", models.ValidJerseyColors)
	}

	statusOK := false
	for _, st := range models.ValidMatchStatuses {
		if req.Status == st {
			statusOK = true
			break
		}
	}
	if !statusOK {
		fields["status"] = fmt.Sprintf("status must be one of %v", models.ValidMatchStatuses)
	}

	var deadline *time.Time
	if req.VotingDeadline != "" {
		if req.Status != models.MatchStatusVoting {
			fields["votingDeadline"] = "voting deadline is only allowed while status is voting"
		} else if parsed, err := time.Parse(time.RFC3339, req.VotingDeadline); err != nil {
			fields["votingDeadline"] = "voting deadline must be an RFC3339 timestamp"
		} else {
			deadline = &parsed
		}
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return deadline, nil
}

func (s *matchService) resolveTournamentName(ctx context.Context, tournamentID string) (string, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrTournamentNotFound, tournamentID)
		}
		return "", fmt.Errorf("failed to resolve tournament '%s': %w", tournamentID, err)
	}
	return t.Name, nil
}

// Create validates the request, resolves the tournament name, and stores the
// match.
func (s *matchService) Create(ctx context.Context, identity models.Identity, req models.SaveMatchRequest) (*models.Match, error) {
	if err := Require(identity, CapMatchManage); err != nil {
		return nil, err
	}
	deadline, err := validateMatchRequest(req)
	if err != nil {
		return nil, err
	}
	tournamentName, err := s.resolveTournamentName(ctx, req.TournamentID)
	if err != nil {
		return nil, err
	}

	match := &models.Match{
		HomeTeam:       strings.TrimSpace(req.HomeTeam),
		AwayTeam:       strings.TrimSpace(req.AwayTeam),
		TournamentID:   req.TournamentID,
		TournamentName: tournamentName,
		Date:           req.Date,
		Time:           req.Time,
		Venue:          strings.TrimSpace(req.Venue),
		JerseyColor:    req.JerseyColor,
		Status:         req.Status,
		VotingDeadline: deadline,
		CreatedBy:      identity.Email,
	}
	if _, err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

// Update re-validates everything, re-resolves the tournament name, and clears
// the voting deadline whenever the resulting status is not "voting".
func (s *matchService) Update(ctx context.Context, identity models.Identity, id string, req models.SaveMatchRequest) (*models.Match, error) {
	if err := Require(identity, CapMatchManage); err != nil {
		return nil, err
	}
	deadline, err := validateMatchRequest(req)
	if err != nil {
		return nil, err
	}

	match, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	tournamentName, err := s.resolveTournamentName(ctx, req.TournamentID)
	if err != nil {
		return nil, err
	}

	match.HomeTeam = strings.TrimSpace(req.HomeTeam)
	match.AwayTeam = strings.TrimSpace(req.AwayTeam)
	match.TournamentID = req.TournamentID
	match.TournamentName = tournamentName
	match.Date = req.Date
	match.Time = req.Time
	match.Venue = strings.TrimSpace(req.Venue)
	match.JerseyColor = req.JerseyColor
	match.Status = req.Status
	if req.Status == models.MatchStatusVoting {
		match.VotingDeadline = deadline
	} else {
		match.VotingDeadline = nil
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetByID(ctx context.Context, identity models.Identity, id string) (*models.Match, error) {
	if err := Require(identity, CapMatchView); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

func (s *matchService) List(ctx context.Context, identity models.Identity) ([]*models.Match, error) {
	if err := Require(identity, CapMatchView); err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// SetStatus sets the match status explicitly. There is no timer anywhere: a
// passed deadline only stops new votes, it never moves the status itself.
func (s *matchService) SetStatus(ctx context.Context, identity models.Identity, id string, req models.SetMatchStatusRequest) (*models.Match, error) {
	if err := Require(identity, CapMatchManage); err != nil {
		return nil, err
	}

	statusOK := false
	for _, st := range models.ValidMatchStatuses {
		if req.Status == st {
			statusOK = true
			break
		}
	}
	if !statusOK {
		return nil, newValidationError("status", fmt.Sprintf("status must be one of %v", models.ValidMatchStatuses))
	}

	match, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	var deadline *time.Time
	if req.Status == models.MatchStatusVoting {
		deadline = match.VotingDeadline
		if req.VotingDeadline != "" {
			parsed, err := time.Parse(time.RFC3339, req.VotingDeadline)
			if err != nil {
				return nil, newValidationError("votingDeadline", "voting deadline must be an RFC3339 timestamp")
			}
			deadline = &parsed
		}
	} else if req.VotingDeadline != "" {
		return nil, newValidationError("votingDeadline", "voting deadline is only allowed while status is voting")
	}

	if err := s.matchRepo.SetStatus(ctx, id, req.Status, deadline); err != nil {
		return nil, fmt.Errorf("failed to set match status: %w", err)
	}
	match.Status = req.Status
	match.VotingDeadline = deadline
	return match, nil
}

func (s *matchService) load(ctx context.Context, id string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}
