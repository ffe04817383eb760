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

type tournamentService struct {
	tournamentRepo db.TournamentRepository
}

// NewTournamentService creates a TournamentService.
func NewTournamentService(tournamentRepo db.TournamentRepository) TournamentService {
	return &tournamentService{tournamentRepo: tournamentRepo}
}

func validateTournamentRequest(req models.CreateTournamentRequest) error {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "tournament name is required"
	}
	if req.StartDate != "" {
		if _, err := time.Parse("2006-01-02", req.StartDate); err != nil {
			fields["startDate"] = "start date must be YYYY-MM-DD"
		}
	}
	if req.EndDate != "" {
		if _, err := time.Parse("2006-01-02", req.EndDate); err != nil {
			fields["endDate"] = "end date must be YYYY-MM-DD"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *tournamentService) Create(ctx context.Context, identity models.Identity, req models.CreateTournamentRequest) (*models.Tournament, error) {
	if err := Require(identity, CapTournamentManage); err != nil {
		return nil, err
	}
	if err := validateTournamentRequest(req); err != nil {
		return nil, err
	}

	t := &models.Tournament{
		Name:      strings.TrimSpace(req.Name),
		Season:    req.Season,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if _, err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return t, nil
}

func (s *tournamentService) GetByID(ctx context.Context, identity models.Identity, id string) (*models.Tournament, error) {
	if err := Require(identity, CapMatchView); err != nil {
		return nil, err
	}
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTournamentNotFound, id)
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return t, nil
}

func (s *tournamentService) List(ctx context.Context, identity models.Identity) ([]*models.Tournament, error) {
	if err := Require(identity, CapMatchView); err != nil {
		return nil, err
	}
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) Update(ctx context.Context, identity models.Identity, id string, req models.CreateTournamentRequest) (*models.Tournament, error) {
	if err := Require(identity, CapTournamentManage); err != nil {
		return nil, err
	}
	if err := validateTournamentRequest(req); err != nil {
		return nil, err
	}

	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTournamentNotFound, id)
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	t.Name = strings.TrimSpace(req.Name)
	t.Season = req.Season
	t.StartDate = req.StartDate
	t.EndDate = req.EndDate
	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}
	return t, nil
}
