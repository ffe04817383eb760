package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"matchday-backend-go/internal/db"
	"matchday-backend-go/internal/models"
)

type userService struct {
	userRepo  db.UserRepository
	authAdmin AuthAdmin
	activity  ActivityService
	logger    *zap.Logger
}

// NewUserService creates a UserService backed by the user repository and the
// Firebase Auth admin client (for custom-claim sync).
func NewUserService(userRepo db.UserRepository, authAdmin AuthAdmin, activity ActivityService, logger *zap.Logger) UserService {
	return &userService{userRepo: userRepo, authAdmin: authAdmin, activity: activity, logger: logger}
}

// ValidateRegistration checks the registration payload, including jersey
// number uniqueness among non-suspended users, without writing anything.
func (s *userService) ValidateRegistration(ctx context.Context, req models.RegisterRequest) error {
	fields := map[string]string{}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email address is required"
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		fields["displayName"] = "display name is required"
	}
	if req.JerseyNumber < 1 || req.JerseyNumber > 99 {
		fields["jerseyNumber"] = "jersey number must be between 1 and 99"
	}
	if req.DateOfBirth != "" {
		if _, err := time.Parse("2006-01-02", req.DateOfBirth); err != nil {
			fields["dateOfBirth"] = "date of birth must be YYYY-MM-DD"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	holder, err := s.userRepo.GetByJerseyNumber(ctx, req.JerseyNumber)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("failed to check jersey number: %w", err)
	}
	if holder != nil && holder.Email != email {
		return &ValidationError{Fields: map[string]string{
			"jerseyNumber": fmt.Sprintf("jersey number %d is already taken", req.JerseyNumber),
		}}
	}
	return nil
}

// Register validates and creates the user document in pending status with the
// Player role. Approval and claims sync happen later via Approve.
func (s *userService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := s.ValidateRegistration(ctx, req); err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Phone:        strings.TrimSpace(req.Phone),
		JerseyNumber: req.JerseyNumber,
		DateOfBirth:  req.DateOfBirth,
		Roles:        []models.Role{models.RolePlayer},
		UserStatus:   models.UserStatusPending,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUser, user.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, identity models.Identity, email string) (*models.User, error) {
	// A user may always read their own profile; anything else is admin-only.
	if !strings.EqualFold(identity.Email, email) {
		if err := Require(identity, CapUserAdmin); err != nil {
			return nil, err
		}
	} else if identity.UID == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, identity models.Identity, statusFilter models.UserStatus) ([]*models.User, error) {
	if err := Require(identity, CapUserAdmin); err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Approve moves a pending user to approved and pushes the role/status claims
// to Firebase so subsequent tokens carry them.
func (s *userService) Approve(ctx context.Context, identity models.Identity, email string) (*models.User, error) {
	if err := Require(identity, CapUserAdmin); err != nil {
		return nil, err
	}

	user, err := s.loadUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.UserStatus != models.UserStatusPending {
		return nil, fmt.Errorf("%w: user is %q, only pending users can be approved", ErrInvalidState, user.UserStatus)
	}

	user.UserStatus = models.UserStatusApproved
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to approve user '%s': %w", email, err)
	}
	s.syncClaims(ctx, user)

	s.activity.Record(ctx, models.ActivityLog{
		Actor:      identity.Email,
		Action:     "USER_APPROVE",
		TargetType: "USER",
		TargetID:   user.Email,
	})
	return user, nil
}

// Suspend moves an approved user to suspended and re-syncs claims.
func (s *userService) Suspend(ctx context.Context, identity models.Identity, email string) (*models.User, error) {
	if err := Require(identity, CapUserAdmin); err != nil {
		return nil, err
	}

	user, err := s.loadUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.UserStatus != models.UserStatusApproved {
		return nil, fmt.Errorf("%w: user is %q, only approved users can be suspended", ErrInvalidState, user.UserStatus)
	}

	user.UserStatus = models.UserStatusSuspended
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to suspend user '%s': %w", email, err)
	}
	s.syncClaims(ctx, user)

	s.activity.Record(ctx, models.ActivityLog{
		Actor:      identity.Email,
		Action:     "USER_SUSPEND",
		TargetType: "USER",
		TargetID:   user.Email,
	})
	return user, nil
}

// SetRoles replaces a user's role set with a validated subset of the known
// roles and re-syncs claims.
func (s *userService) SetRoles(ctx context.Context, identity models.Identity, email string, roles []models.Role) (*models.User, error) {
	if err := Require(identity, CapUserAdmin); err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, newValidationError("roles", "at least one role is required")
	}
	for _, role := range roles {
		valid := false
		for _, known := range models.ValidRoles {
			if role == known {
				valid = true
				break
			}
		}
		if !valid {
			return nil, newValidationError("roles", fmt.Sprintf("unknown role %q", role))
		}
	}

	user, err := s.loadUser(ctx, email)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to set roles for user '%s': %w", email, err)
	}
	s.syncClaims(ctx, user)

	s.activity.Record(ctx, models.ActivityLog{
		Actor:      identity.Email,
		Action:     "USER_SET_ROLES",
		TargetType: "USER",
		TargetID:   user.Email,
		Details:    map[string]interface{}{"roles": roles},
	})
	return user, nil
}

func (s *userService) loadUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// syncClaims pushes roles and userStatus into Firebase custom claims. A user
// who registered before creating their Firebase account simply has no claims
// yet; that case is logged and skipped, and the claims land on the next
// approval or role change after the account exists.
func (s *userService) syncClaims(ctx context.Context, user *models.User) {
	record, err := s.authAdmin.GetUserByEmail(ctx, user.Email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			s.logger.Warn("no Firebase account for user, skipping claims sync", zap.String("email", user.Email))
			return
		}
		s.logger.Error("failed to look up Firebase account for claims sync", zap.String("email", user.Email), zap.Error(err))
		return
	}

	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}
	claims := map[string]interface{}{
		"roles":      roles,
		"userStatus": string(user.UserStatus),
	}
	if err := s.authAdmin.SetCustomUserClaims(ctx, record.UID, claims); err != nil {
		s.logger.Error("failed to set custom claims", zap.String("email", user.Email), zap.Error(err))
	}
}
