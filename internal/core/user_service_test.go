package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"matchday-backend-go/internal/models"
)

func newUserServiceForTest() (UserService, *fakeUserRepo, *fakeAuthAdmin) {
	userRepo := newFakeUserRepo()
	authAdmin := newFakeAuthAdmin()
	activity := NewActivityService(&fakeActivityRepo{}, zap.NewNop())
	return NewUserService(userRepo, authAdmin, activity, zap.NewNop()), userRepo, authAdmin
}

func validRegistration() models.RegisterRequest {
	return models.RegisterRequest{
		Email:        "new.player@club.test",
		DisplayName:  "New Player",
		JerseyNumber: 7,
	}
}

func TestRegisterCreatesPendingPlayer(t *testing.T) {
	service, userRepo, _ := newUserServiceForTest()

	user, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.Equal(t, "new.player@club.test", user.Email)
	assert.Equal(t, models.UserStatusPending, user.UserStatus)
	assert.Equal(t, []models.Role{models.RolePlayer}, user.Roles)

	stored, err := userRepo.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusPending, stored.UserStatus)
}

func TestRegisterNormalizesEmailCase(t *testing.T) {
	service, userRepo, _ := newUserServiceForTest()

	req := validRegistration()
	req.Email = "New.Player@Club.Test"
	user, err := service.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "new.player@club.test", user.Email)

	_, err = userRepo.GetByEmail(context.Background(), "new.player@club.test")
	assert.NoError(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service, _, _ := newUserServiceForTest()

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	req := validRegistration()
	req.JerseyNumber = 8
	_, err = service.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestRegisterRejectsTakenJerseyNumber(t *testing.T) {
	service, userRepo, _ := newUserServiceForTest()

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	req := models.RegisterRequest{
		Email:        "other.player@club.test",
		DisplayName:  "Other Player",
		JerseyNumber: 7,
	}
	_, err = service.Register(context.Background(), req)

	ve, ok := AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	assert.Contains(t, ve.Fields, "jerseyNumber")

	// No document may be written on a failed registration.
	_, err = userRepo.GetByEmail(context.Background(), "other.player@club.test")
	assert.Error(t, err)
}

func TestRegisterJerseyFreedBySuspendedHolder(t *testing.T) {
	service, userRepo, _ := newUserServiceForTest()

	holder := &models.User{
		Email:        "old.player@club.test",
		DisplayName:  "Old Player",
		JerseyNumber: 7,
		Roles:        []models.Role{models.RolePlayer},
		UserStatus:   models.UserStatusSuspended,
	}
	require.NoError(t, userRepo.Create(context.Background(), holder))

	_, err := service.Register(context.Background(), validRegistration())
	assert.NoError(t, err)
}

func TestValidateRegistrationFieldErrors(t *testing.T) {
	service, _, _ := newUserServiceForTest()

	err := service.ValidateRegistration(context.Background(), models.RegisterRequest{
		Email:        "not-an-email",
		DisplayName:  "  ",
		JerseyNumber: 120,
		DateOfBirth:  "31-12-1990",
	})

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "displayName")
	assert.Contains(t, ve.Fields, "jerseyNumber")
	assert.Contains(t, ve.Fields, "dateOfBirth")
}

func TestApproveMovesPendingUserAndSyncsClaims(t *testing.T) {
	service, userRepo, authAdmin := newUserServiceForTest()
	admin := approvedIdentity("admin@club.test", models.RoleAdmin)

	registered, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	approved, err := service.Approve(context.Background(), admin, registered.Email)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusApproved, approved.UserStatus)

	stored, err := userRepo.GetByEmail(context.Background(), registered.Email)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusApproved, stored.UserStatus)

	claims := authAdmin.claims["uid-"+registered.Email]
	require.NotNil(t, claims, "approval must push custom claims")
	assert.Equal(t, "approved", claims["userStatus"])
	assert.Equal(t, []string{"Player"}, claims["roles"])
}

func TestApproveRejectsNonPendingUser(t *testing.T) {
	service, _, _ := newUserServiceForTest()
	admin := approvedIdentity("admin@club.test", models.RoleAdmin)

	registered, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	_, err = service.Approve(context.Background(), admin, registered.Email)
	require.NoError(t, err)

	_, err = service.Approve(context.Background(), admin, registered.Email)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestApproveRequiresAdmin(t *testing.T) {
	service, _, _ := newUserServiceForTest()

	registered, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	manager := approvedIdentity("manager@club.test", models.RoleManager)
	_, err = service.Approve(context.Background(), manager, registered.Email)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSuspendRequiresApprovedUser(t *testing.T) {
	service, _, _ := newUserServiceForTest()
	admin := approvedIdentity("admin@club.test", models.RoleAdmin)

	registered, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = service.Suspend(context.Background(), admin, registered.Email)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = service.Approve(context.Background(), admin, registered.Email)
	require.NoError(t, err)

	suspended, err := service.Suspend(context.Background(), admin, registered.Email)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusSuspended, suspended.UserStatus)
}

func TestSetRolesValidatesRoleNames(t *testing.T) {
	service, _, _ := newUserServiceForTest()
	admin := approvedIdentity("admin@club.test", models.RoleAdmin)

	registered, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = service.SetRoles(context.Background(), admin, registered.Email, []models.Role{"Goalkeeper"})
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "roles")

	_, err = service.SetRoles(context.Background(), admin, registered.Email, nil)
	_, ok = AsValidationError(err)
	assert.True(t, ok)
}

func TestSetRolesReplacesRoleSet(t *testing.T) {
	service, userRepo, authAdmin := newUserServiceForTest()
	admin := approvedIdentity("admin@club.test", models.RoleAdmin)

	registered, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	updated, err := service.SetRoles(context.Background(), admin, registered.Email,
		[]models.Role{models.RolePlayer, models.RoleSelector})
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Role{models.RolePlayer, models.RoleSelector}, updated.Roles)

	stored, err := userRepo.GetByEmail(context.Background(), registered.Email)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Role{models.RolePlayer, models.RoleSelector}, stored.Roles)

	claims := authAdmin.claims["uid-"+registered.Email]
	require.NotNil(t, claims)
	assert.ElementsMatch(t, []string{"Player", "Selector"}, claims["roles"])
}

func TestGetByEmailSelfAndAdminAccess(t *testing.T) {
	service, _, _ := newUserServiceForTest()

	registered, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	// Pending users may still read their own profile.
	self := models.Identity{UID: "uid-self", Email: registered.Email, Status: models.UserStatusPending}
	_, err = service.GetByEmail(context.Background(), self, registered.Email)
	assert.NoError(t, err)

	player := approvedIdentity("someone.else@club.test", models.RolePlayer)
	_, err = service.GetByEmail(context.Background(), player, registered.Email)
	assert.ErrorIs(t, err, ErrForbidden)

	admin := approvedIdentity("admin@club.test", models.RoleAdmin)
	_, err = service.GetByEmail(context.Background(), admin, registered.Email)
	assert.NoError(t, err)
}

func TestListFiltersByStatus(t *testing.T) {
	service, _, _ := newUserServiceForTest()
	admin := approvedIdentity("admin@club.test", models.RoleAdmin)

	first, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	second := validRegistration()
	second.Email = "second.player@club.test"
	second.JerseyNumber = 9
	_, err = service.Register(context.Background(), second)
	require.NoError(t, err)

	_, err = service.Approve(context.Background(), admin, first.Email)
	require.NoError(t, err)

	pending, err := service.List(context.Background(), admin, models.UserStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "second.player@club.test", pending[0].Email)

	all, err := service.List(context.Background(), admin, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
