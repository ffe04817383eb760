package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"matchday-backend-go/internal/models"
)

func TestRequireRejectsAnonymousCaller(t *testing.T) {
	err := Require(models.Identity{}, CapMatchView)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRequireRejectsNonApprovedUser(t *testing.T) {
	identity := models.Identity{
		UID:    "uid-1",
		Email:  "pending@club.test",
		Roles:  []models.Role{models.RoleAdmin},
		Status: models.UserStatusPending,
	}
	assert.ErrorIs(t, Require(identity, CapUserAdmin), ErrForbidden)

	identity.Status = models.UserStatusSuspended
	assert.ErrorIs(t, Require(identity, CapVoteCast), ErrForbidden)
}

func TestRequireCapabilityTable(t *testing.T) {
	cases := []struct {
		name       string
		roles      []models.Role
		capability Capability
		allowed    bool
	}{
		{"player cannot approve users", []models.Role{models.RolePlayer}, CapUserAdmin, false},
		{"admin approves users", []models.Role{models.RoleAdmin}, CapUserAdmin, true},
		{"manager manages matches", []models.Role{models.RoleManager}, CapMatchManage, true},
		{"selector cannot manage matches", []models.Role{models.RoleSelector}, CapMatchManage, false},
		{"player casts votes", []models.Role{models.RolePlayer}, CapVoteCast, true},
		{"selector saves rosters", []models.Role{models.RoleSelector}, CapSelectionManage, true},
		{"manager cannot publish selections", []models.Role{models.RoleManager}, CapSelectionPublish, false},
		{"admin cannot recall selections", []models.Role{models.RoleAdmin}, CapSelectionRecall, false},
		{"manager initiates payments", []models.Role{models.RoleManager}, CapPaymentInitiate, true},
		{"admin cannot verify payments", []models.Role{models.RoleAdmin}, CapPaymentVerify, false},
		{"multi-role caller needs only one match", []models.Role{models.RolePlayer, models.RoleSelector}, CapSelectionPublish, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			identity := approvedIdentity("caller@club.test", tc.roles...)
			err := Require(identity, tc.capability)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestRequireUnknownCapability(t *testing.T) {
	identity := approvedIdentity("admin@club.test", models.RoleAdmin)
	err := Require(identity, Capability("nonsense"))
	assert.True(t, errors.Is(err, ErrForbidden))
}
