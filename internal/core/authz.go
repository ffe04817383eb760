package core

import (
	"fmt"

	"matchday-backend-go/internal/models"
)

// Capability names an operation that requires authorization. Every
// write-protected service method declares its capability here and calls
// Require; handlers and services never compare roles ad hoc.
type Capability string

const (
	CapUserAdmin        Capability = "user:admin"        // approve, suspend, set roles, list
	CapTournamentManage Capability = "tournament:manage" // create, update
	CapMatchManage      Capability = "match:manage"      // create, update, set status
	CapMatchView        Capability = "match:view"
	CapVoteCast         Capability = "vote:cast"
	CapSelectionManage  Capability = "selection:manage" // save roster, view candidates
	CapSelectionPublish Capability = "selection:publish"
	CapSelectionRecall  Capability = "selection:recall"
	CapPaymentInitiate  Capability = "payment:initiate"
	CapPaymentVerify    Capability = "payment:verify" // verify/reject and match-level view
	CapPaymentSubmit    Capability = "payment:submit" // ownership additionally checked per request
)

var allRoles = []models.Role{models.RolePlayer, models.RoleManager, models.RoleSelector, models.RoleAdmin}

// capabilityTable maps each capability to the roles allowed to exercise it.
var capabilityTable = map[Capability][]models.Role{
	CapUserAdmin:        {models.RoleAdmin},
	CapTournamentManage: {models.RoleAdmin},
	CapMatchManage:      {models.RoleAdmin, models.RoleManager},
	CapMatchView:        allRoles,
	CapVoteCast:         allRoles,
	CapSelectionManage:  {models.RoleSelector},
	CapSelectionPublish: {models.RoleSelector},
	CapSelectionRecall:  {models.RoleSelector},
	CapPaymentInitiate:  {models.RoleManager},
	CapPaymentVerify:    {models.RoleManager},
	CapPaymentSubmit:    allRoles,
}

// Require checks that the identity is authenticated, approved, and holds at
// least one role permitted for the capability. It is the single authorization
// check in the system.
func Require(identity models.Identity, capability Capability) error {
	if identity.UID == "" {
		return ErrUnauthorized
	}
	if identity.Status != models.UserStatusApproved {
		return fmt.Errorf("%w: user status is %q", ErrForbidden, identity.Status)
	}
	allowed, ok := capabilityTable[capability]
	if !ok {
		return fmt.Errorf("%w: unknown capability %q", ErrForbidden, capability)
	}
	for _, role := range allowed {
		if identity.HasRole(role) {
			return nil
		}
	}
	return fmt.Errorf("%w: requires one of %v", ErrForbidden, allowed)
}
