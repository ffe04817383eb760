package models

import "time"

// Role is one of the club roles a user may hold. Roles are stored on the user
// document and mirrored into Firebase custom claims so the token itself
// carries them.
type Role string

const (
	RolePlayer   Role = "Player"
	RoleManager  Role = "Manager"
	RoleSelector Role = "Selector"
	RoleAdmin    Role = "Admin"
)

// ValidRoles lists every role the system knows about.
var ValidRoles = []Role{RolePlayer, RoleManager, RoleSelector, RoleAdmin}

// UserStatus is the lifecycle state of a registered user.
type UserStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusApproved  UserStatus = "approved"
	UserStatusSuspended UserStatus = "suspended"
)

// User represents a club member. The email address is the natural key and
// doubles as the Firestore document ID.
type User struct {
	Email        string     `json:"email" firestore:"-"`
	DisplayName  string     `json:"displayName" firestore:"displayName"`
	Phone        string     `json:"phone,omitempty" firestore:"phone,omitempty"`
	JerseyNumber int        `json:"jerseyNumber" firestore:"jerseyNumber"`
	DateOfBirth  string     `json:"dateOfBirth,omitempty" firestore:"dateOfBirth,omitempty"`
	Roles        []Role     `json:"roles" firestore:"roles"`
	UserStatus   UserStatus `json:"userStatus" firestore:"userStatus"`
	CreatedAt    time.Time  `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt    time.Time  `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Identity is the decoded caller identity produced by the auth middleware from
// a verified Firebase ID token. It is passed explicitly into every service
// call; nothing reads auth state from ambient globals.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	Roles       []Role
	Status      UserStatus
}

// HasRole reports whether the identity carries the given role claim.
func (id Identity) HasRole(role Role) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}
