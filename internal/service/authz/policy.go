// Package authz holds the authorization rules in one place, as pure
// predicates over the caller's identity claims. Handlers decide what a
// request is trying to do and ask this package whether the caller may.
package authz

import "github.com/mbriand/railgo/internal/domain"

// Actor is the authenticated caller, as established by the auth middleware.
type Actor struct {
	UserID int64
	Role   domain.Role
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

// CanManageStations reports whether the actor may create, update, or
// delete stations.
func CanManageStations(a Actor) bool {
	return a.IsAdmin()
}

// CanManageTrains reports whether the actor may create, update, or
// delete trains.
func CanManageTrains(a Actor) bool {
	return a.IsAdmin()
}

// CanListUsers reports whether the actor may enumerate all accounts.
func CanListUsers(a Actor) bool {
	return a.IsAdmin()
}

// CanViewUser reports whether the actor may read the given account.
func CanViewUser(a Actor, targetID int64) bool {
	return a.UserID == targetID || a.IsAdmin()
}

// CanUpdateUser reports whether the actor may modify the given account.
func CanUpdateUser(a Actor, targetID int64) bool {
	return a.UserID == targetID || a.IsAdmin()
}

// CanDeleteUser reports whether the actor may delete the given account.
// Deletion is strictly personal: admins cannot remove other accounts.
func CanDeleteUser(a Actor, targetID int64) bool {
	return a.UserID == targetID
}

// CanAssignRole reports whether the actor may set a role on an account.
// Non-admins can only ever hold the default role.
func CanAssignRole(a Actor, role domain.Role) bool {
	return role == domain.RoleUser || a.IsAdmin()
}

// CanInspectTicket reports whether the actor may look up or validate
// someone's ticket.
func CanInspectTicket(a Actor) bool {
	return a.IsAdmin()
}
