// Package authz decides whether a principal may act on a resource.
//
// The rule is the same for every owned resource: admins may act on anything,
// everybody else only on what they own. Resources without an owner (a recipe
// whose creator was deleted) are therefore admin-only.
package authz

import "github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// Principal is the authenticated actor of a request.
type Principal struct {
	UserID uint
	Role   Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

var (
	ErrForbidden    = apperr.Forbidden("Unauthorized")
	ErrAdminOnly    = apperr.Forbidden("Admins only!")
	ErrSelfDeletion = apperr.Forbidden("Admin cannot delete their own account.")
	ErrNotSelf      = apperr.Forbidden("Only the account owner can do this")
)

// Authorize allows admins, and the owner when ownerID is set.
func Authorize(p Principal, ownerID *uint) error {
	if p.IsAdmin() {
		return nil
	}
	if ownerID != nil && *ownerID == p.UserID {
		return nil
	}
	return ErrForbidden
}

// AuthorizeOwner is Authorize for resources whose owner is never null.
func AuthorizeOwner(p Principal, ownerID uint) error {
	return Authorize(p, &ownerID)
}

// RequireAdmin guards shared resources such as ingredients.
func RequireAdmin(p Principal) error {
	if !p.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}

// AuthorizeAdminDeletion guards the admin user-deletion path. Admins must use
// self-service deletion for their own account.
func AuthorizeAdminDeletion(p Principal, targetUserID uint) error {
	if err := RequireAdmin(p); err != nil {
		return err
	}
	if p.UserID == targetUserID {
		return ErrSelfDeletion
	}
	return nil
}

// AuthorizeSelf guards self-service account operations.
func AuthorizeSelf(p Principal, userID uint) error {
	if p.UserID != userID {
		return ErrNotSelf
	}
	return nil
}
