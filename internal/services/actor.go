package services

import (
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/repository"
)

// Actor is the authenticated account a service call runs on behalf of.
type Actor struct {
	UserID    uint
	Role      string
	ClientID  *uint
	IP        string
	UserAgent string
}

// IsAdmin returns true if the actor has the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Scope limits repository reads to what the actor may see.
func (a Actor) Scope() repository.Scope {
	if a.IsAdmin() {
		return repository.Unrestricted()
	}
	return repository.OwnedBy(a.UserID, a.ClientID)
}

// assignee picks the owner of a new record. Administrators may assign to
// anyone and default to themselves; everyone else owns what they create.
func (a Actor) assignee(requested *uint) *uint {
	if a.IsAdmin() && requested != nil && *requested != 0 {
		return requested
	}
	id := a.UserID
	return &id
}

func (a Actor) requireAdmin() error {
	if !a.IsAdmin() {
		return newError(ErrForbidden, "administrator access required")
	}
	return nil
}
