package service

import (
	"oms-backend/internal/model"

	"github.com/google/uuid"
)

// Actor is the authenticated principal supplied to every gated operation.
// Authentication itself happens upstream (JWT middleware); services only see
// the resolved identity, role and superuser flag.
type Actor struct {
	ID          uuid.UUID
	Role        string
	IsSuperuser bool
}

// Can reports whether the actor holds any role in the allowed set.
// Superusers pass every capability check.
func (a Actor) Can(allowed []string) bool {
	return a.IsSuperuser || model.RoleIn(a.Role, allowed)
}
