package service

import "github.com/souqline/internal/constants"

// Actor identifies who is performing an operation, for authorization
// checks and history attribution. The zero value is the system actor.
type Actor struct {
	ID   uint
	Role string
}

// SystemActor attributes an action to the platform itself.
func SystemActor() Actor {
	return Actor{Role: constants.ActorRoleSystem}
}

// IsAdmin reports whether the actor is an admin.
func (a Actor) IsAdmin() bool {
	return a.Role == constants.ActorRoleAdmin
}

// IsSystem reports whether the actor is the platform.
func (a Actor) IsSystem() bool {
	return a.Role == constants.ActorRoleSystem || a.Role == ""
}

// historyActorID returns the actor ID for history rows, nil for system.
func (a Actor) historyActorID() *uint {
	if a.IsSystem() || a.ID == 0 {
		return nil
	}
	id := a.ID
	return &id
}

// historyRole returns the role recorded on history rows.
func (a Actor) historyRole() string {
	if a.Role == "" {
		return constants.ActorRoleSystem
	}
	return a.Role
}
