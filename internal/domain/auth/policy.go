package auth

import "github.com/jhoicas/Identidad-api/internal/domain/entity"

// RoleChange describe un intento de cambio de rol para evaluación de política.
type RoleChange struct {
	ActorRole     string
	TargetRole    string // rol actual del afectado
	NewRole       string
	ActorIsTarget bool
}

// CanChangeRole es la política explícita de mutación de roles, evaluable en
// aislamiento de la persistencia:
//   - solo owner y admin pueden cambiar roles;
//   - nadie puede auto-elevarse a owner;
//   - solo un owner puede otorgar o quitar el rol owner.
func CanChangeRole(c RoleChange) bool {
	if !entity.ValidRole(c.NewRole) {
		return false
	}
	if c.ActorRole != entity.RoleOwner && c.ActorRole != entity.RoleAdmin {
		return false
	}
	if c.ActorIsTarget && c.NewRole == entity.RoleOwner {
		return false
	}
	if c.NewRole == entity.RoleOwner || c.TargetRole == entity.RoleOwner {
		return c.ActorRole == entity.RoleOwner && !c.ActorIsTarget
	}
	return true
}
