package entity

import "time"

// Invitation representa una invitación pendiente para crear una cuenta
// bajo un tenant con un rol asignado. Se consume exactamente una vez.
type Invitation struct {
	ID         string
	Token      string // opaco, no adivinable, único
	Email      string
	TenantID   string
	Role       string
	ExpiresAt  time.Time
	Consumed   bool
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// Expired indica si la invitación ya venció respecto a now.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
