package entity

import "time"

// Roles válidos para Account.
const (
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// Estados válidos para Account.
const (
	AccountPending   = "pending"
	AccountActive    = "active"
	AccountSuspended = "suspended"
	AccountInactive  = "inactive"
)

// Account representa una cuenta del sistema (pertenece a un Tenant).
// El email se normaliza a minúsculas antes de persistir y es único global.
type Account struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string // owner, admin, manager, employee
	Status       string // pending, active, suspended, inactive
	EmailVerified bool

	// A lo sumo un refresh token vigente por cuenta; la rotación sobrescribe
	// el valor anterior y lo invalida aunque no haya expirado.
	RefreshToken *string

	// Token de verificación de email pendiente (nil si no hay).
	VerificationToken     *string
	VerificationExpiresAt *time.Time

	// Vinculación con proveedor externo (google, github). nil si no aplica.
	OAuthProvider *string
	OAuthID       *string

	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidRole verifica que el rol sea uno de los conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}
