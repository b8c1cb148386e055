package entity

import "time"

// Estados válidos para Tenant.
const (
	TenantActive    = "active"
	TenantTrial     = "trial"
	TenantSuspended = "suspended"
	TenantInactive  = "inactive"
)

// Planes SaaS disponibles.
const (
	PlanFree       = "free"
	PlanBasic      = "basic"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// Tenant representa una organización del sistema (multi-tenant).
// El slug se deriva del nombre con sufijo numérico en caso de colisión
// (ej. "Acme Co" -> "acme-co", "acme-co-1") y es único.
type Tenant struct {
	ID        string
	Name      string
	Slug      string
	Status    string // active, trial, suspended, inactive
	Plan      string // free, basic, pro, enterprise
	CreatedAt time.Time
	UpdatedAt time.Time
}
