package dto

import "time"

// RegisterRequest entrada para registro: crea tenant nuevo (tenant_name) o se
// une a uno existente (tenant_id). Exactamente uno de los dos.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"omitempty,max=100"`
	TenantName string `json:"tenant_name" validate:"omitempty,max=200"`
	TenantID   string `json:"tenant_id" validate:"omitempty,uuid"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest entrada para rotar el par de tokens.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest entrada para cerrar sesión. El refresh token identifica la
// cuenta cuando no hay subject autenticado.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"omitempty"`
}

// VerifyEmailRequest entrada para verificar email.
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// ResendVerificationRequest entrada para reenviar verificación.
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AcceptInvitationRequest entrada para aceptar una invitación.
type AcceptInvitationRequest struct {
	Token     string `json:"token" validate:"required"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Password  string `json:"password" validate:"required,min=8"`
}

// CreateInvitationRequest entrada para emitir una invitación (admin).
type CreateInvitationRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=owner admin manager employee"`
}

// ChangeRoleRequest entrada para cambiar el rol de una cuenta.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=owner admin manager employee"`
}

// ChangeStatusRequest entrada para cambiar el estado de una cuenta.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended inactive"`
}

// AccountResponse salida de una cuenta (campos seguros, nunca el hash).
type AccountResponse struct {
	ID            string     `json:"id"`
	TenantID      string     `json:"tenant_id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	EmailVerified bool       `json:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// TenantResponse salida de un tenant.
type TenantResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
	Plan   string `json:"plan"`
}

// AuthResponse contrato canónico de sesión: cuenta + tenant + par de tokens.
// (Una sola forma de respuesta, siempre con tenant.)
type AuthResponse struct {
	Account      AccountResponse `json:"account"`
	Tenant       TenantResponse  `json:"tenant"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

// RegisterResponse salida del registro en modo pending.
type RegisterResponse struct {
	Message string          `json:"message"`
	Account AccountResponse `json:"account"`
	Tenant  TenantResponse  `json:"tenant"`
}

// InvitationResponse resumen de una invitación. El token solo se incluye al
// emitirla, nunca al consultarla.
type InvitationResponse struct {
	Email      string    `json:"email"`
	TenantID   string    `json:"tenant_id"`
	TenantName string    `json:"tenant_name,omitempty"`
	Role       string    `json:"role"`
	ExpiresAt  time.Time `json:"expires_at"`
	Token      string    `json:"token,omitempty"`
}
