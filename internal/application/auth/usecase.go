package auth

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Identidad-api/internal/application/dto"
	"github.com/jhoicas/Identidad-api/internal/domain/entity"
	"github.com/jhoicas/Identidad-api/internal/domain/repository"
	"github.com/jhoicas/Identidad-api/internal/infrastructure/oauth"
	"github.com/jhoicas/Identidad-api/pkg/config"
	pkgjwt "github.com/jhoicas/Identidad-api/pkg/jwt"
	"github.com/jhoicas/Identidad-api/pkg/logger"
)

// AuthUseCase orquesta login, rotación de refresh, logout, registro,
// verificación de email, invitaciones y login con proveedores externos.
// Toda la verdad de sesión vive en el store relacional; no hay estado
// mutable en proceso.
type AuthUseCase struct {
	accounts    repository.AccountRepository
	tenants     repository.TenantRepository
	invitations repository.InvitationRepository
	providers   map[string]oauth.Provider
	jwtCfg      config.JWTConfig
	authCfg     config.AuthConfig
	log         *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	accounts repository.AccountRepository,
	tenants repository.TenantRepository,
	invitations repository.InvitationRepository,
	jwtCfg config.JWTConfig,
	authCfg config.AuthConfig,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		accounts:    accounts,
		tenants:     tenants,
		invitations: invitations,
		providers:   map[string]oauth.Provider{},
		jwtCfg:      jwtCfg,
		authCfg:     authCfg,
		log:         log,
	}
}

// RegisterProvider registra un proveedor OAuth disponible.
func (uc *AuthUseCase) RegisterProvider(p oauth.Provider) {
	uc.providers[p.Name()] = p
}

// normalizeEmail pasa el email a minúsculas y recorta espacios.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// issuePair emite el par access+refresh con secretos y TTL independientes.
func (uc *AuthUseCase) issuePair(a *entity.Account) (access, refresh string, err error) {
	access, err = pkgjwt.Generate(uc.jwtCfg.AccessSecret, a.ID, a.Email, a.Role, a.TenantID,
		pkgjwt.KindAccess, uc.jwtCfg.Issuer, uc.jwtCfg.AccessTTL)
	if err != nil {
		return "", "", fmt.Errorf("emitir access token: %w", err)
	}
	refresh, err = pkgjwt.Generate(uc.jwtCfg.RefreshSecret, a.ID, a.Email, a.Role, a.TenantID,
		pkgjwt.KindRefresh, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("emitir refresh token: %w", err)
	}
	return access, refresh, nil
}

func toAccountResponse(a *entity.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:            a.ID,
		TenantID:      a.TenantID,
		Email:         a.Email,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Role:          a.Role,
		Status:        a.Status,
		EmailVerified: a.EmailVerified,
		LastLoginAt:   a.LastLoginAt,
		CreatedAt:     a.CreatedAt,
	}
}

func toTenantResponse(t *entity.Tenant) dto.TenantResponse {
	return dto.TenantResponse{
		ID:     t.ID,
		Name:   t.Name,
		Slug:   t.Slug,
		Status: t.Status,
		Plan:   t.Plan,
	}
}

func authResponse(a *entity.Account, t *entity.Tenant, access, refresh string) *dto.AuthResponse {
	return &dto.AuthResponse{
		Account:      toAccountResponse(a),
		Tenant:       toTenantResponse(t),
		AccessToken:  access,
		RefreshToken: refresh,
	}
}

func ptr[T any](v T) *T { return &v }
