package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Identidad-api/internal/application/dto"
	"github.com/jhoicas/Identidad-api/internal/domain"
	authdomain "github.com/jhoicas/Identidad-api/internal/domain/auth"
	"github.com/jhoicas/Identidad-api/internal/domain/entity"
	"github.com/jhoicas/Identidad-api/internal/infrastructure/oauth"
)

// Estados posibles del resultado de un login externo. El caller debe poder
// renderizar los tres desenlaces por separado, nunca mezclados.
const (
	OAuthSuccess = "success"
	OAuthPending = "pending"
	OAuthError   = "error"
)

// MsgOAuthNoEmail instruye al usuario cuando el proveedor no entrega email.
const MsgOAuthNoEmail = "el proveedor no entregó un email utilizable; haz público o verificado tu email en el proveedor, o usa otro método de acceso"

// OAuthResult resultado de un login con proveedor externo.
type OAuthResult struct {
	Status  string // success | pending | error
	Message string
	Auth    *dto.AuthResponse // solo en success
}

// AuthCodeURL arma la URL de consentimiento del proveedor indicado.
func (uc *AuthUseCase) AuthCodeURL(provider, state string) (string, error) {
	p, ok := uc.providers[provider]
	if !ok {
		return "", domain.ErrNotFound
	}
	return p.AuthCodeURL(state), nil
}

// HandleProviderCallback canjea el code, obtiene el perfil normalizado y lo
// reconcilia contra las cuentas locales.
func (uc *AuthUseCase) HandleProviderCallback(ctx context.Context, provider, code string) (*OAuthResult, error) {
	p, ok := uc.providers[provider]
	if !ok {
		return nil, domain.ErrNotFound
	}
	accessToken, err := p.Exchange(ctx, code)
	if err != nil {
		uc.log.Warn().Str("provider", provider).Err(err).Msg("exchange OAuth falló")
		return &OAuthResult{Status: OAuthError, Message: "no se pudo completar el acceso con " + provider}, nil
	}
	profile, err := p.FetchProfile(ctx, accessToken)
	if err != nil {
		uc.log.Warn().Str("provider", provider).Err(err).Msg("perfil OAuth falló")
		return &OAuthResult{Status: OAuthError, Message: "no se pudo obtener el perfil de " + provider}, nil
	}
	return uc.HandleExternalProfile(ctx, profile)
}

// HandleExternalProfile reconcilia un perfil de proveedor externo con las
// cuentas locales:
//   - sin email utilizable -> error (no se crea nada);
//   - cuenta existente -> vincula el proveedor si falta y procede como login
//     normal (aplica el gate de estado);
//   - sin cuenta -> crea tenant + cuenta PENDING con email verificado (el
//     proveedor responde por la dirección) y devuelve pending sin tokens:
//     la aprobación administrativa sigue pendiente.
func (uc *AuthUseCase) HandleExternalProfile(ctx context.Context, profile *oauth.Profile) (*OAuthResult, error) {
	if profile == nil || profile.Email == "" {
		return &OAuthResult{Status: OAuthError, Message: MsgOAuthNoEmail}, nil
	}
	email := normalizeEmail(profile.Email)

	account, err := uc.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return uc.loginLinkedAccount(ctx, account, profile)
	}

	// Primera vez: tenant propio + cuenta pendiente de aprobación.
	now := time.Now()
	tenantName := profile.Name
	if tenantName == "" {
		tenantName = profile.FirstName + " " + profile.LastName
	}
	slug, err := authdomain.UniqueSlug(ctx, tenantName, uc.tenants.SlugExists)
	if err != nil {
		return nil, err
	}
	tenant := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      tenantName,
		Slug:      slug,
		Status:    entity.TenantTrial,
		Plan:      entity.PlanFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.tenants.Create(ctx, tenant); err != nil {
		return nil, err
	}

	account = &entity.Account{
		ID:            uuid.New().String(),
		TenantID:      tenant.ID,
		Email:         email,
		FirstName:     profile.FirstName,
		LastName:      profile.LastName,
		Role:          entity.RoleOwner,
		Status:        entity.AccountPending,
		EmailVerified: true, // el proveedor responde por la dirección
		OAuthProvider: ptr(profile.Provider),
		OAuthID:       ptr(profile.ProviderID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("account_id", account.ID).
		Str("provider", profile.Provider).
		Msg("cuenta creada desde proveedor externo, pendiente de aprobación")
	return &OAuthResult{Status: OAuthPending, Message: "cuenta creada; pendiente de aprobación administrativa"}, nil
}

// loginLinkedAccount vincula el identificador del proveedor si aún no está y
// procede como un login normal sobre la cuenta existente.
func (uc *AuthUseCase) loginLinkedAccount(ctx context.Context, account *entity.Account, profile *oauth.Profile) (*OAuthResult, error) {
	if account.OAuthProvider == nil || *account.OAuthProvider != profile.Provider {
		account.OAuthProvider = ptr(profile.Provider)
		account.OAuthID = ptr(profile.ProviderID)
		account.UpdatedAt = time.Now()
		if err := uc.accounts.Update(ctx, account); err != nil {
			return nil, err
		}
	}

	tenant, err := uc.tenants.GetByID(ctx, account.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}
	if err := authdomain.Evaluate(account, tenant); err != nil {
		return &OAuthResult{Status: OAuthError, Message: err.Error()}, nil
	}

	access, refresh, err := uc.issuePair(account)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := uc.accounts.SetRefreshToken(ctx, account.ID, &refresh, &now); err != nil {
		return nil, err
	}
	account.RefreshToken = &refresh
	account.LastLoginAt = &now

	uc.log.Info().
		Str("account_id", account.ID).
		Str("provider", profile.Provider).
		Msg("login con proveedor externo")
	return &OAuthResult{
		Status: OAuthSuccess,
		Auth:   authResponse(account, tenant, access, refresh),
	}, nil
}
