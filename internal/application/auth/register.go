package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Identidad-api/internal/application/dto"
	"github.com/jhoicas/Identidad-api/internal/domain"
	authdomain "github.com/jhoicas/Identidad-api/internal/domain/auth"
	"github.com/jhoicas/Identidad-api/internal/domain/entity"
	"github.com/jhoicas/Identidad-api/pkg/config"
	"github.com/jhoicas/Identidad-api/pkg/password"
	"github.com/jhoicas/Identidad-api/pkg/random"
)

// MsgRegisterPending mensaje del registro en modo pending.
const MsgRegisterPending = "registro recibido; la cuenta quedará activa tras la aprobación y la verificación del email"

// RegisterResult salida del registro: según el modo de despliegue trae el
// mensaje de aprobación pendiente o la respuesta de auth completa.
type RegisterResult struct {
	Pending bool
	Message string
	Auth    *dto.AuthResponse
	Account dto.AccountResponse
	Tenant  dto.TenantResponse

	// VerificationToken se entrega al colaborador de email (fuera de este
	// subsistema); nunca viaja en la respuesta HTTP.
	VerificationToken string
}

// Register crea el tenant (o se une a uno existente por id) y la cuenta en
// estado PENDING con su token de verificación. Devuelve ErrEmailAlreadyExists
// si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*RegisterResult, error) {
	email := normalizeEmail(in.Email)

	existing, err := uc.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	now := time.Now()
	var tenant *entity.Tenant
	role := entity.RoleOwner

	if in.TenantID != "" {
		tenant, err = uc.tenants.GetByID(ctx, in.TenantID)
		if err != nil {
			return nil, err
		}
		if tenant == nil {
			return nil, domain.ErrTenantNotFound
		}
		role = entity.RoleEmployee
	} else {
		name := in.TenantName
		if name == "" {
			name = in.FirstName + " " + in.LastName
		}
		tenant, err = uc.createTenantWithSlug(ctx, name, now)
		if err != nil {
			return nil, err
		}
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	verifToken, err := random.Token(32)
	if err != nil {
		return nil, err
	}
	verifExpiry := now.Add(uc.authCfg.VerificationTTL)

	account := &entity.Account{
		ID:                    uuid.New().String(),
		TenantID:              tenant.ID,
		Email:                 email,
		PasswordHash:          hash,
		FirstName:             in.FirstName,
		LastName:              in.LastName,
		Role:                  role,
		Status:                entity.AccountPending,
		EmailVerified:         false,
		VerificationToken:     &verifToken,
		VerificationExpiresAt: &verifExpiry,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("account_id", account.ID).
		Str("tenant_id", tenant.ID).
		Str("slug", tenant.Slug).
		Msg("cuenta registrada")

	result := &RegisterResult{
		Account:           toAccountResponse(account),
		Tenant:            toTenantResponse(tenant),
		VerificationToken: verifToken,
	}

	if uc.authCfg.RegisterMode == config.RegisterModeTokens {
		access, refresh, err := uc.issuePair(account)
		if err != nil {
			return nil, err
		}
		if err := uc.accounts.SetRefreshToken(ctx, account.ID, &refresh, nil); err != nil {
			return nil, err
		}
		account.RefreshToken = &refresh
		result.Auth = authResponse(account, tenant, access, refresh)
		return result, nil
	}

	result.Pending = true
	result.Message = MsgRegisterPending
	return result, nil
}

// createTenantWithSlug deriva el slug del nombre y crea el tenant. El índice
// único de slug es la autoridad final: si dos registros concurrentes derivan
// el mismo slug, el perdedor recibe ErrConflict del insert y reintenta con el
// siguiente sufijo en lugar de propagar el 409.
func (uc *AuthUseCase) createTenantWithSlug(ctx context.Context, name string, now time.Time) (*entity.Tenant, error) {
	const maxAttempts = 3
	for attempt := 0; attempt < maxAttempts; attempt++ {
		slug, err := authdomain.UniqueSlug(ctx, name, uc.tenants.SlugExists)
		if err != nil {
			return nil, err
		}
		tenant := &entity.Tenant{
			ID:        uuid.New().String(),
			Name:      name,
			Slug:      slug,
			Status:    entity.TenantTrial,
			Plan:      entity.PlanFree,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = uc.tenants.Create(ctx, tenant)
		if err == nil {
			return tenant, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		uc.log.Warn().Str("slug", slug).Msg("slug tomado por un registro concurrente, reintentando")
	}
	return nil, domain.ErrConflict
}
