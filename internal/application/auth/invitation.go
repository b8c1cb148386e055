package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Identidad-api/internal/application/dto"
	"github.com/jhoicas/Identidad-api/internal/domain"
	"github.com/jhoicas/Identidad-api/internal/domain/entity"
	"github.com/jhoicas/Identidad-api/pkg/password"
	"github.com/jhoicas/Identidad-api/pkg/random"
)

// InvitationDetails devuelve el resumen de una invitación para mostrar antes
// de aceptarla. Token inexistente -> ErrInvitationNotFound (404); consumida o
// vencida -> ErrInvalidToken (400).
func (uc *AuthUseCase) InvitationDetails(ctx context.Context, token string) (*dto.InvitationResponse, error) {
	inv, err := uc.invitations.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvitationNotFound
	}
	if inv.Consumed || inv.Expired(time.Now()) {
		return nil, domain.ErrInvalidToken
	}

	tenant, err := uc.tenants.GetByID(ctx, inv.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}

	return &dto.InvitationResponse{
		Email:      inv.Email,
		TenantID:   inv.TenantID,
		TenantName: tenant.Name,
		Role:       inv.Role,
		ExpiresAt:  inv.ExpiresAt,
	}, nil
}

// AcceptInvitation valida la invitación (mismos chequeos que los detalles),
// crea la cuenta ACTIVA bajo el tenant y rol de la invitación, la marca
// consumida y emite el par de tokens (auto-login). ErrEmailAlreadyExists si
// el email ya tiene cuenta.
func (uc *AuthUseCase) AcceptInvitation(ctx context.Context, in dto.AcceptInvitationRequest) (*dto.AuthResponse, error) {
	inv, err := uc.invitations.GetByToken(ctx, in.Token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvitationNotFound
	}
	if inv.Consumed || inv.Expired(time.Now()) {
		return nil, domain.ErrInvalidToken
	}

	email := normalizeEmail(inv.Email)
	existing, err := uc.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	tenant, err := uc.tenants.GetByID(ctx, inv.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}

	// El update condicional garantiza consumo exactamente-una-vez: dos accept
	// concurrentes con el mismo token dejan pasar a lo sumo uno.
	ok, err := uc.invitations.MarkConsumed(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	account := &entity.Account{
		ID:            uuid.New().String(),
		TenantID:      inv.TenantID,
		Email:         email,
		PasswordHash:  hash,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Role:          inv.Role,
		Status:        entity.AccountActive,
		EmailVerified: true, // la invitación llegó a ese email
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	access, refresh, err := uc.issuePair(account)
	if err != nil {
		return nil, err
	}
	if err := uc.accounts.SetRefreshToken(ctx, account.ID, &refresh, &now); err != nil {
		return nil, err
	}
	account.RefreshToken = &refresh
	account.LastLoginAt = &now

	uc.log.Info().
		Str("account_id", account.ID).
		Str("tenant_id", tenant.ID).
		Str("role", account.Role).
		Msg("invitación aceptada")
	return authResponse(account, tenant, access, refresh), nil
}

// CreateInvitation emite una invitación bajo el tenant del actor. Solo owner
// y admin pueden invitar, y solo un owner puede invitar con rol owner.
func (uc *AuthUseCase) CreateInvitation(ctx context.Context, actorID string, in dto.CreateInvitationRequest) (*entity.Invitation, error) {
	actor, err := uc.accounts.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrAccountNotFound
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	if actor.Role != entity.RoleOwner && actor.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Role == entity.RoleOwner && actor.Role != entity.RoleOwner {
		return nil, domain.ErrForbidden
	}

	email := normalizeEmail(in.Email)
	existing, err := uc.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	token, err := random.Token(32)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	inv := &entity.Invitation{
		ID:        uuid.New().String(),
		Token:     token,
		Email:     email,
		TenantID:  actor.TenantID,
		Role:      in.Role,
		ExpiresAt: now.Add(uc.authCfg.InvitationTTL),
		CreatedAt: now,
	}
	if err := uc.invitations.Create(ctx, inv); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("invitation_id", inv.ID).
		Str("tenant_id", inv.TenantID).
		Str("role", inv.Role).
		Msg("invitación emitida")
	return inv, nil
}
