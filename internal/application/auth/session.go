package auth

import (
	"context"
	"time"

	"github.com/jhoicas/Identidad-api/internal/application/dto"
	"github.com/jhoicas/Identidad-api/internal/domain"
	authdomain "github.com/jhoicas/Identidad-api/internal/domain/auth"
	pkgjwt "github.com/jhoicas/Identidad-api/pkg/jwt"
	"github.com/jhoicas/Identidad-api/pkg/password"
)

// Login verifica credenciales, evalúa el gate de estado y emite el par de
// tokens. Cuenta inexistente y password incorrecto devuelven el mismo
// ErrUnauthorized para no permitir enumeración de emails.
func (uc *AuthUseCase) Login(ctx context.Context, email, plain string) (*dto.AuthResponse, error) {
	email = normalizeEmail(email)

	account, err := uc.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil || !password.Verify(plain, account.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}

	tenant, err := uc.tenants.GetByID(ctx, account.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}
	if err := authdomain.Evaluate(account, tenant); err != nil {
		uc.log.Warn().Str("account_id", account.ID).Err(err).Msg("login denegado por gate de estado")
		return nil, err
	}

	access, refresh, err := uc.issuePair(account)
	if err != nil {
		return nil, err
	}

	// Persistir antes de responder: si el write falla los tokens no se entregan.
	now := time.Now()
	if err := uc.accounts.SetRefreshToken(ctx, account.ID, &refresh, &now); err != nil {
		return nil, err
	}
	account.RefreshToken = &refresh
	account.LastLoginAt = &now

	uc.log.Info().Str("account_id", account.ID).Str("tenant_id", tenant.ID).Msg("login exitoso")
	return authResponse(account, tenant, access, refresh), nil
}

// Refresh rota el par de tokens. El valor almacenado en la DB es la autoridad:
// un token rotado (aunque no haya expirado) o unos claims forjados fallan con
// ErrUnauthorized. La rotación es un update condicional atómico; bajo llamadas
// concurrentes sobre la misma cuenta a lo sumo una gana.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := pkgjwt.Parse(uc.jwtCfg.RefreshSecret, refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.Type != pkgjwt.KindRefresh {
		return nil, domain.ErrUnauthorized
	}

	account, err := uc.accounts.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if account == nil || account.RefreshToken == nil || *account.RefreshToken != refreshToken {
		uc.log.Warn().Str("account_id", claims.Subject).Msg("refresh rechazado: token rotado o desconocido")
		return nil, domain.ErrUnauthorized
	}

	tenant, err := uc.tenants.GetByID(ctx, account.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}
	if err := authdomain.EvaluateRefresh(account, tenant); err != nil {
		return nil, err
	}

	access, next, err := uc.issuePair(account)
	if err != nil {
		return nil, err
	}
	ok, err := uc.accounts.RotateRefreshToken(ctx, account.ID, refreshToken, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Otro refresh concurrente ganó la carrera; este pierde.
		return nil, domain.ErrUnauthorized
	}
	account.RefreshToken = &next

	return authResponse(account, tenant, access, next), nil
}

// Logout limpia el refresh token almacenado. Idempotente: repetir el logout
// con el token ya limpio no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, accountID string) error {
	account, err := uc.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrAccountNotFound
	}
	if err := uc.accounts.SetRefreshToken(ctx, accountID, nil, nil); err != nil {
		return err
	}
	uc.log.Info().Str("account_id", accountID).Msg("logout")
	return nil
}

// AccountIDFromRefreshToken extrae el subject de un refresh token presentado
// (para logout sin sesión autenticada). La validez del valor almacenado no se
// exige aquí: cerrar sesión con un token ya rotado sigue siendo idempotente.
func (uc *AuthUseCase) AccountIDFromRefreshToken(refreshToken string) (string, error) {
	claims, err := pkgjwt.Parse(uc.jwtCfg.RefreshSecret, refreshToken)
	if err != nil || claims.Type != pkgjwt.KindRefresh {
		return "", domain.ErrUnauthorized
	}
	return claims.Subject, nil
}

// CurrentSession re-valida el gate de estado y reemite el par de tokens
// (sesión deslizante). Devuelve la misma forma que Login.
func (uc *AuthUseCase) CurrentSession(ctx context.Context, accountID string) (*dto.AuthResponse, error) {
	account, err := uc.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	tenant, err := uc.tenants.GetByID(ctx, account.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}
	if err := authdomain.Evaluate(account, tenant); err != nil {
		return nil, err
	}

	access, refresh, err := uc.issuePair(account)
	if err != nil {
		return nil, err
	}
	if err := uc.accounts.SetRefreshToken(ctx, account.ID, &refresh, nil); err != nil {
		return nil, err
	}
	account.RefreshToken = &refresh

	return authResponse(account, tenant, access, refresh), nil
}
