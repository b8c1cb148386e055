package auth

import (
	"context"
	"time"

	"github.com/jhoicas/Identidad-api/internal/domain"
	"github.com/jhoicas/Identidad-api/pkg/random"
)

// Mensajes de la verificación de email. MsgResendGeneric es deliberadamente
// idéntico exista o no la cuenta, esté o no verificada (anti-enumeración).
const (
	MsgEmailVerified   = "email verificado correctamente"
	MsgAlreadyVerified = "el email ya estaba verificado"
	MsgResendGeneric   = "si el email está registrado y pendiente de verificación, recibirás un nuevo enlace"
)

// VerifyEmail valida un token de verificación:
//   - token desconocido -> ErrInvalidToken (400);
//   - token vencido -> ErrTokenExpired (410), sin mutar estado;
//   - cuenta ya verificada -> mensaje idempotente, sin mutar estado;
//   - si no, marca verificado y limpia el vencimiento en un solo update.
func (uc *AuthUseCase) VerifyEmail(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrInvalidToken
	}
	account, err := uc.accounts.GetByVerificationToken(ctx, token)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", domain.ErrInvalidToken
	}
	if account.VerificationExpiresAt != nil && time.Now().After(*account.VerificationExpiresAt) {
		return "", domain.ErrTokenExpired
	}
	if account.EmailVerified {
		return MsgAlreadyVerified, nil
	}
	if err := uc.accounts.MarkEmailVerified(ctx, account.ID); err != nil {
		return "", err
	}
	uc.log.Info().Str("account_id", account.ID).Msg("email verificado")
	return MsgEmailVerified, nil
}

// ResendVerification responde SIEMPRE el mismo mensaje genérico, exista o no
// la cuenta y esté o no verificada. Solo muta estado (token nuevo + vencimiento
// reiniciado) cuando la cuenta existe y no está verificada.
func (uc *AuthUseCase) ResendVerification(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)

	account, err := uc.accounts.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if account == nil || account.EmailVerified {
		return MsgResendGeneric, nil
	}

	token, err := random.Token(32)
	if err != nil {
		return "", err
	}
	expiry := time.Now().Add(uc.authCfg.VerificationTTL)
	if err := uc.accounts.SetVerificationToken(ctx, account.ID, token, expiry); err != nil {
		return "", err
	}
	uc.log.Info().Str("account_id", account.ID).Msg("token de verificación reenviado")
	return MsgResendGeneric, nil
}
