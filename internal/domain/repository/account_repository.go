package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Identidad-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// Las implementaciones devuelven (nil, nil) cuando no hay fila.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetByVerificationToken(ctx context.Context, token string) (*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Account, error)
	Delete(ctx context.Context, id string) error

	// SetRefreshToken sobrescribe incondicionalmente el refresh token
	// (login y sesión deslizante) y registra last_login_at.
	SetRefreshToken(ctx context.Context, id string, token *string, lastLogin *time.Time) error

	// RotateRefreshToken reemplaza el refresh token solo si el valor
	// almacenado coincide con expected (update condicional atómico).
	// Devuelve false si otro refresh concurrente ganó la carrera o el
	// token presentado ya fue rotado.
	RotateRefreshToken(ctx context.Context, id, expected, next string) (bool, error)

	// MarkEmailVerified marca la cuenta como verificada y limpia el
	// vencimiento del token en un solo update (el token queda para que el
	// enlace del email sea idempotente).
	MarkEmailVerified(ctx context.Context, id string) error

	// SetVerificationToken emite un nuevo token de verificación con su vencimiento.
	SetVerificationToken(ctx context.Context, id, token string, expiresAt time.Time) error
}
