package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Identidad-api/internal/domain"
	"github.com/jhoicas/Identidad-api/internal/domain/entity"
	"github.com/jhoicas/Identidad-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

const accountColumns = `id, tenant_id, email, password_hash, first_name, last_name, role, status,
		email_verified, refresh_token, verification_token, verification_expires_at,
		oauth_provider, oauth_id, last_login_at, created_at, updated_at`

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	pool *pgxpool.Pool
}

// NewAccountRepository construye el adaptador de persistencia para cuentas.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create persiste una nueva cuenta.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query := `
		INSERT INTO accounts (id, tenant_id, email, password_hash, first_name, last_name, role, status,
			email_verified, refresh_token, verification_token, verification_expires_at,
			oauth_provider, oauth_id, last_login_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.TenantID, a.Email, a.PasswordHash, a.FirstName, a.LastName, a.Role, a.Status,
		a.EmailVerified, a.RefreshToken, a.VerificationToken, a.VerificationExpiresAt,
		a.OAuthProvider, a.OAuthID, a.LastLoginAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// GetByEmail obtiene una cuenta por email (normalizado a minúsculas por el caller).
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1 LIMIT 1`, email)
}

// GetByVerificationToken obtiene la cuenta dueña de un token de verificación.
func (r *AccountRepo) GetByVerificationToken(ctx context.Context, token string) (*entity.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE verification_token = $1`, token)
}

func (r *AccountRepo) getOne(ctx context.Context, query string, arg any) (*entity.Account, error) {
	var a entity.Account
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.TenantID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName, &a.Role, &a.Status,
		&a.EmailVerified, &a.RefreshToken, &a.VerificationToken, &a.VerificationExpiresAt,
		&a.OAuthProvider, &a.OAuthID, &a.LastLoginAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

// Update actualiza los campos mutables de una cuenta.
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	query := `
		UPDATE accounts SET email = $2, password_hash = $3, first_name = $4, last_name = $5,
			role = $6, status = $7, email_verified = $8, oauth_provider = $9, oauth_id = $10,
			updated_at = $11
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Email, a.PasswordHash, a.FirstName, a.LastName,
		a.Role, a.Status, a.EmailVerified, a.OAuthProvider, a.OAuthID, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// ListByTenant lista cuentas de un tenant con paginación.
func (r *AccountRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(
			&a.ID, &a.TenantID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName, &a.Role, &a.Status,
			&a.EmailVerified, &a.RefreshToken, &a.VerificationToken, &a.VerificationExpiresAt,
			&a.OAuthProvider, &a.OAuthID, &a.LastLoginAt, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete elimina una cuenta por ID (ruta administrativa).
func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// SetRefreshToken sobrescribe el refresh token vigente (nil lo limpia, logout)
// y actualiza last_login_at cuando aplica.
func (r *AccountRepo) SetRefreshToken(ctx context.Context, id string, token *string, lastLogin *time.Time) error {
	query := `
		UPDATE accounts SET refresh_token = $2,
			last_login_at = COALESCE($3, last_login_at),
			updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, token, lastLogin)
	if err != nil {
		return fmt.Errorf("set refresh token: %w", err)
	}
	return nil
}

// RotateRefreshToken reemplaza el refresh token con un update condicional
// atómico sobre (id, valor esperado): bajo refresh concurrentes sobre la misma
// cuenta a lo sumo uno gana; el perdedor ve false.
func (r *AccountRepo) RotateRefreshToken(ctx context.Context, id, expected, next string) (bool, error) {
	query := `
		UPDATE accounts SET refresh_token = $3, updated_at = now()
		WHERE id = $1 AND refresh_token = $2`
	tag, err := r.pool.Exec(ctx, query, id, expected, next)
	if err != nil {
		return false, fmt.Errorf("rotate refresh token: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkEmailVerified marca verificado y limpia el vencimiento en un solo
// update. El token se conserva para que un segundo clic en el enlace del
// email responda "ya verificado" en lugar de "token inválido".
func (r *AccountRepo) MarkEmailVerified(ctx context.Context, id string) error {
	query := `
		UPDATE accounts SET email_verified = TRUE,
			verification_expires_at = NULL, updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark email verified: %w", err)
	}
	return nil
}

// SetVerificationToken asigna un nuevo token de verificación y su vencimiento.
func (r *AccountRepo) SetVerificationToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	query := `
		UPDATE accounts SET verification_token = $2, verification_expires_at = $3, updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, token, expiresAt)
	if err != nil {
		return fmt.Errorf("set verification token: %w", err)
	}
	return nil
}
