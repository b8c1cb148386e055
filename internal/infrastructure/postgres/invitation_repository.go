package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Identidad-api/internal/domain"
	"github.com/jhoicas/Identidad-api/internal/domain/entity"
	"github.com/jhoicas/Identidad-api/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

// InvitationRepo implementación del puerto InvitationRepository sobre PostgreSQL.
type InvitationRepo struct {
	pool *pgxpool.Pool
}

// NewInvitationRepository construye el adaptador de persistencia para invitaciones.
func NewInvitationRepository(pool *pgxpool.Pool) *InvitationRepo {
	return &InvitationRepo{pool: pool}
}

// Create persiste una nueva invitación.
func (r *InvitationRepo) Create(ctx context.Context, inv *entity.Invitation) error {
	query := `
		INSERT INTO invitations (id, token, email, tenant_id, role, expires_at, consumed, consumed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		inv.ID, inv.Token, inv.Email, inv.TenantID, inv.Role,
		inv.ExpiresAt, inv.Consumed, inv.ConsumedAt, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// GetByToken obtiene una invitación por su token opaco.
func (r *InvitationRepo) GetByToken(ctx context.Context, token string) (*entity.Invitation, error) {
	query := `
		SELECT id, token, email, tenant_id, role, expires_at, consumed, consumed_at, created_at
		FROM invitations WHERE token = $1`
	var inv entity.Invitation
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&inv.ID, &inv.Token, &inv.Email, &inv.TenantID, &inv.Role,
		&inv.ExpiresAt, &inv.Consumed, &inv.ConsumedAt, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation by token: %w", err)
	}
	return &inv, nil
}

// MarkConsumed marca la invitación como consumida solo si aún no lo está.
// El update condicional garantiza consumo exactamente-una-vez bajo concurrencia.
func (r *InvitationRepo) MarkConsumed(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE invitations SET consumed = TRUE, consumed_at = now()
		WHERE id = $1 AND consumed = FALSE`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("mark invitation consumed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
