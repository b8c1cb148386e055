package repository

import (
	"context"

	"github.com/jhoicas/Identidad-api/internal/domain/entity"
)

// InvitationRepository define el puerto de persistencia para Invitation (DIP).
type InvitationRepository interface {
	Create(ctx context.Context, inv *entity.Invitation) error
	GetByToken(ctx context.Context, token string) (*entity.Invitation, error)

	// MarkConsumed marca la invitación como consumida solo si aún no lo
	// está (update condicional). Devuelve false si ya fue consumida.
	MarkConsumed(ctx context.Context, id string) (bool, error)
}
