package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Identidad-api/internal/application/dto"
	"github.com/jhoicas/Identidad-api/internal/domain"
	authdomain "github.com/jhoicas/Identidad-api/internal/domain/auth"
	"github.com/jhoicas/Identidad-api/internal/domain/entity"
	"github.com/jhoicas/Identidad-api/internal/domain/repository"
	"github.com/jhoicas/Identidad-api/pkg/logger"
)

// UserUseCase administración de cuentas dentro de un tenant: listado y
// mutación de rol/estado guardada por la política explícita de autorización.
type UserUseCase struct {
	accounts repository.AccountRepository
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(accounts repository.AccountRepository, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{accounts: accounts, log: log}
}

// ListByTenant lista las cuentas del tenant con paginación.
func (uc *UserUseCase) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]dto.AccountResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	accounts, err := uc.accounts.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, dto.AccountResponse{
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
		})
	}
	return out, nil
}

// ChangeRole cambia el rol de una cuenta del mismo tenant del actor, previa
// evaluación de la política CanChangeRole (sin tocar persistencia para decidir).
func (uc *UserUseCase) ChangeRole(ctx context.Context, actorID, targetID, newRole string) error {
	actor, err := uc.accounts.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return domain.ErrAccountNotFound
	}
	target, err := uc.accounts.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrAccountNotFound
	}
	if actor.TenantID != target.TenantID {
		// Accesos cruzados entre tenants se niegan sin revelar existencia.
		return domain.ErrAccountNotFound
	}

	allowed := authdomain.CanChangeRole(authdomain.RoleChange{
		ActorRole:     actor.Role,
		TargetRole:    target.Role,
		NewRole:       newRole,
		ActorIsTarget: actor.ID == target.ID,
	})
	if !allowed {
		uc.log.Warn().
			Str("actor_id", actor.ID).
			Str("target_id", target.ID).
			Str("new_role", newRole).
			Msg("cambio de rol denegado por política")
		return domain.ErrForbidden
	}

	target.Role = newRole
	target.UpdatedAt = time.Now()
	if err := uc.accounts.Update(ctx, target); err != nil {
		return err
	}
	uc.log.Info().
		Str("actor_id", actor.ID).
		Str("target_id", target.ID).
		Str("role", newRole).
		Msg("rol actualizado")
	return nil
}

// allowedStatusChange valida valores de estado administrables.
func allowedStatusChange(status string) bool {
	switch status {
	case entity.AccountActive, entity.AccountSuspended, entity.AccountInactive:
		return true
	}
	return false
}

// ChangeStatus suspende/reactiva una cuenta del tenant del actor. Solo owner
// y admin; nadie se cambia el estado a sí mismo; tocar a un owner exige owner.
func (uc *UserUseCase) ChangeStatus(ctx context.Context, actorID, targetID, newStatus string) error {
	if !allowedStatusChange(newStatus) {
		return domain.ErrInvalidInput
	}
	actor, err := uc.accounts.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return domain.ErrAccountNotFound
	}
	target, err := uc.accounts.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil || actor.TenantID != target.TenantID {
		return domain.ErrAccountNotFound
	}
	if actor.Role != entity.RoleOwner && actor.Role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	if actor.ID == target.ID {
		return domain.ErrForbidden
	}
	if target.Role == entity.RoleOwner && actor.Role != entity.RoleOwner {
		return domain.ErrForbidden
	}

	target.Status = newStatus
	target.UpdatedAt = time.Now()
	if err := uc.accounts.Update(ctx, target); err != nil {
		return err
	}
	uc.log.Info().
		Str("actor_id", actor.ID).
		Str("target_id", target.ID).
		Str("status", newStatus).
		Msg("estado actualizado")
	return nil
}
