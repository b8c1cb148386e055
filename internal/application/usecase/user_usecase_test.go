package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Identidad-api/internal/application/usecase"
	"github.com/jhoicas/Identidad-api/internal/domain"
	"github.com/jhoicas/Identidad-api/internal/domain/entity"
)

// memAccountRepo implementación mínima en memoria del puerto de cuentas.
type memAccountRepo struct {
	accounts map[string]*entity.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: map[string]*entity.Account{}}
}

func (r *memAccountRepo) Create(ctx context.Context, a *entity.Account) error {
	c := *a
	r.accounts[a.ID] = &c
	return nil
}

func (r *memAccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (r *memAccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memAccountRepo) GetByVerificationToken(ctx context.Context, token string) (*entity.Account, error) {
	return nil, nil
}

func (r *memAccountRepo) Update(ctx context.Context, a *entity.Account) error {
	c := *a
	r.accounts[a.ID] = &c
	return nil
}

func (r *memAccountRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range r.accounts {
		if a.TenantID == tenantID {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memAccountRepo) Delete(ctx context.Context, id string) error {
	delete(r.accounts, id)
	return nil
}

func (r *memAccountRepo) SetRefreshToken(ctx context.Context, id string, token *string, lastLogin *time.Time) error {
	return nil
}

func (r *memAccountRepo) RotateRefreshToken(ctx context.Context, id, expected, next string) (bool, error) {
	return false, nil
}

func (r *memAccountRepo) MarkEmailVerified(ctx context.Context, id string) error { return nil }

func (r *memAccountRepo) SetVerificationToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	return nil
}

func seed(t *testing.T, repo *memAccountRepo, tenantID, role string) *entity.Account {
	t.Helper()
	a := &entity.Account{
		ID:       uuid.New().String(),
		TenantID: tenantID,
		Email:    uuid.New().String()[:8] + "@acme.co",
		Role:     role,
		Status:   entity.AccountActive,
	}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func TestListByTenant_FiltraPorTenant(t *testing.T) {
	repo := newMemAccountRepo()
	uc := usecase.NewUserUseCase(repo, nil)
	tenantA := uuid.New().String()
	tenantB := uuid.New().String()
	seed(t, repo, tenantA, entity.RoleOwner)
	seed(t, repo, tenantA, entity.RoleEmployee)
	seed(t, repo, tenantB, entity.RoleOwner)

	out, err := uc.ListByTenant(context.Background(), tenantA, 0, 0)
	require.NoError(t, err)
	assert.Len(t, out, 2, "solo las cuentas del tenant solicitado")
	for _, a := range out {
		assert.Equal(t, tenantA, a.TenantID)
	}
}

func TestChangeRole_OwnerPromueveEmpleado(t *testing.T) {
	repo := newMemAccountRepo()
	uc := usecase.NewUserUseCase(repo, nil)
	tenantID := uuid.New().String()
	owner := seed(t, repo, tenantID, entity.RoleOwner)
	emp := seed(t, repo, tenantID, entity.RoleEmployee)

	require.NoError(t, uc.ChangeRole(context.Background(), owner.ID, emp.ID, entity.RoleAdmin))

	stored, _ := repo.GetByID(context.Background(), emp.ID)
	assert.Equal(t, entity.RoleAdmin, stored.Role)
}

func TestChangeRole_DenegadoPorPolitica(t *testing.T) {
	repo := newMemAccountRepo()
	uc := usecase.NewUserUseCase(repo, nil)
	tenantID := uuid.New().String()
	admin := seed(t, repo, tenantID, entity.RoleAdmin)
	emp := seed(t, repo, tenantID, entity.RoleEmployee)

	// Un admin no otorga owner.
	err := uc.ChangeRole(context.Background(), admin.ID, emp.ID, entity.RoleOwner)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Nadie se auto-eleva a owner.
	err = uc.ChangeRole(context.Background(), admin.ID, admin.ID, entity.RoleOwner)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	stored, _ := repo.GetByID(context.Background(), emp.ID)
	assert.Equal(t, entity.RoleEmployee, stored.Role, "un intento denegado no muta")
}

// El cruce de tenants se niega como NOT_FOUND para no revelar existencia.
func TestChangeRole_CruceDeTenants(t *testing.T) {
	repo := newMemAccountRepo()
	uc := usecase.NewUserUseCase(repo, nil)
	owner := seed(t, repo, uuid.New().String(), entity.RoleOwner)
	ajeno := seed(t, repo, uuid.New().String(), entity.RoleEmployee)

	err := uc.ChangeRole(context.Background(), owner.ID, ajeno.ID, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestChangeStatus(t *testing.T) {
	repo := newMemAccountRepo()
	uc := usecase.NewUserUseCase(repo, nil)
	tenantID := uuid.New().String()
	owner := seed(t, repo, tenantID, entity.RoleOwner)
	admin := seed(t, repo, tenantID, entity.RoleAdmin)
	emp := seed(t, repo, tenantID, entity.RoleEmployee)

	// Admin suspende a un empleado.
	require.NoError(t, uc.ChangeStatus(context.Background(), admin.ID, emp.ID, entity.AccountSuspended))
	stored, _ := repo.GetByID(context.Background(), emp.ID)
	assert.Equal(t, entity.AccountSuspended, stored.Status)

	// Nadie se suspende a sí mismo.
	err := uc.ChangeStatus(context.Background(), admin.ID, admin.ID, entity.AccountSuspended)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Tocar a un owner exige owner.
	err = uc.ChangeStatus(context.Background(), admin.ID, owner.ID, entity.AccountSuspended)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	require.NoError(t, uc.ChangeStatus(context.Background(), owner.ID, admin.ID, entity.AccountSuspended))

	// Estado fuera del conjunto administrable.
	err = uc.ChangeStatus(context.Background(), owner.ID, emp.ID, "pending")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
