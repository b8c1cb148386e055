package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Identidad-api/internal/domain"
	"github.com/jhoicas/Identidad-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los tests de los casos de uso
// ──────────────────────────────────────────────────────────────────────────────

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*entity.Account{}}
}

func copia(a *entity.Account) *entity.Account {
	c := *a
	return &c
}

func (r *fakeAccountRepo) Create(ctx context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.ID] = copia(a)
	return nil
}

func (r *fakeAccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	return copia(a), nil
}

func (r *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return copia(a), nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) GetByVerificationToken(ctx context.Context, token string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.VerificationToken != nil && *a.VerificationToken == token {
			return copia(a), nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) Update(ctx context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.ID] = copia(a)
	return nil
}

func (r *fakeAccountRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Account
	for _, a := range r.accounts {
		if a.TenantID == tenantID {
			out = append(out, copia(a))
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.accounts, id)
	return nil
}

func (r *fakeAccountRepo) SetRefreshToken(ctx context.Context, id string, token *string, lastLogin *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil
	}
	a.RefreshToken = token
	if lastLogin != nil {
		a.LastLoginAt = lastLogin
	}
	return nil
}

func (r *fakeAccountRepo) RotateRefreshToken(ctx context.Context, id, expected, next string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok || a.RefreshToken == nil || *a.RefreshToken != expected {
		return false, nil
	}
	a.RefreshToken = &next
	return true, nil
}

func (r *fakeAccountRepo) MarkEmailVerified(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		a.EmailVerified = true
		a.VerificationExpiresAt = nil
	}
	return nil
}

func (r *fakeAccountRepo) SetVerificationToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		a.VerificationToken = &token
		a.VerificationExpiresAt = &expiresAt
	}
	return nil
}

type fakeTenantRepo struct {
	mu      sync.Mutex
	tenants map[string]*entity.Tenant

	// beforeCreate permite meter un tenant rival entre el chequeo de slug y
	// el insert, como haría un registro concurrente que gana la carrera.
	beforeCreate func(t *entity.Tenant)
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: map[string]*entity.Tenant{}}
}

func (r *fakeTenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	if r.beforeCreate != nil {
		r.beforeCreate(t)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	// Mismo contrato que el índice único de slug en Postgres.
	for _, existing := range r.tenants {
		if existing.Slug == t.Slug {
			return domain.ErrConflict
		}
	}
	c := *t
	r.tenants[t.ID] = &c
	return nil
}

func (r *fakeTenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (r *fakeTenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tenants {
		if t.Slug == slug {
			c := *t
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeTenantRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	t, err := r.GetBySlug(ctx, slug)
	return t != nil, err
}

func (r *fakeTenantRepo) Update(ctx context.Context, t *entity.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *t
	r.tenants[t.ID] = &c
	return nil
}

func (r *fakeTenantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Tenant
	for _, t := range r.tenants {
		c := *t
		out = append(out, &c)
	}
	return out, nil
}

type fakeInvitationRepo struct {
	mu          sync.Mutex
	invitations map[string]*entity.Invitation
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{invitations: map[string]*entity.Invitation{}}
}

func (r *fakeInvitationRepo) Create(ctx context.Context, inv *entity.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *inv
	r.invitations[inv.ID] = &c
	return nil
}

func (r *fakeInvitationRepo) GetByToken(ctx context.Context, token string) (*entity.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invitations {
		if inv.Token == token {
			c := *inv
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeInvitationRepo) MarkConsumed(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invitations[id]
	if !ok || inv.Consumed {
		return false, nil
	}
	now := time.Now()
	inv.Consumed = true
	inv.ConsumedAt = &now
	return true, nil
}
