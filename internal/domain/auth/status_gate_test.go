package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Identidad-api/internal/domain/auth"
	"github.com/jhoicas/Identidad-api/internal/domain/entity"
)

func cuenta(status string, verified bool) *entity.Account {
	return &entity.Account{Status: status, EmailVerified: verified}
}

func tenant(status string) *entity.Tenant {
	return &entity.Tenant{Status: status}
}

func TestEvaluate_TablaDeEstados(t *testing.T) {
	cases := []struct {
		name          string
		tenantStatus  string
		accountStatus string
		want          error
	}{
		{"tenant activo y cuenta activa", entity.TenantActive, entity.AccountActive, nil},
		{"tenant trial permite login", entity.TenantTrial, entity.AccountActive, nil},
		{"cuenta pending puede autenticarse", entity.TenantActive, entity.AccountPending, nil},
		{"tenant suspendido", entity.TenantSuspended, entity.AccountActive, auth.ErrTenantSuspended},
		{"tenant inactivo", entity.TenantInactive, entity.AccountActive, auth.ErrTenantInactive},
		{"cuenta suspendida", entity.TenantActive, entity.AccountSuspended, auth.ErrAccountSuspended},
		{"cuenta inactiva", entity.TenantActive, entity.AccountInactive, auth.ErrAccountInactive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := auth.Evaluate(cuenta(tc.accountStatus, true), tenant(tc.tenantStatus))
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

// Si tenant y cuenta están mal a la vez, la razón reportada es la del tenant.
func TestEvaluate_TenantPrimaSobreCuenta(t *testing.T) {
	err := auth.Evaluate(cuenta(entity.AccountSuspended, true), tenant(entity.TenantSuspended))
	assert.ErrorIs(t, err, auth.ErrTenantSuspended)

	err = auth.Evaluate(cuenta(entity.AccountInactive, true), tenant(entity.TenantInactive))
	assert.ErrorIs(t, err, auth.ErrTenantInactive)
}

func TestEvaluateRefresh_PendingSinVerificar(t *testing.T) {
	// Pending sin email verificado: denegado pidiendo verificación.
	err := auth.EvaluateRefresh(cuenta(entity.AccountPending, false), tenant(entity.TenantActive))
	assert.ErrorIs(t, err, auth.ErrEmailNotVerified)

	// Pending con email verificado: puede renovar sesión.
	assert.NoError(t, auth.EvaluateRefresh(cuenta(entity.AccountPending, true), tenant(entity.TenantActive)))

	// Las razones del gate base prevalecen sobre la de verificación.
	err = auth.EvaluateRefresh(cuenta(entity.AccountPending, false), tenant(entity.TenantSuspended))
	assert.ErrorIs(t, err, auth.ErrTenantSuspended)
}
