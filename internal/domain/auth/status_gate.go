package auth

import (
	"errors"

	"github.com/jhoicas/Identidad-api/internal/domain/entity"
)

// Razones de denegación del gate de estado. Se mapean a 403 en la capa HTTP,
// salvo indicación contraria del caso de uso.
var (
	ErrTenantSuspended  = errors.New("el tenant está suspendido")
	ErrTenantInactive   = errors.New("el tenant está inactivo")
	ErrAccountSuspended = errors.New("la cuenta está suspendida")
	ErrAccountInactive  = errors.New("la cuenta está inactiva")
	ErrEmailNotVerified = errors.New("verifica tu email antes de continuar")
)

// Evaluate decide si la cuenta puede iniciar o renovar sesión según el estado
// del tenant y de la cuenta. Los chequeos de tenant van primero: si ambos son
// inválidos a la vez, la razón reportada es la del tenant. Una cuenta PENDING
// sí puede autenticarse (la aprobación administrativa se gestiona aparte).
func Evaluate(account *entity.Account, tenant *entity.Tenant) error {
	switch tenant.Status {
	case entity.TenantSuspended:
		return ErrTenantSuspended
	case entity.TenantInactive:
		return ErrTenantInactive
	}
	switch account.Status {
	case entity.AccountSuspended:
		return ErrAccountSuspended
	case entity.AccountInactive:
		return ErrAccountInactive
	}
	return nil
}

// EvaluateRefresh es la variante para el flujo de refresh: una cuenta PENDING
// sin email verificado se deniega con la razón "verifica tu email" antes de
// cualquier mensaje genérico de pendiente.
func EvaluateRefresh(account *entity.Account, tenant *entity.Tenant) error {
	if err := Evaluate(account, tenant); err != nil {
		return err
	}
	if account.Status == entity.AccountPending && !account.EmailVerified {
		return ErrEmailNotVerified
	}
	return nil
}
