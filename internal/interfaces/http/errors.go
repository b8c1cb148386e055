package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Identidad-api/internal/application/dto"
	"github.com/jhoicas/Identidad-api/internal/domain"
	authdomain "github.com/jhoicas/Identidad-api/internal/domain/auth"
)

// respondError mapea errores de dominio a HTTP status + código estable.
// Las razones del gate de estado son 403 con códigos distinguibles; el
// vencimiento de verificación es 410 (el cliente ofrece "reenviar", no "reintentar").
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, authdomain.ErrTenantSuspended):
		return respond(c, fiber.StatusForbidden, "TENANT_SUSPENDED", err)
	case errors.Is(err, authdomain.ErrTenantInactive):
		return respond(c, fiber.StatusForbidden, "TENANT_INACTIVE", err)
	case errors.Is(err, authdomain.ErrAccountSuspended):
		return respond(c, fiber.StatusForbidden, "ACCOUNT_SUSPENDED", err)
	case errors.Is(err, authdomain.ErrAccountInactive):
		return respond(c, fiber.StatusForbidden, "ACCOUNT_INACTIVE", err)
	case errors.Is(err, authdomain.ErrEmailNotVerified):
		return respond(c, fiber.StatusForbidden, "EMAIL_NOT_VERIFIED", err)
	case errors.Is(err, domain.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err)
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", err)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respond(c, fiber.StatusConflict, "EMAIL_EXISTS", err)
	case errors.Is(err, domain.ErrConflict):
		return respond(c, fiber.StatusConflict, "CONFLICT", err)
	case errors.Is(err, domain.ErrTokenExpired):
		return respond(c, fiber.StatusGone, "TOKEN_EXPIRED", err)
	case errors.Is(err, domain.ErrInvalidToken):
		return respond(c, fiber.StatusBadRequest, "INVALID_TOKEN", err)
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", err)
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTenantNotFound),
		errors.Is(err, domain.ErrInvitationNotFound),
		errors.Is(err, domain.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err)
	}
	// Fallos internos (ej. store caído) no forman parte del contrato del
	// subsistema: genérico sin detalle.
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
