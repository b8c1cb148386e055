package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Identidad-api/internal/application/auth"
	"github.com/jhoicas/Identidad-api/internal/application/dto"
	"github.com/jhoicas/Identidad-api/internal/domain"
	"github.com/jhoicas/Identidad-api/pkg/config"
	pkgjwt "github.com/jhoicas/Identidad-api/pkg/jwt"
)

// AuthHandler maneja registro, login, refresh, logout, verificación e invitaciones.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	jwtCfg config.JWTConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{uc: uc, jwtCfg: jwtCfg}
}

// Register godoc
// @Summary      Registrar cuenta y tenant
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, first_name, tenant_name|tenant_id"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" || in.FirstName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, password y first_name son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	if in.TenantName == "" && in.TenantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tenant_name o tenant_id es requerido"})
	}

	result, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	if result.Auth != nil {
		return c.Status(fiber.StatusCreated).JSON(result.Auth)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		Message: result.Message,
		Account: result.Account,
		Tenant:  result.Tenant,
	})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		// Mismo mensaje para cuenta inexistente y password incorrecto.
		if err == domain.ErrUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "email o contraseña inválidos"})
		}
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Rotar el par de tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refresh_token"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "refresh_token es requerido"})
	}
	out, err := h.uc.Refresh(c.Context(), in.RefreshToken)
	if err != nil {
		if err == domain.ErrUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "refresh token inválido"})
		}
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LogoutRequest  false  "refresh_token (si no hay sesión autenticada)"
// @Success      200   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Preferimos el subject autenticado (Bearer access); si no hay, el
	// refresh token del body. La ruta es pública para que cerrar sesión
	// funcione incluso con el access ya vencido.
	accountID := h.accountIDFromBearer(c)
	if accountID == "" {
		var in dto.LogoutRequest
		if err := c.BodyParser(&in); err != nil || in.RefreshToken == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "se requiere sesión o refresh_token"})
		}
		id, err := h.uc.AccountIDFromRefreshToken(in.RefreshToken)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "refresh token inválido"})
		}
		accountID = id
	}
	if err := h.uc.Logout(c.Context(), accountID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// accountIDFromBearer extrae el subject de un Bearer access válido, si viene.
func (h *AuthHandler) accountIDFromBearer(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	claims, err := pkgjwt.Parse(h.jwtCfg.AccessSecret, strings.TrimSpace(parts[1]))
	if err != nil || claims.Type != pkgjwt.KindAccess {
		return ""
	}
	return claims.Subject
}

// Me godoc
// @Summary      Sesión actual (con reemisión deslizante de tokens)
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.AuthResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.CurrentSession(c.Context(), GetAccountID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// VerifyEmail godoc
// @Summary      Verificar email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyEmailRequest  true  "token"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      410   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var in dto.VerifyEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	msg, err := h.uc.VerifyEmail(c.Context(), in.Token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

// ResendVerification godoc
// @Summary      Reenviar verificación (respuesta genérica anti-enumeración)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResendVerificationRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var in dto.ResendVerificationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	msg, err := h.uc.ResendVerification(c.Context(), in.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

// InvitationDetails godoc
// @Summary      Detalles de una invitación
// @Tags         auth
// @Produce      json
// @Param        token  path  string  true  "token de invitación"
// @Success      200    {object}  dto.InvitationResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/auth/invitation/{token} [get]
func (h *AuthHandler) InvitationDetails(c *fiber.Ctx) error {
	out, err := h.uc.InvitationDetails(c.Context(), c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AcceptInvitation godoc
// @Summary      Aceptar invitación (auto-login)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AcceptInvitationRequest  true  "token, first_name, password"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/accept-invitation [post]
func (h *AuthHandler) AcceptInvitation(c *fiber.Ctx) error {
	var in dto.AcceptInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Token == "" || in.FirstName == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "token, first_name y password son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	out, err := h.uc.AcceptInvitation(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}

	// Refresh token también como cookie HTTP-only para clientes navegador.
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    out.RefreshToken,
		Expires:  time.Now().Add(h.jwtCfg.RefreshTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/api/auth",
	})
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateInvitation godoc
// @Summary      Emitir invitación (owner/admin)
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateInvitationRequest  true  "email, role"
// @Success      201   {object}  dto.InvitationResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invitations [post]
func (h *AuthHandler) CreateInvitation(c *fiber.Ctx) error {
	var in dto.CreateInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y role son requeridos"})
	}
	inv, err := h.uc.CreateInvitation(c.Context(), GetAccountID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InvitationResponse{
		Email:     inv.Email,
		TenantID:  inv.TenantID,
		Role:      inv.Role,
		ExpiresAt: inv.ExpiresAt,
		Token:     inv.Token,
	})
}
