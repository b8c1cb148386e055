package http

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Identidad-api/internal/application/auth"
	"github.com/jhoicas/Identidad-api/internal/application/dto"
	"github.com/jhoicas/Identidad-api/pkg/config"
	"github.com/jhoicas/Identidad-api/pkg/random"
)

const oauthStateCookie = "oauth_state"

// OAuthHandler maneja el flujo de login con proveedores externos.
// El resultado siempre termina en un redirect al frontend.
type OAuthHandler struct {
	uc  *auth.AuthUseCase
	cfg config.OAuthConfig
}

// NewOAuthHandler construye el handler de OAuth.
func NewOAuthHandler(uc *auth.AuthUseCase, cfg config.OAuthConfig) *OAuthHandler {
	return &OAuthHandler{uc: uc, cfg: cfg}
}

// Begin godoc
// @Summary      Iniciar login con proveedor externo
// @Tags         oauth
// @Param        provider  path  string  true  "google | github"
// @Success      307
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/auth/{provider} [get]
func (h *OAuthHandler) Begin(c *fiber.Ctx) error {
	state, err := random.Token(24)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	authURL, err := h.uc.AuthCodeURL(c.Params("provider"), state)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_PROVIDER", Message: "proveedor no soportado"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(authURL, fiber.StatusTemporaryRedirect)
}

// Callback godoc
// @Summary      Callback del proveedor externo
// @Tags         oauth
// @Param        provider  path   string  true   "google | github"
// @Param        code      query  string  false  "authorization code"
// @Param        state     query  string  false  "estado anti-CSRF"
// @Success      307
// @Router       /api/auth/{provider}/callback [get]
func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	// Limpiamos la cookie de estado pase lo que pase.
	defer c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	state := c.Query("state")
	if state == "" || state != c.Cookies(oauthStateCookie) {
		return h.redirectError(c, "estado inválido")
	}
	code := c.Query("code")
	if code == "" {
		return h.redirectError(c, "autorización denegada")
	}

	result, err := h.uc.HandleProviderCallback(c.Context(), c.Params("provider"), code)
	if err != nil {
		return h.redirectError(c, "error procesando el login externo")
	}

	switch result.Status {
	case auth.OAuthSuccess:
		q := url.Values{}
		q.Set("token", result.Auth.AccessToken)
		q.Set("refresh", result.Auth.RefreshToken)
		return c.Redirect(h.cfg.FrontendURL+"/auth/callback?"+q.Encode(), fiber.StatusTemporaryRedirect)
	case auth.OAuthPending:
		q := url.Values{}
		q.Set("pending", "true")
		q.Set("message", result.Message)
		return c.Redirect(h.cfg.FrontendURL+"/auth/callback?"+q.Encode(), fiber.StatusTemporaryRedirect)
	default:
		return h.redirectError(c, result.Message)
	}
}

func (h *OAuthHandler) redirectError(c *fiber.Ctx, msg string) error {
	q := url.Values{}
	q.Set("error", msg)
	return c.Redirect(h.cfg.FrontendURL+"/auth/callback?"+q.Encode(), fiber.StatusTemporaryRedirect)
}
