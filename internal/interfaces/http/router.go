package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Identidad-api/internal/application/auth"
	"github.com/jhoicas/Identidad-api/internal/application/usecase"
	"github.com/jhoicas/Identidad-api/internal/domain/entity"
	"github.com/jhoicas/Identidad-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC   *auth.AuthUseCase
	UserUC   *usecase.UserUseCase
	JWTCfg   config.JWTConfig
	OAuthCfg config.OAuthConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.JWTCfg)
	oauthHandler := NewOAuthHandler(deps.AuthUC, deps.OAuthCfg)
	userHandler := NewUserHandler(deps.UserUC)

	// Auth (público). Las rutas estáticas van antes que /:provider.
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/verify-email", authHandler.VerifyEmail)
	authGroup.Post("/resend-verification", authHandler.ResendVerification)
	authGroup.Get("/invitation/:token", authHandler.InvitationDetails)
	authGroup.Post("/accept-invitation", authHandler.AcceptInvitation)
	authGroup.Get("/me", AuthMiddleware(deps.JWTCfg.AccessSecret), authHandler.Me)

	// OAuth (público)
	authGroup.Get("/:provider", oauthHandler.Begin)
	authGroup.Get("/:provider/callback", oauthHandler.Callback)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTCfg.AccessSecret))

	// Invitaciones (protegido, solo owner/admin)
	invitations := protected.Group("/invitations", RequireRole(entity.RoleOwner, entity.RoleAdmin))
	invitations.Post("/", authHandler.CreateInvitation)

	// Usuarios del tenant (protegido)
	users := protected.Group("/users")
	users.Get("/", userHandler.List)
	users.Patch("/:id/role", RequireRole(entity.RoleOwner, entity.RoleAdmin), userHandler.ChangeRole)
	users.Patch("/:id/status", RequireRole(entity.RoleOwner, entity.RoleAdmin), userHandler.ChangeStatus)
}
