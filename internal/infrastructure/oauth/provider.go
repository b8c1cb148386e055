package oauth

import (
	"context"
	"strings"
)

// Nombres de proveedores soportados.
const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

// Profile es el perfil canónico que llega al caso de uso: la variabilidad de
// cada proveedor (flags primary/verified, arrays de fotos) se normaliza aquí,
// en la frontera del adaptador, para que la lógica central sea agnóstica.
type Profile struct {
	Provider      string
	ProviderID    string
	Email         string
	EmailVerified bool
	Name          string // nombre para mostrar, puede estar vacío
	FirstName     string
	LastName      string
	Username      string
	AvatarURL     string
}

// Provider define el contrato de un proveedor OAuth externo.
type Provider interface {
	// Name devuelve el identificador del proveedor ("google", "github").
	Name() string

	// AuthCodeURL arma la URL de consentimiento con el state anti-CSRF.
	AuthCodeURL(state string) string

	// Exchange canjea el authorization code por un access token.
	Exchange(ctx context.Context, code string) (string, error)

	// FetchProfile obtiene el perfil del usuario y lo normaliza.
	FetchProfile(ctx context.Context, accessToken string) (*Profile, error)
}

// placeholder neutro cuando el proveedor no entrega ningún nombre.
const fallbackFirstName = "Usuario"

// SplitName separa un nombre para mostrar en (nombre, apellido) con la
// convención primer-token / resto-de-tokens, colapsando espacios internos.
// Si no hay nombre cae al username del proveedor y por último al placeholder.
func SplitName(display, username string) (first, last string) {
	tokens := strings.Fields(display)
	switch {
	case len(tokens) >= 2:
		return tokens[0], strings.Join(tokens[1:], " ")
	case len(tokens) == 1:
		return tokens[0], ""
	}
	if username != "" {
		return username, ""
	}
	return fallbackFirstName, ""
}
