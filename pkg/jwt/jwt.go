package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tipos de token emitidos. Access y refresh se firman con secretos distintos
// para que un access capturado no pueda reutilizarse como refresh.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// ErrInvalid es el único error que expone Parse: firma incorrecta, payload
// malformado o token expirado se reportan igual para no dar pistas (oracle).
var ErrInvalid = errors.New("token inválido o expirado")

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Type distingue access de refresh; TenantID permite decisiones multi-tenant
// sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
	Type     string `json:"type"` // "access" | "refresh"
}

// Generate genera un token JWT firmado con los claims de sesión.
func Generate(secret, accountID, email, role, tenantID, kind, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// El jti hace único cada token aunque se emitan dos con los
			// mismos claims en el mismo segundo (la rotación depende de ello).
			ID:        uuid.New().String(),
			Issuer:    issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:    email,
		Role:     role,
		TenantID: tenantID,
		Type:     kind,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token contra el secreto dado y devuelve los claims.
// Cualquier fallo (firma, formato, expiración) devuelve ErrInvalid sin
// distinguir la causa; el caller debe tratarlo como no autorizado.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrInvalid
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}
