package random

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Token genera un token opaco no adivinable de n bytes de entropía,
// codificado en base64 URL-safe sin padding (apto para links de email).
func Token(n int) (string, error) {
	if n <= 0 {
		n = 32
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generar token aleatorio: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
