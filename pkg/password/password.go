package password

import "golang.org/x/crypto/bcrypt"

// Cost es el factor de trabajo bcrypt usado al hashear (12 rondas,
// suficiente contra fuerza bruta offline con hardware actual).
const Cost = 12

// Hash genera el hash bcrypt de un password en texto plano.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify compara un password en texto plano contra su hash.
// Nunca devuelve error en caso de mismatch, solo false.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
