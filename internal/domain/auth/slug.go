package auth

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizador que elimina tildes y diacríticos ("Compañía" -> "Compania").
var slugTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify deriva el slug base de un nombre de tenant: minúsculas, sin
// diacríticos, separadores no alfanuméricos colapsados a un solo guion.
func Slugify(name string) string {
	s, _, err := transform.String(slugTransformer, name)
	if err != nil {
		s = name
	}
	s = strings.ToLower(s)

	var b strings.Builder
	prevDash := true // evita guion inicial
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// UniqueSlug deriva el slug de name y resuelve colisiones con sufijo numérico
// incremental: "acme-co", "acme-co-1", "acme-co-2", ...
func UniqueSlug(ctx context.Context, name string, exists func(ctx context.Context, slug string) (bool, error)) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "tenant"
	}
	slug := base
	for i := 1; ; i++ {
		taken, err := exists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
