// Package normalize compara nombres ignorando mayúsculas, tildes y espacios
// sobrantes ("Taller" == "TALLER " == "táller"). La regla vive en la
// aplicación porque ninguna collation estándar de PostgreSQL la cubre.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks descompone a NFD, elimina las marcas diacríticas (categoría Mn)
// y recompone a NFC.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// String devuelve la forma canónica de un nombre para comparación de
// duplicados: sin espacios en los extremos, sin tildes y en minúsculas.
func String(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Equal indica si dos nombres son el mismo bajo la forma canónica.
func Equal(a, b string) bool {
	return String(a) == String(b)
}
