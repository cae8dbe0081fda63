package personas

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalizar pasa a minúsculas, quita diacríticos (é→e, ñ→n) y recorta
// espacios en los extremos. nil-friendly: string vacío queda vacío.
func Normalizar(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) { // mark nonspacing
			continue
		}
		buf = append(buf, r)
	}
	return string(buf)
}

// EsNumerica dice si el término es puramente dígitos. Una búsqueda numérica se
// empuja como LIKE sobre la columna de CI en la base; recién la no numérica
// pasa por el matching de nombres en memoria.
func EsNumerica(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NombreCompleto arma "nombre segundoNombre apellido segundoApellido" omitiendo
// las partes vacías y uniendo con un espacio.
func NombreCompleto(partes ...*string) string {
	presentes := make([]string, 0, len(partes))
	for _, p := range partes {
		if p != nil && *p != "" {
			presentes = append(presentes, *p)
		}
	}
	return strings.TrimSpace(strings.Join(presentes, " "))
}

// CoincideNombre chequea el término contra las dos concatenaciones posibles:
// nombre-primero y apellido-primero. El usuario puede tipear "juan perez" o
// "perez juan" y ambas tienen que matchear sin tokenizar ni fuzzy.
func CoincideNombre(needle string, nombre, segundoNombre, apellido, segundoApellido *string) bool {
	n := Normalizar(needle)
	if n == "" {
		return true
	}
	full1 := NombreCompleto(nombre, segundoNombre, apellido, segundoApellido)
	full2 := NombreCompleto(apellido, segundoApellido, nombre, segundoNombre)
	return strings.Contains(Normalizar(full1), n) || strings.Contains(Normalizar(full2), n)
}

// CoincidePersona es CoincideNombre sobre una Persona resuelta (nil no matchea
// nunca contra un término no vacío).
func CoincidePersona(needle string, p *Persona) bool {
	if p == nil {
		return Normalizar(needle) == ""
	}
	return CoincideNombre(needle, p.NombrePtr(), p.SegundoNombrePtr(), p.ApellidoPtr(), p.SegundoApellidoPtr())
}
