// Package rut maneja el RUT chileno como texto: limpieza, formato con puntos
// y guión, y expansión de variantes para búsqueda. Los RUT se almacenan
// formateados (tal como los escribe el usuario), por lo que una búsqueda debe
// probar las formas con y sin puntuación contra el valor guardado.
package rut

import "strings"

// Clean elimina ceros a la izquierda y todo lo que no sea dígito o K, y
// pasa a mayúsculas. "12.345.678-5" -> "123456785".
func Clean(value string) string {
	var b strings.Builder
	leading := true
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			if r == '0' && leading {
				continue
			}
			leading = false
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			leading = false
			b.WriteByte('K')
		}
	}
	return b.String()
}

// Format devuelve el RUT en formato canónico 12.345.678-5 a partir de
// cualquier entrada. Entradas de menos de dos caracteres útiles se devuelven
// limpias tal cual.
func Format(value string) string {
	clean := Clean(value)
	if len(clean) < 2 {
		return clean
	}
	body := clean[:len(clean)-1]
	dv := clean[len(clean)-1:]

	var b strings.Builder
	for i, c := range body {
		if i > 0 && (len(body)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return b.String() + "-" + dv
}

// SearchVariants devuelve las formas alternativas de un término que parece
// un RUT, para un match OR contra valores almacenados con o sin puntuación:
// la entrada original, la forma limpia, la canónica con puntos y la forma
// solo con guión. Devuelve nil si el término no contiene nada de RUT.
func SearchVariants(term string) []string {
	clean := Clean(term)
	if clean == "" {
		return nil
	}

	variants := []string{strings.TrimSpace(term)}
	add := func(v string) {
		for _, existing := range variants {
			if existing == v {
				return
			}
		}
		variants = append(variants, v)
	}

	add(clean)
	if len(clean) >= 2 {
		add(Format(clean))
		add(clean[:len(clean)-1] + "-" + clean[len(clean)-1:])
	}
	return variants
}
