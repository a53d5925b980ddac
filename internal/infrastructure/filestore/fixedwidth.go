package filestore

import (
	"strings"
	"unicode/utf8"
)

// lineBreaks convierte saltos de línea en espacios: un campo nunca parte el registro.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// PadField ajusta value a exactamente width caracteres: trunca si sobra,
// completa con espacios a la derecha si falta. El truncado es permanente,
// igual que el reemplazo de saltos de línea por espacios.
func PadField(value string, width int) string {
	if width <= 0 {
		return ""
	}
	value = lineBreaks.Replace(value)
	n := utf8.RuneCountInString(value)
	if n > width {
		return truncateRunes(value, width)
	}
	return value + strings.Repeat(" ", width-n)
}

// TrimField quita el relleno de un campo de ancho fijo.
func TrimField(field string) string {
	return strings.TrimSpace(field)
}

// SliceFields corta una línea de ancho fijo en columnas según widths.
// Las líneas cortas (p. ej. editadas a mano y sin espacios finales) se completan antes de cortar.
// Cada columna se devuelve sin relleno.
func SliceFields(line string, widths ...int) []string {
	total := 0
	for _, w := range widths {
		total += w
	}
	runes := []rune(PadField(line, max(total, utf8.RuneCountInString(line))))
	out := make([]string, 0, len(widths))
	pos := 0
	for _, w := range widths {
		out = append(out, TrimField(string(runes[pos:pos+w])))
		pos += w
	}
	return out
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
