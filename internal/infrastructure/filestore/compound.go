package filestore

import (
	"strings"

	"github.com/rs/zerolog"
)

// CartEmptySummary texto que se escribe en el bloque del carrito cuando no tiene items.
const CartEmptySummary = "(sin items)"

const (
	pairSep  = ";"
	valueSep = ":"
)

// Pair par ordenado de un campo compuesto (producto/cantidad, pregunta/respuesta).
type Pair struct {
	First  string
	Second string
}

var pairEscaper = strings.NewReplacer(pairSep, ",", valueSep, "-")

// EncodePairs serializa pairs como "A:B;C:D". Los ';' y ':' dentro de los
// valores se reemplazan por ',' y '-' (no es reversible).
func EncodePairs(pairs []Pair) string {
	var sb strings.Builder
	for _, p := range pairs {
		sb.WriteString(pairEscaper.Replace(p.First))
		sb.WriteString(valueSep)
		sb.WriteString(pairEscaper.Replace(p.Second))
		sb.WriteString(pairSep)
	}
	return strings.TrimSuffix(sb.String(), pairSep)
}

// DecodePairs interpreta un campo compuesto. Los tokens que no tienen dos partes
// no vacías se descartan con un aviso; nunca falla.
func DecodePairs(field string, log zerolog.Logger) []Pair {
	field = strings.TrimSpace(field)
	if field == "" || field == CartEmptySummary {
		return nil
	}
	var out []Pair
	for _, token := range strings.Split(field, pairSep) {
		first, second, ok := strings.Cut(token, valueSep)
		if !ok || first == "" || second == "" {
			log.Warn().Str("token", token).Msg("campo compuesto: par inválido descartado")
			continue
		}
		out = append(out, Pair{First: first, Second: second})
	}
	return out
}
