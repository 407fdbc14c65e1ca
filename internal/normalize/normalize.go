// internal/normalize/normalize.go
//
// Field normalization hooks applied before persistence.
//
// Context
// -------
// Every entity declares a Map from field name to a normalization Func.  The
// service layer applies the map to a validated payload right before the
// repository persists it.  A Func maps a scalar to a canonical scalar of the
// same type: trimming and uppercasing free text, stripping punctuation from
// document numbers, rounding money.  Non-string input (or nil) passes
// through untouched, so the hooks compose safely with optional fields.
//
// Notes
// -----
// • Funcs never change a value's type.  The validator has already settled
//   types; normalization is purely cosmetic canonicalization.
// • Oxford commas, two spaces after periods.
package normalize

import (
	"math"
	"strings"
)

// Func canonicalizes one scalar value.  Implementations must return a value
// of the same dynamic type they received.
type Func func(v any) any

// Map binds field names to their normalization Func for one entity.
type Map map[string]Func

// Apply runs every bound Func against the matching payload field, in place.
// Fields absent from the payload are skipped.
func (m Map) Apply(payload map[string]any) {
	for name, fn := range m {
		if v, ok := payload[name]; ok && v != nil {
			payload[name] = fn(v)
		}
	}
}

// Upper trims surrounding whitespace, collapses inner runs of spaces, and
// uppercases the result.  Used for names, addresses, and operator IDs.
func Upper(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// Digits strips every non-digit rune.  Used for CPF, CNPJ, RG, and CEP
// fields, which arrive with dots, dashes, and slashes from the caller.
func Digits(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Decimal rounds a numeric value to two decimal places.  Used for monetary
// fields so storage never sees sub-centavo noise.
func Decimal(v any) any {
	f, ok := asFloat(v)
	if !ok {
		return v
	}
	return math.Round(f*100) / 100
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
