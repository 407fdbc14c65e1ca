// internal/schema/validate.go
//
// Schema-driven payload validation.
//
// Context
// -------
// Validate checks one caller payload against one entity Schema and returns
// either a normalized payload, ready for persistence, or the first
// *ValidationError encountered.  The pass is fail-fast and walks fields in
// declaration order, so the reported failure is deterministic for a given
// schema and payload.
//
// Workflow per field
// ------------------
//  1. Presence: absent + default → inject default; absent + required →
//     "required"; absent otherwise → skip.
//  2. Runtime type must match the declared Type → "type".
//  3. Datetime strings must parse under the declared layout → "format".
//     The normalized payload stores the parsed time.Time.
//  4. Enum membership → "enum".
//  5. Nested fields recurse with a dotted path prefix.
//  6. Unique fields consult the repository for another active holder of the
//     same value → "duplicate".
//
// The repository handle is threaded through only for step 6, keeping the
// validator otherwise pure and testable without a database.
//
// Notes
// -----
// • Reason codes are machine-readable; the calling layer owns user-facing
//   text (see HandleFailure in whatever transport adopts this engine).
// • Oxford commas, two spaces after periods.
package schema

import (
	"context"
	"fmt"
	"time"
)

// Reason codes carried by ValidationError.
const (
	ReasonRequired  = "required"
	ReasonType      = "type"
	ReasonFormat    = "format"
	ReasonEnum      = "enum"
	ReasonDuplicate = "duplicate"
)

// ValidationError reports the first field that failed validation.  Field
// uses dotted notation for nested failures, e.g. "parcelas.0.valor".
type ValidationError struct {
	Field   string
	Reason  string
	Allowed []any // populated for ReasonEnum only
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// UniquenessChecker answers whether another active record already holds
// value in field.  excludeID carries the record being updated so a record
// never collides with itself; it is zero on insert.
type UniquenessChecker interface {
	ExistsActiveOther(ctx context.Context, field string, value any, excludeID int64) (bool, error)
}

// Validate checks payload against s and returns the normalized payload:
// defaults injected, datetime strings parsed into time.Time.  updatingID is
// zero for inserts.  uniq may be nil when no field in s is Unique.
//
// The second return is a *ValidationError for payload problems, or a
// storage error propagated verbatim from the uniqueness lookup.
func Validate(ctx context.Context, payload map[string]any, s Schema, uniq UniquenessChecker, updatingID int64) (map[string]any, error) {
	return validate(ctx, payload, s, uniq, updatingID, "")
}

func validate(ctx context.Context, payload map[string]any, s Schema, uniq UniquenessChecker, updatingID int64, prefix string) (map[string]any, error) {
	clean := make(map[string]any, len(s))

	for _, f := range s {
		path := prefix + f.Name

		raw, present := payload[f.Name]
		if !present {
			if f.Default != nil {
				clean[f.Name] = normalizeDefault(f)
				continue
			}
			if f.Required {
				return nil, &ValidationError{Field: path, Reason: ReasonRequired}
			}
			continue
		}

		// Explicit nulls on optional fields persist as NULL.
		if raw == nil {
			if f.Required {
				return nil, &ValidationError{Field: path, Reason: ReasonRequired}
			}
			clean[f.Name] = nil
			continue
		}

		val, verr := checkField(ctx, f, raw, path, uniq, updatingID)
		if verr != nil {
			return nil, verr
		}
		clean[f.Name] = val
	}
	return clean, nil
}

// checkField runs steps 2 through 6 for one present, non-nil value.
func checkField(ctx context.Context, f Field, raw any, path string, uniq UniquenessChecker, updatingID int64) (any, error) {
	val := raw

	// Type and datetime parsing.
	switch f.Type {
	case TypeDateTime:
		switch v := raw.(type) {
		case time.Time:
			// Already parsed upstream; keep as is.
		case string:
			ts, err := time.Parse(layoutOf(f.Format), v)
			if err != nil {
				return nil, &ValidationError{Field: path, Reason: ReasonFormat}
			}
			val = ts
		default:
			return nil, &ValidationError{Field: path, Reason: ReasonType}
		}
	default:
		if typeMismatch(f.Type, raw, f.Format) != "" {
			return nil, &ValidationError{Field: path, Reason: ReasonType}
		}
	}

	// Enum membership.
	if len(f.Enum) > 0 && !enumMember(f.Enum, val) {
		return nil, &ValidationError{Field: path, Reason: ReasonEnum, Allowed: f.Enum}
	}

	// Nested schemas.
	if f.Nested != nil {
		switch f.Type {
		case TypeObject:
			sub, err := validate(ctx, val.(map[string]any), f.Nested, uniq, updatingID, path+".")
			if err != nil {
				return nil, err
			}
			val = sub
		case TypeArray:
			items := val.([]any)
			out := make([]any, len(items))
			for i, item := range items {
				m, ok := item.(map[string]any)
				if !ok {
					return nil, &ValidationError{
						Field:  fmt.Sprintf("%s.%d", path, i),
						Reason: ReasonType,
					}
				}
				sub, err := validate(ctx, m, f.Nested, uniq, updatingID, fmt.Sprintf("%s.%d.", path, i))
				if err != nil {
					return nil, err
				}
				out[i] = sub
			}
			val = out
		}
	}

	// Uniqueness against other active records.
	if f.Unique && uniq != nil {
		taken, err := uniq.ExistsActiveOther(ctx, f.Name, val, updatingID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &ValidationError{Field: path, Reason: ReasonDuplicate}
		}
	}

	return val, nil
}

// normalizeDefault parses string datetime defaults so the normalized payload
// is uniform regardless of how the default was declared.
func normalizeDefault(f Field) any {
	if f.Type == TypeDateTime {
		if s, ok := f.Default.(string); ok {
			ts, err := time.Parse(layoutOf(f.Format), s)
			if err == nil {
				return ts
			}
		}
	}
	return f.Default
}

// enumMember compares numerically for number enums so that, e.g., a payload
// int 2 matches a declared float64 2.  Everything else compares with ==.
func enumMember(allowed []any, v any) bool {
	vf, vnum := asNumber(v)
	for _, a := range allowed {
		if af, anum := asNumber(a); anum && vnum {
			if af == vf {
				return true
			}
			continue
		}
		if a == v {
			return true
		}
	}
	return false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
