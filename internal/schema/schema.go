// internal/schema/schema.go
//
// Declarative field schemas and their process-wide registry.
//
// Context
// -------
// Every entity declares its writable surface once, at startup, as an ordered
// list of Field descriptors.  The validator walks the declaration order so
// the first failure reported is deterministic.  Schemas are registered under
// the entity name and are read-only afterwards; concurrent readers need no
// locking beyond the registry's own RWMutex.
//
// Workflow
// --------
//  1. Each entity file builds a Schema literal and calls Register during
//     package initialization.
//  2. Register enforces structural rules: unique field names, sane types,
//     defaults matching the declared type, nested schemas only on object
//     and array fields.
//  3. Validate (see validate.go) consumes the Schema plus a caller payload.
//
// Notes
// -----
// • Datetime formats use Go reference layouts, e.g. "2006-01-02".
// • Oxford commas, two spaces after periods.
package schema

import (
	"fmt"
	"sync"
	"time"
)

// Type enumerates the value kinds a field may declare.
type Type string

const (
	TypeString   Type = "string"
	TypeNumber   Type = "number"
	TypeBool     Type = "boolean"
	TypeObject   Type = "object"
	TypeArray    Type = "array"
	TypeDateTime Type = "datetime"
)

// Field describes one writable field of one entity.
type Field struct {
	Name     string  // payload key and column name
	Type     Type    // value kind, mandatory
	Required bool    // absent field fails validation unless Default is set
	Unique   bool    // no other active record may hold an equal value
	Format   string  // Go reference layout, datetime fields only
	Default  any     // injected when the field is absent
	Enum     []any   // closed set of acceptable values, optional
	Nested   []Field // sub-schema for object and array fields, optional
}

// Schema is the ordered writable-field declaration for one entity.
// Declaration order drives first-failure reporting.
type Schema []Field

// Lookup returns the descriptor for name, or false when undeclared.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

//
// Registry
//

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Schema)
)

// Register validates and stores the schema for entity.  It is called during
// startup; a malformed declaration is a programming error and panics so the
// process never serves with a broken schema.
func Register(entity string, s Schema) {
	if err := check(entity, s); err != nil {
		panic(err)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[entity] = s
}

// Get returns the registered schema by entity name.  The boolean is false
// when the entity is unknown.
func Get(entity string) (Schema, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	s, ok := registry[entity]
	return s, ok
}

//
// Structural checks
//

var validTypes = map[Type]bool{
	TypeString:   true,
	TypeNumber:   true,
	TypeBool:     true,
	TypeObject:   true,
	TypeArray:    true,
	TypeDateTime: true,
}

// check enforces rules a Schema literal cannot express on its own.
func check(entity string, s Schema) error {
	if len(s) == 0 {
		return fmt.Errorf("schema %s: no fields declared", entity)
	}
	seen := make(map[string]struct{}, len(s))
	for _, f := range s {
		if f.Name == "" {
			return fmt.Errorf("schema %s: field missing name", entity)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("schema %s: duplicate field %q", entity, f.Name)
		}
		seen[f.Name] = struct{}{}

		if !validTypes[f.Type] {
			return fmt.Errorf("schema %s: field %q has unknown type %q", entity, f.Name, f.Type)
		}
		if f.Format != "" && f.Type != TypeDateTime {
			return fmt.Errorf("schema %s: field %q declares a format but is not datetime", entity, f.Name)
		}
		if f.Nested != nil && f.Type != TypeObject && f.Type != TypeArray {
			return fmt.Errorf("schema %s: field %q declares nested fields but is %s", entity, f.Name, f.Type)
		}
		if f.Default != nil {
			if msg := typeMismatch(f.Type, f.Default, f.Format); msg != "" {
				return fmt.Errorf("schema %s: field %q default: %s", entity, f.Name, msg)
			}
		}
		if f.Nested != nil {
			if err := check(entity+"."+f.Name, f.Nested); err != nil {
				return err
			}
		}
	}
	return nil
}

// typeMismatch reports why v does not satisfy t, or "" when it does.
// Datetime accepts either a parsed time.Time or a string in the layout.
func typeMismatch(t Type, v any, format string) string {
	switch t {
	case TypeString:
		if _, ok := v.(string); !ok {
			return "expected string"
		}
	case TypeNumber:
		switch v.(type) {
		case float64, float32, int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64:
		default:
			return "expected number"
		}
	case TypeBool:
		if _, ok := v.(bool); !ok {
			return "expected boolean"
		}
	case TypeObject:
		if _, ok := v.(map[string]any); !ok {
			return "expected object"
		}
	case TypeArray:
		if _, ok := v.([]any); !ok {
			return "expected array"
		}
	case TypeDateTime:
		switch s := v.(type) {
		case time.Time:
		case string:
			if _, err := time.Parse(layoutOf(format), s); err != nil {
				return "value does not match layout " + layoutOf(format)
			}
		default:
			return "expected datetime"
		}
	}
	return ""
}

// DefaultDateTimeLayout applies when a datetime field declares no format.
const DefaultDateTimeLayout = "2006-01-02 15:04:05"

func layoutOf(format string) string {
	if format == "" {
		return DefaultDateTimeLayout
	}
	return format
}
