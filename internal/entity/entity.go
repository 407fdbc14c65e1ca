// internal/entity/entity.go
//
// Entity descriptors: the compile-time-known shape of each record kind.
//
// Context
// -------
// Every entity of the membership domain is declared once, as a Descriptor:
// its table, its full column set (the filter whitelist), its Field Schema,
// and its normalization hooks.  The per-entity files in this package build
// their Descriptor literals and register them during package
// initialization; a malformed declaration panics at startup, never at
// request time.
//
// All entities share the audit tail: `ativo` (soft-delete flag, defaults
// true), `createdBy`/`createdAt` set at creation, `updatedBy`/`updatedAt`
// refreshed by updates and toggles.
//
// Notes
// -----
// • Column names match payload field names verbatim, so caller filters pass
//   through unchanged.
// • Oxford commas, two spaces after periods.
package entity

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/planovida/associado/internal/crud"
	"github.com/planovida/associado/internal/normalize"
	"github.com/planovida/associado/internal/schema"
)

// Date layouts used across the descriptors.  The original data sources mix
// ISO and Brazilian day-first forms per field; each field keeps the format
// it was captured with.
const (
	LayoutISODate     = "2006-01-02"
	LayoutBRDate      = "02/01/2006"
	LayoutBRDateTime  = "02/01/2006 15:04:05"
	LayoutISODateTime = "2006-01-02 15:04:05"
	LayoutTime        = "15:04:05"
)

// Descriptor is the immutable declaration of one entity.
type Descriptor struct {
	Name      string        // registry key, singular, lowercase
	Table     string        // backing table
	Columns   []string      // full column whitelist, audit tail included
	Schema    schema.Schema // writable-field schema, audit tail included
	Normalize normalize.Map // beforeSave canonicalization hooks
}

// NewService builds the validated CRUD service for this entity.
func (d Descriptor) NewService(db *sqlx.DB, log *zap.SugaredLogger) *crud.Service {
	repo := crud.NewRepository(db, d.Name, d.Table, d.Columns)
	return crud.NewService(d.Name, repo, d.Schema, d.Normalize, log)
}

var descriptors []Descriptor

// register completes the descriptor with the shared audit tail, derives the
// column whitelist from the declared fields, validates the schema, and
// tracks the descriptor for All().
func register(d Descriptor) Descriptor {
	d.Schema = append(d.Schema, auditFields()...)
	d.Columns = columnsOf(d.Schema)
	schema.Register(d.Name, d.Schema)
	descriptors = append(descriptors, d)
	return d
}

// columnsOf is the identifier column plus every declared field name.
func columnsOf(s schema.Schema) []string {
	cols := make([]string, 0, len(s)+1)
	cols = append(cols, "id")
	for _, f := range s {
		cols = append(cols, f.Name)
	}
	return cols
}

// All returns every registered descriptor, in registration order.
func All() []Descriptor { return descriptors }

//
// Shared audit tail
//

// auditFields mirrors the audit descriptor every entity carries: the
// soft-delete flag defaults to true, createdBy is stamped by the service
// and therefore required, and the timestamp columns are written by the
// repository.
func auditFields() schema.Schema {
	return schema.Schema{
		{Name: "ativo", Type: schema.TypeBool, Default: true},
		{Name: "createdBy", Type: schema.TypeString, Required: true},
		{Name: "createdAt", Type: schema.TypeDateTime, Format: LayoutISODateTime},
		{Name: "updatedBy", Type: schema.TypeString},
		{Name: "updatedAt", Type: schema.TypeDateTime, Format: LayoutISODateTime},
	}
}

// auditNormalize applies the operator-ID canonicalization every model's
// beforeSave hook performed.
func auditNormalize(m normalize.Map) normalize.Map {
	m["createdBy"] = normalize.Upper
	m["updatedBy"] = normalize.Upper
	return m
}
