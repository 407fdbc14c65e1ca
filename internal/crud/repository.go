// internal/crud/repository.go
//
// Generic soft-delete CRUD repository over sqlx.
//
// Context
// -------
// One Repository instance serves one entity table.  It is constructed with
// the table name and the entity's full column set; every filter key is
// whitelisted against that set before it can reach SQL, so unknown keys
// fail loudly instead of silently matching nothing.  Records travel as
// generic maps (column → value) because the schema layer, not Go structs,
// defines each entity's shape.
//
// Soft delete
// -----------
// No row is ever physically deleted.  Every table carries `ativo`; creation
// sets it true, and ToggleActive is the only transition between the two
// lifecycle states.  FindActive composes the flag into the caller's filter.
//
// Notes
// -----
// • SQL is built from sorted keys, so statements are deterministic for a
//   given filter, which also keeps sqlmock expectations simple.
// • Column identifiers are backtick-quoted; the whitelist is what makes
//   interpolating them safe.
// • All storage failures surface as *StorageError; absent rows addressed by
//   ID surface as *NotFoundError.
// • Oxford commas, two spaces after periods.
package crud

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/planovida/associado/internal/metrics"
)

// Record is one persisted row, keyed by column name.
type Record map[string]any

// ID returns the record's numeric identifier, or zero when unreadable.
func (r Record) ID() int64 {
	n, _ := asInt(r["id"])
	return n
}

// Active reports the record's soft-delete state.
func (r Record) Active() bool { return asBool(r["ativo"]) }

// Repository performs filtered lookup, lookup by ID, insert, update, and
// soft activation for a single entity table.  Safe for concurrent use; all
// record state lives in storage.
type Repository struct {
	db      *sqlx.DB
	entity  string
	table   string
	columns map[string]struct{}

	now func() time.Time // stubbed in tests
}

// NewRepository builds a repository for one entity.  columns must be the
// complete column set of the table, audit columns included.
func NewRepository(db *sqlx.DB, entity, table string, columns []string) *Repository {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return &Repository{
		db:      db,
		entity:  entity,
		table:   table,
		columns: set,
		now:     time.Now,
	}
}

// HasColumn reports whether name is a known column of the entity.
func (r *Repository) HasColumn(name string) bool {
	_, ok := r.columns[name]
	return ok
}

// FindByFilter returns every record matching the conjunction of equality
// predicates in filter, active or not, in storage order.  An unknown filter
// key fails with *InvalidFilterError before any SQL runs.
func (r *Repository) FindByFilter(ctx context.Context, filter map[string]any) ([]Record, error) {
	clause, args, err := r.whereClause(filter)
	if err != nil {
		return nil, err
	}

	q := "SELECT * FROM " + quote(r.table) + clause
	rows, err := r.db.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, r.storage("find", err)
	}
	defer rows.Close()

	out := make([]Record, 0, 8)
	for rows.Next() {
		rec := make(map[string]any)
		if err := rows.MapScan(rec); err != nil {
			return nil, r.storage("find", err)
		}
		out = append(out, decodeRow(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, r.storage("find", err)
	}

	metrics.RepositoryOpsTotal.WithLabelValues(r.entity, "find").Inc()
	return out, nil
}

// FindActive is FindByFilter restricted to active records.
func (r *Repository) FindActive(ctx context.Context, filter map[string]any) ([]Record, error) {
	merged := make(map[string]any, len(filter)+1)
	for k, v := range filter {
		merged[k] = v
	}
	merged["ativo"] = true
	return r.FindByFilter(ctx, merged)
}

// FindByID returns the record with the given identifier, active or not.
func (r *Repository) FindByID(ctx context.Context, id int64) (Record, error) {
	q := "SELECT * FROM " + quote(r.table) + " WHERE `id` = ? LIMIT 1"

	rows, err := r.db.QueryxContext(ctx, q, id)
	if err != nil {
		return nil, r.storage("findById", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, r.storage("findById", err)
		}
		return nil, &NotFoundError{Entity: r.entity, ID: id}
	}
	rec := make(map[string]any)
	if err := rows.MapScan(rec); err != nil {
		return nil, r.storage("findById", err)
	}

	metrics.RepositoryOpsTotal.WithLabelValues(r.entity, "findById").Inc()
	return decodeRow(rec), nil
}

// Insert persists a new record.  The soft-delete flag defaults to true when
// the payload does not set it, and createdAt/updatedAt are stamped here.
// Returns the persisted record, generated identifier included.
func (r *Repository) Insert(ctx context.Context, data map[string]any) (Record, error) {
	row := make(map[string]any, len(data)+3)
	for k, v := range data {
		row[k] = v
	}
	if _, ok := row["ativo"]; !ok {
		row["ativo"] = true
	}
	ts := r.now()
	row["createdAt"] = ts
	row["updatedAt"] = ts

	cols := sortedKeys(row)
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = quote(c)
		marks[i] = "?"
		args[i] = bindArg(row[c])
	}

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(r.table), strings.Join(names, ", "), strings.Join(marks, ", "))

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, r.storage("insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, r.storage("insert", err)
	}

	metrics.RepositoryOpsTotal.WithLabelValues(r.entity, "insert").Inc()
	return r.FindByID(ctx, id)
}

// Update overlays data onto the existing record: only the supplied fields
// are replaced, everything else is preserved.  updatedAt is refreshed.
// Fails with *NotFoundError when the identifier matches nothing.
func (r *Repository) Update(ctx context.Context, id int64, data map[string]any) (Record, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	row := make(map[string]any, len(data)+1)
	for k, v := range data {
		if k == "id" {
			continue
		}
		row[k] = v
	}
	row["updatedAt"] = r.now()

	cols := sortedKeys(row)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = quote(c) + " = ?"
		args = append(args, bindArg(row[c]))
	}
	args = append(args, id)

	q := fmt.Sprintf("UPDATE %s SET %s WHERE `id` = ?",
		quote(r.table), strings.Join(sets, ", "))

	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, r.storage("update", err)
	}

	metrics.RepositoryOpsTotal.WithLabelValues(r.entity, "update").Inc()
	return r.FindByID(ctx, id)
}

// ToggleActive flips the soft-delete flag and stamps updatedBy.  It is the
// only lifecycle transition; two successive calls restore the original
// state.
func (r *Repository) ToggleActive(ctx context.Context, id int64, updatedBy string) (Record, error) {
	rec, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	q := "UPDATE " + quote(r.table) +
		" SET `ativo` = ?, `updatedBy` = ?, `updatedAt` = ? WHERE `id` = ?"
	if _, err := r.db.ExecContext(ctx, q, !rec.Active(), updatedBy, r.now(), id); err != nil {
		return nil, r.storage("toggleActive", err)
	}

	metrics.RepositoryOpsTotal.WithLabelValues(r.entity, "toggleActive").Inc()
	return r.FindByID(ctx, id)
}

// ExistsActiveOther reports whether an active record other than excludeID
// holds value in field.  It backs the validator's uniqueness check;
// excludeID zero means inserts, where every active holder collides.
func (r *Repository) ExistsActiveOther(ctx context.Context, field string, value any, excludeID int64) (bool, error) {
	if _, ok := r.columns[field]; !ok {
		return false, &InvalidFilterError{Entity: r.entity, Key: field}
	}

	q := "SELECT 1 FROM " + quote(r.table) +
		" WHERE " + quote(field) + " = ? AND `ativo` = TRUE"
	args := []any{bindArg(value)}
	if excludeID != 0 {
		q += " AND `id` <> ?"
		args = append(args, excludeID)
	}
	q += " LIMIT 1"

	var dummy int
	err := r.db.QueryRowxContext(ctx, q, args...).Scan(&dummy)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, r.storage("unique", err)
	}
	return true, nil
}

//
// Helpers
//

// whereClause builds " WHERE `a` = ? AND `b` = ?" from sorted filter keys.
// Empty filters produce no clause.  Unknown keys fail before SQL is built.
func (r *Repository) whereClause(filter map[string]any) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	keys := sortedKeys(filter)
	preds := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		if _, ok := r.columns[k]; !ok {
			return "", nil, &InvalidFilterError{Entity: r.entity, Key: k}
		}
		preds[i] = quote(k) + " = ?"
		args[i] = bindArg(filter[k])
	}
	return " WHERE " + strings.Join(preds, " AND "), args, nil
}

func (r *Repository) storage(op string, err error) error {
	metrics.StorageErrorsTotal.Inc()
	return &StorageError{Entity: r.entity, Op: op, Err: err}
}

func quote(ident string) string { return "`" + ident + "`" }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// bindArg converts composite values (validated objects and arrays) to their
// JSON text so the driver can bind them into JSON columns.  Scalars pass
// through.
func bindArg(v any) any {
	switch v.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return v
		}
		return string(b)
	}
	return v
}

// decodeRow converts MapScan's driver-level values into caller-friendly
// ones: []byte column values become strings.
func decodeRow(raw map[string]any) Record {
	rec := make(Record, len(raw))
	for k, v := range raw {
		if b, ok := v.([]byte); ok {
			rec[k] = string(b)
			continue
		}
		rec[k] = v
	}
	return rec
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case float64:
		return b != 0
	case string:
		return b == "1" || strings.EqualFold(b, "true")
	}
	return false
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		var out int64
		_, err := fmt.Sscan(n, &out)
		return out, err == nil
	}
	return 0, false
}
