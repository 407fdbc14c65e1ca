// internal/crud/service.go
//
// Generic entity service: validation, normalization, actor stamping.
//
// Context
// -------
// Service glues the three collaborators together for one entity: the Field
// Schema drives validation, the normalization map canonicalizes scalars,
// and the Repository persists.  The request-handling layer supplies the
// caller identity; the service stamps it into createdBy/updatedBy before
// validation so the schema's required rules apply to it like any other
// field.
//
// Notes
// -----
// • Validation failures are counted per entity and reason, then returned
//   untouched; the transport layer owns user-facing text.
// • Oxford commas, two spaces after periods.
package crud

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/planovida/associado/internal/metrics"
	"github.com/planovida/associado/internal/normalize"
	"github.com/planovida/associado/internal/schema"
)

// Service exposes the validated CRUD surface for one entity.
type Service struct {
	entity string
	repo   *Repository
	schema schema.Schema
	norm   normalize.Map
	log    *zap.SugaredLogger
}

// NewService wires a schema, a normalization map, and a repository into one
// entity service.  norm may be nil when the entity declares no hooks.
func NewService(entity string, repo *Repository, s schema.Schema, norm normalize.Map, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.S()
	}
	return &Service{entity: entity, repo: repo, schema: s, norm: norm, log: log}
}

// Repo exposes the underlying repository, mainly for uniqueness-aware
// callers and tests.
func (s *Service) Repo() *Repository { return s.repo }

// List returns records matching filter, active and inactive alike.  Filter
// keys are passed through unchanged and whitelisted by the repository.
func (s *Service) List(ctx context.Context, filter map[string]any) ([]Record, error) {
	return s.repo.FindByFilter(ctx, filter)
}

// ListActive returns matching records that are active.
func (s *Service) ListActive(ctx context.Context, filter map[string]any) ([]Record, error) {
	return s.repo.FindActive(ctx, filter)
}

// Get returns one record by identifier, regardless of lifecycle state.
func (s *Service) Get(ctx context.Context, id int64) (Record, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates payload against the entity schema, applies the
// normalization hooks, and inserts.  actor is stamped as createdBy before
// validation runs.
func (s *Service) Create(ctx context.Context, actor string, payload map[string]any) (Record, error) {
	in := clone(payload)
	in["createdBy"] = actor

	clean, err := s.validate(ctx, in, 0)
	if err != nil {
		return nil, err
	}
	if s.norm != nil {
		s.norm.Apply(clean)
	}
	rec, err := s.repo.Insert(ctx, clean)
	if err != nil {
		return nil, err
	}
	s.log.Debugw("record created", "entity", s.entity, "id", rec.ID())
	return rec, nil
}

// Update validates payload, applies normalization, and overlays the result
// onto the existing record.  actor is stamped as updatedBy.  Uniqueness
// checks exclude the record itself.
func (s *Service) Update(ctx context.Context, actor string, id int64, payload map[string]any) (Record, error) {
	in := clone(payload)
	in["updatedBy"] = actor

	clean, err := s.validate(ctx, in, id)
	if err != nil {
		return nil, err
	}
	if s.norm != nil {
		s.norm.Apply(clean)
	}
	rec, err := s.repo.Update(ctx, id, clean)
	if err != nil {
		return nil, err
	}
	s.log.Debugw("record updated", "entity", s.entity, "id", id)
	return rec, nil
}

// ToggleActive flips the record between the Active and Inactive states.
func (s *Service) ToggleActive(ctx context.Context, actor string, id int64) (Record, error) {
	rec, err := s.repo.ToggleActive(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	s.log.Infow("record toggled", "entity", s.entity, "id", id, "ativo", rec.Active())
	return rec, nil
}

// validate runs the schema validator with this entity's repository as the
// uniqueness universe, updating the failure counter on payload errors.
func (s *Service) validate(ctx context.Context, payload map[string]any, updatingID int64) (map[string]any, error) {
	// Partial update: on update, only require the fields the caller sent
	// plus the always-stamped audit field, mirroring overlay semantics.
	sch := s.schema
	if updatingID != 0 {
		sch = partial(s.schema, payload)
	}

	clean, err := schema.Validate(ctx, payload, sch, s.repo, updatingID)
	if err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			metrics.ValidationFailuresTotal.WithLabelValues(s.entity, ve.Reason).Inc()
			s.log.Debugw("validation failed",
				"entity", s.entity, "field", ve.Field, "reason", ve.Reason)
		}
		return nil, err
	}
	return clean, nil
}

// partial strips Required and Default from fields absent in payload, so an
// overlay update never fails on, or resurrects, fields the caller did not
// touch.
func partial(s schema.Schema, payload map[string]any) schema.Schema {
	out := make(schema.Schema, len(s))
	for i, f := range s {
		if _, present := payload[f.Name]; !present {
			f.Required = false
			f.Default = nil
		}
		out[i] = f
	}
	return out
}

func clone(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
