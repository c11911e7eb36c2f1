package service

import (
	"context"

	"go.uber.org/zap"

	"chargenet/internal/apperr"
	"chargenet/internal/schema"
)

// EntityStore is the generic CRUD contract implemented by the repository.
type EntityStore interface {
	List(ctx context.Context, entity schema.Entity, limit, offset int) ([]map[string]any, error)
	GetByID(ctx context.Context, entity schema.Entity, id int64) (map[string]any, error)
	Insert(ctx context.Context, entity schema.Entity, cols []string, values []any) (int64, error)
	Update(ctx context.Context, entity schema.Entity, id int64, cols []string, values []any) (int64, error)
	Delete(ctx context.Context, entity schema.Entity, id int64) (int64, error)
}

// EntityService validates entity types and column sets before handing the
// operation to the store.
type EntityService struct {
	store  EntityStore
	logger *zap.Logger
}

// NewEntityService builds EntityService.
func NewEntityService(store EntityStore, logger *zap.Logger) *EntityService {
	return &EntityService{store: store, logger: logger}
}

func (s *EntityService) resolve(entityType string) (schema.Entity, error) {
	entity, err := schema.Lookup(entityType)
	if err != nil {
		return schema.Entity{}, apperr.Newf(apperr.KindValidation, "unknown entity type %q", entityType)
	}
	return entity, nil
}

// Columns returns the declared column order for an entity type.
func (s *EntityService) Columns(entityType string) ([]string, error) {
	entity, err := s.resolve(entityType)
	if err != nil {
		return nil, err
	}
	return entity.ColumnNames(), nil
}

// List returns rows, optionally paginated.
func (s *EntityService) List(ctx context.Context, entityType string, limit, offset int) ([]map[string]any, error) {
	entity, err := s.resolve(entityType)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, entity, limit, offset)
}

// Get returns one row by primary key.
func (s *EntityService) Get(ctx context.Context, entityType string, id int64) (map[string]any, error) {
	entity, err := s.resolve(entityType)
	if err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, entity, id)
}

// Create inserts a row and returns the generated id.
func (s *EntityService) Create(ctx context.Context, entityType string, fields map[string]any) (int64, error) {
	entity, err := s.resolve(entityType)
	if err != nil {
		return 0, err
	}
	cols, values, err := splitFields(entity, fields)
	if err != nil {
		return 0, err
	}

	id, err := s.store.Insert(ctx, entity, cols, values)
	if err != nil {
		return 0, err
	}
	s.logger.Info("entity created", zap.String("type", entity.Type), zap.Int64("id", id))
	return id, nil
}

// Update applies a partial update and returns the affected-row count.
func (s *EntityService) Update(ctx context.Context, entityType string, id int64, fields map[string]any) (int64, error) {
	entity, err := s.resolve(entityType)
	if err != nil {
		return 0, err
	}
	cols, values, err := splitFields(entity, fields)
	if err != nil {
		return 0, err
	}
	return s.store.Update(ctx, entity, id, cols, values)
}

// Delete removes a row; a missing id reports zero affected rows.
func (s *EntityService) Delete(ctx context.Context, entityType string, id int64) (int64, error) {
	entity, err := s.resolve(entityType)
	if err != nil {
		return 0, err
	}
	return s.store.Delete(ctx, entity, id)
}

// splitFields turns the request body into parallel column/value slices in
// declared column order, rejecting unknown and derived columns.
func splitFields(entity schema.Entity, fields map[string]any) ([]string, []any, error) {
	if len(fields) == 0 {
		return nil, nil, apperr.New(apperr.KindValidation, "no fields supplied")
	}

	for name := range fields {
		writable, known := entity.WritableColumn(name)
		if !known {
			return nil, nil, apperr.Newf(apperr.KindValidation, "unknown column %q for %s", name, entity.Type)
		}
		if !writable {
			return nil, nil, apperr.Newf(apperr.KindValidation, "column %q is derived and cannot be written", name)
		}
	}

	var (
		cols   []string
		values []any
	)
	for _, column := range entity.Columns {
		if value, ok := fields[column.Name]; ok {
			cols = append(cols, column.Name)
			values = append(values, value)
		}
	}
	return cols, values, nil
}
