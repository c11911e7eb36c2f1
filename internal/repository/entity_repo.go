package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"chargenet/internal/apperr"
	"chargenet/internal/schema"
)

// EntityRepository executes generic CRUD against the tables declared in the
// schema registry. All identifiers come from the registry, never from the
// request, so queries are built from trusted column names plus parameter
// placeholders only.
type EntityRepository struct {
	db *sql.DB
}

// NewEntityRepository returns repository instance.
func NewEntityRepository(db *sql.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}

func columnList(entity schema.Entity) string {
	names := entity.ColumnNames()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}

// List returns rows ordered by primary key. A non-positive limit means no
// pagination.
func (r *EntityRepository) List(ctx context.Context, entity schema.Entity, limit, offset int) ([]map[string]any, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		columnList(entity), quoteIdent(entity.Table), quoteIdent(entity.PK))

	var args []any
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		if offset < 0 {
			offset = 0
		}
		args = append(args, limit, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer rows.Close()

	records := make([]map[string]any, 0)
	for rows.Next() {
		record, err := scanRecord(rows, entity)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.FromStore(err)
	}
	return records, nil
}

// GetByID returns the row matching the declared primary key.
func (r *EntityRepository) GetByID(ctx context.Context, entity schema.Entity, id int64) (map[string]any, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		columnList(entity), quoteIdent(entity.Table), quoteIdent(entity.PK))

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, apperr.FromStore(err)
		}
		return nil, apperr.Newf(apperr.KindNotFound, "%s %d not found", entity.Type, id)
	}
	return scanRecord(rows, entity)
}

// Insert creates a row from the supplied columns and returns the generated id.
func (r *EntityRepository) Insert(ctx context.Context, entity schema.Entity, cols []string, values []any) (int64, error) {
	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		quoteIdent(entity.Table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
		quoteIdent(entity.PK))

	var id int64
	if err := r.db.QueryRowContext(ctx, query, values...).Scan(&id); err != nil {
		return 0, apperr.FromStore(err)
	}
	return id, nil
}

// Update applies a partial update and returns the affected-row count.
func (r *EntityRepository) Update(ctx context.Context, entity schema.Entity, id int64, cols []string, values []any) (int64, error) {
	assignments := make([]string, len(cols))
	for i, c := range cols {
		assignments[i] = fmt.Sprintf("%s = $%d", quoteIdent(c), i+1)
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		quoteIdent(entity.Table),
		strings.Join(assignments, ", "),
		quoteIdent(entity.PK),
		len(cols)+1)

	result, err := r.db.ExecContext(ctx, query, append(values, id)...)
	if err != nil {
		return 0, apperr.FromStore(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperr.FromStore(err)
	}
	return affected, nil
}

// Delete removes the row by primary key. Deleting a missing id reports zero
// affected rows, not an error.
func (r *EntityRepository) Delete(ctx context.Context, entity schema.Entity, id int64) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		quoteIdent(entity.Table), quoteIdent(entity.PK))

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, apperr.FromStore(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperr.FromStore(err)
	}
	return affected, nil
}

func scanRecord(rows *sql.Rows, entity schema.Entity) (map[string]any, error) {
	names := entity.ColumnNames()
	values := make([]any, len(names))
	targets := make([]any, len(names))
	for i := range values {
		targets[i] = &values[i]
	}

	if err := rows.Scan(targets...); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to scan row", err)
	}

	record := make(map[string]any, len(names))
	for i, name := range names {
		record[name] = normalizeValue(values[i])
	}
	return record, nil
}

// normalizeValue makes driver values JSON-friendly. pgx hands back []byte for
// text-format columns; surfacing raw bytes would base64-encode them.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
