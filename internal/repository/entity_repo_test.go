package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"chargenet/internal/apperr"
	"chargenet/internal/schema"
)

func newMock(t *testing.T) (*EntityRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEntityRepository(db), mock
}

func mustEntity(t *testing.T, entityType string) schema.Entity {
	t.Helper()
	entity, err := schema.Lookup(entityType)
	require.NoError(t, err)
	return entity
}

func TestEntityListPaginated(t *testing.T) {
	repo, mock := newMock(t)
	entity := mustEntity(t, "chargers")

	rows := sqlmock.NewRows([]string{"id", "station_id", "charger_type", "power_rating_kw"}).
		AddRow(int64(1), int64(10), []byte("DC fast"), 50.0).
		AddRow(int64(2), int64(10), []byte("AC"), 7.4)
	mock.ExpectQuery(`SELECT .+ FROM "chargers" ORDER BY "id" LIMIT \$1 OFFSET \$2`).
		WithArgs(2, 0).
		WillReturnRows(rows)

	records, err := repo.List(context.Background(), entity, 2, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// []byte columns come back as strings, not base64 blobs.
	require.Equal(t, "DC fast", records[0]["charger_type"])
	require.Equal(t, int64(10), records[0]["station_id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityListUnpaginated(t *testing.T) {
	repo, mock := newMock(t)
	entity := mustEntity(t, "services")

	rows := sqlmock.NewRows([]string{"id", "maintenance_id", "contact_number"})
	mock.ExpectQuery(`SELECT .+ FROM "services" ORDER BY "id"$`).
		WillReturnRows(rows)

	records, err := repo.List(context.Background(), entity, 0, 0)
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityGetByID(t *testing.T) {
	repo, mock := newMock(t)
	entity := mustEntity(t, "charging_stations")

	rows := sqlmock.NewRows([]string{"id", "name", "address", "city"}).
		AddRow(int64(4), "Airport Road", "12 Airport Rd", "Pune")
	mock.ExpectQuery(`SELECT .+ FROM "charging_stations" WHERE "id" = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(rows)

	record, err := repo.GetByID(context.Background(), entity, 4)
	require.NoError(t, err)
	require.Equal(t, "Airport Road", record["name"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityGetByIDMissing(t *testing.T) {
	repo, mock := newMock(t)
	entity := mustEntity(t, "charging_stations")

	mock.ExpectQuery(`SELECT .+ FROM "charging_stations" WHERE "id" = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "city"}))

	_, err := repo.GetByID(context.Background(), entity, 404)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityInsertReturnsID(t *testing.T) {
	repo, mock := newMock(t)
	entity := mustEntity(t, "chargers")

	mock.ExpectQuery(`INSERT INTO "chargers" \("station_id", "charger_type", "power_rating_kw"\) VALUES \(\$1, \$2, \$3\) RETURNING "id"`).
		WithArgs(int64(10), "DC fast", 50.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.Insert(context.Background(), entity,
		[]string{"station_id", "charger_type", "power_rating_kw"},
		[]any{int64(10), "DC fast", 50.0})
	require.NoError(t, err)
	require.Equal(t, int64(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityUpdate(t *testing.T) {
	repo, mock := newMock(t)
	entity := mustEntity(t, "vehicles")

	mock.ExpectExec(`UPDATE "vehicles" SET "model" = \$1 WHERE "id" = \$2`).
		WithArgs("Kona", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Update(context.Background(), entity, 3, []string{"model"}, []any{"Kona"})
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityDeleteMissingRowAffectsZero(t *testing.T) {
	repo, mock := newMock(t)
	entity := mustEntity(t, "vehicles")

	mock.ExpectExec(`DELETE FROM "vehicles" WHERE "id" = \$1`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), entity, 99)
	require.NoError(t, err)
	require.Zero(t, affected)
	require.NoError(t, mock.ExpectationsWereMet())
}
