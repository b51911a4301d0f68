package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	invID  = "0b8f6a0e-1111-4c55-9b7b-000000000001"
	typeID = "0b8f6a0e-2222-4c55-9b7b-000000000002"
	langID = "0b8f6a0e-3333-4c55-9b7b-000000000003"
	tagID  = "0b8f6a0e-4444-4c55-9b7b-000000000004"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func newInventory() *model.Inventory {
	return &model.Inventory{
		ID:         invID,
		Name:       "Skyfall",
		TypeID:     typeID,
		LanguageID: langID,
		Metadata:   types.JSONText(`{"year":2012}`),
		CreatedAt:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		Type:       &model.InventoryType{ID: typeID, Name: "Film"},
		Language:   &model.InventoryLanguage{ID: langID, Name: "English"},
		Tags:       []model.InventoryTag{{ID: tagID, Name: "bond", IsActive: true}},
	}
}

func TestPGRepository_CreateComposite(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO inventory_types`).WithArgs(typeID, "Film").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO inventory_languages`).WithArgs(langID, "English").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO inventory \(`).
		WithArgs(invID, "Skyfall", typeID, langID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO inventory_tags`).WithArgs(tagID, "bond", true).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO inventory_inventory_tags`).WithArgs(invID, tagID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateComposite(context.Background(), newInventory()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_CreateComposite_RollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO inventory_types`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO inventory_languages`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO inventory \(`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO inventory_tags`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.CreateComposite(context.Background(), newInventory())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert inventory tag")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_FindByID_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	mock.ExpectQuery(`FROM inventory WHERE id = \$1`).WithArgs(invID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type_id", "language_id", "metadata", "created_at"}))

	inv, err := repo.FindByID(context.Background(), invID)
	require.NoError(t, err)
	assert.Nil(t, inv)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func expectHydration(mock sqlmock.Sqlmock, ids ...string) {
	mock.ExpectQuery(`SELECT id, name FROM inventory_types WHERE id IN`).WithArgs(typeID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(typeID, "Film"))
	mock.ExpectQuery(`SELECT id, name FROM inventory_languages WHERE id IN`).WithArgs(langID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(langID, "English"))

	args := make([]driver.Value, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	mock.ExpectQuery(`FROM inventory_tags t`).WithArgs(args...).
		WillReturnRows(sqlmock.NewRows([]string{"inventory_id", "id", "name", "is_active"}).
			AddRow(ids[0], tagID, "bond", true))
}

func TestPGRepository_FindByID_Hydrates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM inventory WHERE id = \$1`).WithArgs(invID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type_id", "language_id", "metadata", "created_at"}).
			AddRow(invID, "Skyfall", typeID, langID, []byte(`{"year":2012,"film_locations":["Shanghai"]}`), created))
	expectHydration(mock, invID)

	inv, err := repo.FindByID(context.Background(), invID)
	require.NoError(t, err)
	require.NotNil(t, inv)

	assert.Equal(t, "Film", inv.Type.Name)
	assert.Equal(t, "English", inv.Language.Name)
	assert.Equal(t, []model.InventoryTag{{ID: tagID, Name: "bond", IsActive: true}}, inv.Tags)
	assert.JSONEq(t, `{"year":2012,"film_locations":["Shanghai"]}`, inv.Metadata.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_FindAll_AfterDateAndPage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := "0b8f6a0e-1111-4c55-9b7b-000000000009"

	mock.ExpectQuery(`SELECT count\(\*\) FROM inventory WHERE created_at > \$1`).WithArgs(after).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`WHERE created_at > \$1 ORDER BY created_at ASC, id ASC LIMIT 3 OFFSET 3`).WithArgs(after).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type_id", "language_id", "metadata", "created_at"}).
			AddRow(invID, "A", typeID, langID, []byte(`{}`), after.Add(time.Hour)).
			AddRow(second, "B", typeID, langID, []byte(`{}`), after.Add(2*time.Hour)))
	expectHydration(mock, invID, second)

	items, count, err := repo.FindAll(context.Background(), &dto.InventoryFilters{CreatedAfter: &after, Limit: 3, Offset: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	require.Len(t, items, 2)
	assert.Len(t, items[0].Tags, 1)
	assert.Empty(t, items[1].Tags)
	assert.NotNil(t, items[1].Tags)
	assert.Equal(t, "Film", items[1].Type.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_FindAll_NoFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM inventory$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`FROM inventory ORDER BY created_at ASC, id ASC LIMIT 3 OFFSET 0`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type_id", "language_id", "metadata", "created_at"}))

	items, count, err := repo.FindAll(context.Background(), &dto.InventoryFilters{Limit: 3})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_Update_ReplacesTags(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)
	other := "0b8f6a0e-4444-4c55-9b7b-000000000005"

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE inventory`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM inventory_inventory_tags WHERE inventory_id = \$1`).WithArgs(invID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO inventory_inventory_tags`).WithArgs(invID, tagID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO inventory_inventory_tags`).WithArgs(invID, other).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), newInventory(), []string{tagID, other}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_Update_UnknownReference(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		field      string
	}{
		{"type", "inventory_type_id_fkey", "type_id"},
		{"language", "inventory_language_id_fkey", "language_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewPGRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(`UPDATE inventory`).
				WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: tt.constraint})
			mock.ExpectRollback()

			err := repo.Update(context.Background(), newInventory(), nil)
			ve, ok := model.IsValidation(err)
			require.True(t, ok, "got %v", err)
			assert.Contains(t, ve.Fields, tt.field)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPGRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	mock.ExpectExec(`DELETE FROM inventory WHERE id = \$1`).WithArgs(invID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM inventory WHERE id = \$1`).WithArgs(invID).WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), invID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(context.Background(), invID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
