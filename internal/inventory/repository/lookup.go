package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

// PGLookupRepository serves one reference table. T must carry db tags for
// "id" and every entry of columns.
type PGLookupRepository[T any] struct {
	DB      *sqlx.DB
	table   string
	columns []string
}

func NewTypeRepository(db *sqlx.DB) *PGLookupRepository[model.InventoryType] {
	return &PGLookupRepository[model.InventoryType]{DB: db, table: "inventory_types", columns: []string{"name"}}
}

func NewLanguageRepository(db *sqlx.DB) *PGLookupRepository[model.InventoryLanguage] {
	return &PGLookupRepository[model.InventoryLanguage]{DB: db, table: "inventory_languages", columns: []string{"name"}}
}

func NewTagRepository(db *sqlx.DB) *PGLookupRepository[model.InventoryTag] {
	return &PGLookupRepository[model.InventoryTag]{DB: db, table: "inventory_tags", columns: []string{"name", "is_active"}}
}

func (r *PGLookupRepository[T]) selectColumns() string {
	return "id, " + strings.Join(r.columns, ", ")
}

func (r *PGLookupRepository[T]) Create(ctx context.Context, item *T) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (:id, :%s)",
		r.table, r.selectColumns(), strings.Join(r.columns, ", :"))
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return err
}

func (r *PGLookupRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var item T
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", r.selectColumns(), r.table)
	if err := r.DB.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGLookupRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	items := []T{}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY name ASC, id ASC", r.selectColumns(), r.table)
	if err := r.DB.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGLookupRepository[T]) Update(ctx context.Context, item *T) (bool, error) {
	sets := make([]string, 0, len(r.columns))
	for _, c := range r.columns {
		sets = append(sets, c+" = :"+c)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = :id", r.table, strings.Join(sets, ", "))

	res, err := r.DB.NamedExecContext(ctx, query, item)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete fails with a validation error while inventory items still point
// at the row.
func (r *PGLookupRepository[T]) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table), id)
	if err != nil {
		return false, database.ReferenceError(err, "id")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
