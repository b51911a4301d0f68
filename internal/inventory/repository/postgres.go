package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const inventoryColumns = "id, name, type_id, language_id, metadata, created_at"

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateComposite(ctx context.Context, inv *model.Inventory) error {
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO inventory_types (id, name) VALUES (:id, :name)`, inv.Type); err != nil {
			return fmt.Errorf("insert inventory type: %w", err)
		}
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO inventory_languages (id, name) VALUES (:id, :name)`, inv.Language); err != nil {
			return fmt.Errorf("insert inventory language: %w", err)
		}

		query := `
        INSERT INTO inventory (id, name, type_id, language_id, metadata, created_at)
        VALUES (:id, :name, :type_id, :language_id, :metadata, :created_at)
    `
		if _, err := tx.NamedExecContext(ctx, query, inv); err != nil {
			return fmt.Errorf("insert inventory: %w", err)
		}

		for i := range inv.Tags {
			tag := &inv.Tags[i]
			if _, err := tx.NamedExecContext(ctx, `INSERT INTO inventory_tags (id, name, is_active) VALUES (:id, :name, :is_active)`, tag); err != nil {
				return fmt.Errorf("insert inventory tag: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO inventory_inventory_tags (inventory_id, tag_id) VALUES ($1, $2)`, inv.ID, tag.ID); err != nil {
				return fmt.Errorf("link inventory tag: %w", err)
			}
		}
		return nil
	})
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Inventory, error) {
	var inv model.Inventory
	err := r.DB.GetContext(ctx, &inv, `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	items := []model.Inventory{inv}
	if err := r.hydrate(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.Inventory, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.CreatedAfter != nil {
		conditions = append(conditions, "created_at > :created_after")
		args["created_after"] = *f.CreatedAfter
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	countQuery, countArgs, err := r.DB.BindNamed("SELECT count(*) FROM inventory"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.GetContext(ctx, &count, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count inventory: %w", err)
	}

	query := "SELECT " + inventoryColumns + " FROM inventory" + whereClause + " ORDER BY created_at ASC, id ASC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}
	query, listArgs, err := r.DB.BindNamed(query, args)
	if err != nil {
		return nil, 0, err
	}

	items := []model.Inventory{}
	if err := r.DB.SelectContext(ctx, &items, query, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("list inventory: %w", err)
	}
	if err := r.hydrate(ctx, items); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (r *PGRepository) Update(ctx context.Context, inv *model.Inventory, tagIDs []string) error {
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := `
        UPDATE inventory
        SET name = :name,
            type_id = :type_id,
            language_id = :language_id,
            metadata = :metadata
        WHERE id = :id
    `
		if _, err := tx.NamedExecContext(ctx, query, inv); err != nil {
			return referenceError(err)
		}
		if tagIDs == nil {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM inventory_inventory_tags WHERE inventory_id = $1`, inv.ID); err != nil {
			return fmt.Errorf("clear inventory tags: %w", err)
		}
		for _, tagID := range tagIDs {
			if _, err := tx.ExecContext(ctx, `INSERT INTO inventory_inventory_tags (inventory_id, tag_id) VALUES ($1, $2)`, inv.ID, tagID); err != nil {
				return database.ReferenceError(err, "tag_ids")
			}
		}
		return nil
	})
}

func (r *PGRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM inventory WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type namedRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type linkedTag struct {
	InventoryID string `db:"inventory_id"`
	model.InventoryTag
}

// hydrate attaches type, language and tags to every item with one query
// per relation.
func (r *PGRepository) hydrate(ctx context.Context, items []model.Inventory) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]string, 0, len(items))
	typeIDs := make([]string, 0, len(items))
	languageIDs := make([]string, 0, len(items))
	for _, inv := range items {
		ids = append(ids, inv.ID)
		typeIDs = append(typeIDs, inv.TypeID)
		languageIDs = append(languageIDs, inv.LanguageID)
	}

	types, err := r.namesByID(ctx, "inventory_types", unique(typeIDs))
	if err != nil {
		return fmt.Errorf("load inventory types: %w", err)
	}
	languages, err := r.namesByID(ctx, "inventory_languages", unique(languageIDs))
	if err != nil {
		return fmt.Errorf("load inventory languages: %w", err)
	}

	query, args, err := sqlx.In(`
        SELECT l.inventory_id, t.id, t.name, t.is_active
        FROM inventory_tags t
        JOIN inventory_inventory_tags l ON l.tag_id = t.id
        WHERE l.inventory_id IN (?)
        ORDER BY t.name, t.id
    `, ids)
	if err != nil {
		return err
	}
	var links []linkedTag
	if err := r.DB.SelectContext(ctx, &links, r.DB.Rebind(query), args...); err != nil {
		return fmt.Errorf("load inventory tags: %w", err)
	}
	tags := make(map[string][]model.InventoryTag, len(items))
	for _, l := range links {
		tags[l.InventoryID] = append(tags[l.InventoryID], l.InventoryTag)
	}

	for i := range items {
		inv := &items[i]
		if name, ok := types[inv.TypeID]; ok {
			inv.Type = &model.InventoryType{ID: inv.TypeID, Name: name}
		}
		if name, ok := languages[inv.LanguageID]; ok {
			inv.Language = &model.InventoryLanguage{ID: inv.LanguageID, Name: name}
		}
		inv.Tags = tags[inv.ID]
		if inv.Tags == nil {
			inv.Tags = []model.InventoryTag{}
		}
	}
	return nil
}

func (r *PGRepository) namesByID(ctx context.Context, table string, ids []string) (map[string]string, error) {
	query, args, err := sqlx.In(`SELECT id, name FROM `+table+` WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var rows []namedRow
	if err := r.DB.SelectContext(ctx, &rows, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Name
	}
	return out, nil
}

func referenceError(err error) error {
	if !database.IsForeignKeyViolation(err) {
		return fmt.Errorf("update inventory: %w", err)
	}
	if strings.Contains(database.ConstraintName(err), "language") {
		return database.ReferenceError(err, "language_id")
	}
	return database.ReferenceError(err, "type_id")
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
