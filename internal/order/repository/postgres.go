package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/order/dto"
	"github.com/jmoiron/sqlx"
)

const orderColumns = "id, inventory_id, start_date, embargo_date, is_active, created_at, updated_at"

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order, newTags []model.OrderTag, tagIDs []string) error {
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := `
        INSERT INTO orders (id, inventory_id, start_date, embargo_date, is_active, created_at, updated_at)
        VALUES (:id, :inventory_id, :start_date, :embargo_date, :is_active, :created_at, :updated_at)
    `
		if _, err := tx.NamedExecContext(ctx, query, o); err != nil {
			if database.IsForeignKeyViolation(err) {
				return database.ReferenceError(err, "inventory")
			}
			return fmt.Errorf("insert order: %w", err)
		}

		for i := range newTags {
			if _, err := tx.NamedExecContext(ctx, `INSERT INTO order_tags (id, name) VALUES (:id, :name)`, &newTags[i]); err != nil {
				return fmt.Errorf("insert order tag: %w", err)
			}
			if err := linkTag(ctx, tx, o.ID, newTags[i].ID); err != nil {
				return err
			}
		}
		for _, tagID := range tagIDs {
			if err := linkTag(ctx, tx, o.ID, tagID); err != nil {
				return err
			}
		}
		return nil
	})
}

func linkTag(ctx context.Context, tx *sqlx.Tx, orderID, tagID string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO orders_order_tags (order_id, tag_id) VALUES ($1, $2)`, orderID, tagID)
	if err == nil {
		return nil
	}
	if database.IsForeignKeyViolation(err) {
		return database.ReferenceError(err, "tag_ids")
	}
	return fmt.Errorf("link order tag: %w", err)
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	orders := []model.Order{o}
	if err := r.attachTags(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.Range.Start != nil {
		conditions = append(conditions, "start_date >= :start_date")
		args["start_date"] = *f.Range.Start
	}
	if f.Range.End != nil {
		conditions = append(conditions, "embargo_date < :embargo_date")
		args["embargo_date"] = *f.Range.End
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query, bound, err := r.DB.BindNamed("SELECT "+orderColumns+" FROM orders"+whereClause+" ORDER BY created_at ASC, id ASC", args)
	if err != nil {
		return nil, err
	}

	orders := []model.Order{}
	if err := r.DB.SelectContext(ctx, &orders, query, bound...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if err := r.attachTags(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PGRepository) Update(ctx context.Context, o *model.Order, tagIDs []string) error {
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := `
        UPDATE orders
        SET start_date = :start_date,
            embargo_date = :embargo_date,
            updated_at = :updated_at
        WHERE id = :id
    `
		if _, err := tx.NamedExecContext(ctx, query, o); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if tagIDs == nil {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM orders_order_tags WHERE order_id = $1`, o.ID); err != nil {
			return fmt.Errorf("clear order tags: %w", err)
		}
		for _, tagID := range tagIDs {
			if err := linkTag(ctx, tx, o.ID, tagID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PGRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *PGRepository) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.DB.GetContext(ctx, &ok, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id)
	return ok, err
}

// Deactivate is a set-based update. Postgres reports matched rows, so an
// order that is already inactive still counts as found.
func (r *PGRepository) Deactivate(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `UPDATE orders SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deactivate order: %w", err)
	}
	return affected(res)
}

func (r *PGRepository) TagsForOrder(ctx context.Context, orderID string) ([]model.OrderTag, error) {
	tags := []model.OrderTag{}
	query := `
        SELECT t.id, t.name
        FROM order_tags t
        JOIN orders_order_tags l ON l.tag_id = t.id
        WHERE l.order_id = $1
        ORDER BY t.name, t.id
    `
	if err := r.DB.SelectContext(ctx, &tags, query, orderID); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *PGRepository) OrdersForTag(ctx context.Context, tagID string) ([]model.Order, error) {
	orders := []model.Order{}
	query := `
        SELECT o.id, o.inventory_id, o.start_date, o.embargo_date, o.is_active, o.created_at, o.updated_at
        FROM orders o
        JOIN orders_order_tags l ON l.order_id = o.id
        WHERE l.tag_id = $1
        ORDER BY o.created_at, o.id
    `
	if err := r.DB.SelectContext(ctx, &orders, query, tagID); err != nil {
		return nil, err
	}
	if err := r.attachTags(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type linkedTag struct {
	OrderID string `db:"order_id"`
	model.OrderTag
}

// attachTags loads the tags of every order with a single query.
func (r *PGRepository) attachTags(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	query, args, err := sqlx.In(`
        SELECT l.order_id, t.id, t.name
        FROM order_tags t
        JOIN orders_order_tags l ON l.tag_id = t.id
        WHERE l.order_id IN (?)
        ORDER BY t.name, t.id
    `, ids)
	if err != nil {
		return err
	}

	var links []linkedTag
	if err := r.DB.SelectContext(ctx, &links, r.DB.Rebind(query), args...); err != nil {
		return fmt.Errorf("load order tags: %w", err)
	}

	byOrder := make(map[string][]model.OrderTag, len(orders))
	for _, l := range links {
		byOrder[l.OrderID] = append(byOrder[l.OrderID], l.OrderTag)
	}
	for i := range orders {
		orders[i].Tags = byOrder[orders[i].ID]
		if orders[i].Tags == nil {
			orders[i].Tags = []model.OrderTag{}
		}
	}
	return nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
