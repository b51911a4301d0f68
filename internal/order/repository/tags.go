package repository

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

func (r *PGRepository) CreateTag(ctx context.Context, tag *model.OrderTag) error {
	_, err := r.DB.NamedExecContext(ctx, `INSERT INTO order_tags (id, name) VALUES (:id, :name)`, tag)
	return err
}

func (r *PGRepository) FindAllTags(ctx context.Context) ([]model.OrderTag, error) {
	tags := []model.OrderTag{}
	if err := r.DB.SelectContext(ctx, &tags, `SELECT id, name FROM order_tags ORDER BY name, id`); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *PGRepository) TagExists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.DB.GetContext(ctx, &ok, `SELECT EXISTS (SELECT 1 FROM order_tags WHERE id = $1)`, id)
	return ok, err
}
