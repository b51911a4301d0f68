package usecase

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// Resolver lists the children of a parent across a many-to-many link.
type Resolver[T any] interface {
	// Resolve returns the children of parentID. With requireNonEmpty set an
	// empty result is reported as model.ErrNotFound.
	Resolve(ctx context.Context, parentID string, requireNonEmpty bool) ([]T, error)
}

type existsFunc func(ctx context.Context, id string) (bool, error)

type childrenFunc[T any] func(ctx context.Context, parentID string) ([]T, error)

// NewResolver returns the strict resolver, which checks the parent first,
// or the lenient one, which only runs the children query.
func NewResolver[T any](strict bool, exists existsFunc, children childrenFunc[T]) Resolver[T] {
	if strict {
		return &strictResolver[T]{exists: exists, children: children}
	}
	return &lenientResolver[T]{children: children}
}

type strictResolver[T any] struct {
	exists   existsFunc
	children childrenFunc[T]
}

func (r *strictResolver[T]) Resolve(ctx context.Context, parentID string, requireNonEmpty bool) ([]T, error) {
	ok, err := r.exists(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrNotFound
	}
	return resolveChildren(ctx, r.children, parentID, requireNonEmpty)
}

// lenientResolver cannot tell an unknown parent from one without children.
type lenientResolver[T any] struct {
	children childrenFunc[T]
}

func (r *lenientResolver[T]) Resolve(ctx context.Context, parentID string, requireNonEmpty bool) ([]T, error) {
	return resolveChildren(ctx, r.children, parentID, requireNonEmpty)
}

func resolveChildren[T any](ctx context.Context, children childrenFunc[T], parentID string, requireNonEmpty bool) ([]T, error) {
	items, err := children(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		if requireNonEmpty {
			return nil, model.ErrNotFound
		}
		return []T{}, nil
	}
	return items, nil
}
