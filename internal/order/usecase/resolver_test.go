package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Matrix(t *testing.T) {
	children := map[string][]string{
		"with-children": {"a", "b"},
		"childless":     {},
	}
	parents := map[string]bool{"with-children": true, "childless": true}

	tests := []struct {
		name            string
		strict          bool
		parent          string
		requireNonEmpty bool
		want            []string
		wantErr         error
	}{
		{"strict existing parent", true, "with-children", false, []string{"a", "b"}, nil},
		{"strict childless parent", true, "childless", false, []string{}, nil},
		{"strict childless parent required", true, "childless", true, nil, model.ErrNotFound},
		{"strict unknown parent", true, "missing", false, nil, model.ErrNotFound},
		{"lenient existing parent", false, "with-children", false, []string{"a", "b"}, nil},
		{"lenient childless parent", false, "childless", false, []string{}, nil},
		{"lenient unknown parent", false, "missing", false, []string{}, nil},
		{"lenient unknown parent required", false, "missing", true, nil, model.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existsCalls := 0
			r := NewResolver[string](tt.strict,
				func(ctx context.Context, id string) (bool, error) {
					existsCalls++
					return parents[id], nil
				},
				func(ctx context.Context, id string) ([]string, error) {
					return children[id], nil
				},
			)

			got, err := r.Resolve(context.Background(), tt.parent, tt.requireNonEmpty)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			if tt.strict {
				assert.Equal(t, 1, existsCalls)
			} else {
				assert.Zero(t, existsCalls)
			}
		})
	}
}

func TestResolver_StrictSkipsChildrenForUnknownParent(t *testing.T) {
	r := NewResolver[string](true,
		func(ctx context.Context, id string) (bool, error) { return false, nil },
		func(ctx context.Context, id string) ([]string, error) {
			t.Fatal("children queried for unknown parent")
			return nil, nil
		},
	)

	_, err := r.Resolve(context.Background(), "missing", false)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestResolver_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection reset")

	strict := NewResolver[string](true,
		func(ctx context.Context, id string) (bool, error) { return false, boom },
		func(ctx context.Context, id string) ([]string, error) { return nil, nil },
	)
	_, err := strict.Resolve(context.Background(), "x", false)
	assert.ErrorIs(t, err, boom)

	lenient := NewResolver[string](false, nil,
		func(ctx context.Context, id string) ([]string, error) { return nil, boom },
	)
	_, err = lenient.Resolve(context.Background(), "x", false)
	assert.ErrorIs(t, err, boom)
}
