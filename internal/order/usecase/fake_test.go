package usecase

import (
	"context"
	"sort"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/order/dto"
)

type link struct{ orderID, tagID string }

// fakeRepo keeps orders, tags and their links in memory. The link set is
// the only record of the relationship, as in the join table.
type fakeRepo struct {
	orders    map[string]*model.Order
	tags      map[string]model.OrderTag
	links     map[link]bool
	calls     []string
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orders: map[string]*model.Order{},
		tags:   map[string]model.OrderTag{},
		links:  map[link]bool{},
	}
}

func (f *fakeRepo) Create(ctx context.Context, o *model.Order, newTags []model.OrderTag, tagIDs []string) error {
	f.calls = append(f.calls, "Create")
	if f.createErr != nil {
		return f.createErr
	}
	for _, id := range tagIDs {
		if _, ok := f.tags[id]; !ok {
			return model.Invalid("tag_ids", "object does not exist or is still referenced")
		}
	}
	cp := *o
	f.orders[o.ID] = &cp
	for _, t := range newTags {
		f.tags[t.ID] = t
		f.links[link{o.ID, t.ID}] = true
	}
	for _, id := range tagIDs {
		f.links[link{o.ID, id}] = true
	}
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	f.calls = append(f.calls, "FindByID")
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Tags = f.tagsOf(id)
	return &cp, nil
}

func (f *fakeRepo) FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range f.orders {
		if filters.Range.Start != nil && o.StartDate.Before(filters.Range.Start.Time) {
			continue
		}
		if filters.Range.End != nil && !o.EmbargoDate.Before(filters.Range.End.Time) {
			continue
		}
		cp := *o
		cp.Tags = f.tagsOf(o.ID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, o *model.Order, tagIDs []string) error {
	cp := *o
	f.orders[o.ID] = &cp
	if tagIDs == nil {
		return nil
	}
	for l := range f.links {
		if l.orderID == o.ID {
			delete(f.links, l)
		}
	}
	for _, id := range tagIDs {
		f.links[link{o.ID, id}] = true
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := f.orders[id]; !ok {
		return false, nil
	}
	delete(f.orders, id)
	for l := range f.links {
		if l.orderID == id {
			delete(f.links, l)
		}
	}
	return true, nil
}

func (f *fakeRepo) Exists(ctx context.Context, id string) (bool, error) {
	f.calls = append(f.calls, "Exists")
	_, ok := f.orders[id]
	return ok, nil
}

func (f *fakeRepo) Deactivate(ctx context.Context, id string) (bool, error) {
	f.calls = append(f.calls, "Deactivate")
	o, ok := f.orders[id]
	if !ok {
		return false, nil
	}
	o.IsActive = false
	return true, nil
}

func (f *fakeRepo) TagsForOrder(ctx context.Context, orderID string) ([]model.OrderTag, error) {
	f.calls = append(f.calls, "TagsForOrder")
	return f.tagsOf(orderID), nil
}

func (f *fakeRepo) OrdersForTag(ctx context.Context, tagID string) ([]model.Order, error) {
	f.calls = append(f.calls, "OrdersForTag")
	out := []model.Order{}
	for l := range f.links {
		if l.tagID != tagID {
			continue
		}
		if o, ok := f.orders[l.orderID]; ok {
			cp := *o
			cp.Tags = f.tagsOf(o.ID)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) CreateTag(ctx context.Context, tag *model.OrderTag) error {
	f.tags[tag.ID] = *tag
	return nil
}

func (f *fakeRepo) FindAllTags(ctx context.Context) ([]model.OrderTag, error) {
	out := []model.OrderTag{}
	for _, t := range f.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepo) TagExists(ctx context.Context, id string) (bool, error) {
	f.calls = append(f.calls, "TagExists")
	_, ok := f.tags[id]
	return ok, nil
}

func (f *fakeRepo) tagsOf(orderID string) []model.OrderTag {
	out := []model.OrderTag{}
	for l := range f.links {
		if l.orderID == orderID {
			out = append(out, f.tags[l.tagID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
