package usecase_test

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/camstock-api/internal/domain/entity"
	"github.com/jhoicas/camstock-api/internal/domain/stock"
)

// ── Repositorios en memoria ──────────────────────────────────────────────────

type fakeCategoryRepo struct {
	mu     sync.Mutex
	items  map[string]*entity.Category
	inUse  map[string]bool
	delete []string
}

func newFakeCategoryRepo(cats ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{items: map[string]*entity.Category{}, inUse: map[string]bool{}}
	for _, c := range cats {
		r.items[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.items[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return r.Create(ctx, c)
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	r.delete = append(r.delete, id)
	return nil
}

func (r *fakeCategoryRepo) InUse(_ context.Context, id string) (bool, error) {
	return r.inUse[id], nil
}

type fakeSubCategoryRepo struct {
	items map[string]*entity.SubCategory
}

func newFakeSubCategoryRepo(subs ...*entity.SubCategory) *fakeSubCategoryRepo {
	r := &fakeSubCategoryRepo{items: map[string]*entity.SubCategory{}}
	for _, s := range subs {
		r.items[s.ID] = s
	}
	return r
}

func (r *fakeSubCategoryRepo) Create(_ context.Context, s *entity.SubCategory) error {
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeSubCategoryRepo) GetByID(_ context.Context, id string) (*entity.SubCategory, error) {
	if s, ok := r.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeSubCategoryRepo) FindByCodeOrName(_ context.Context, value string) (*entity.SubCategory, error) {
	for _, s := range r.items {
		if strings.EqualFold(s.Code, value) {
			return s, nil
		}
	}
	for _, s := range r.items {
		if strings.EqualFold(s.Name, value) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSubCategoryRepo) Update(ctx context.Context, s *entity.SubCategory) error {
	return r.Create(ctx, s)
}

func (r *fakeSubCategoryRepo) List(_ context.Context) ([]*entity.SubCategory, error) {
	out := make([]*entity.SubCategory, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSubCategoryRepo) ListByCategory(_ context.Context, categoryID string) ([]*entity.SubCategory, error) {
	var out []*entity.SubCategory
	for _, s := range r.items {
		if s.BelongsTo(categoryID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubCategoryRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakeProductRepo struct {
	items       map[string]*entity.Product
	lastReplace bool
	lastLimit   int
	lastOffset  int
	lastSearch  string
	total       int
	// dispatched piezas ya despachadas por ID de caja.
	dispatched map[string]int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{items: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := r.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product, replaceBoxes bool) error {
	r.lastReplace = replaceBoxes
	if prev, ok := r.items[p.ID]; ok && replaceBoxes {
		boxes, err := stock.ReconcileBoxes(prev.Boxes, r.dispatched, p.Boxes)
		if err != nil {
			return err
		}
		for i := range boxes {
			if boxes[i].ID == "" {
				boxes[i].ID = uuid.NewString()
			}
		}
		p.Boxes = boxes
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeProductRepo) all() []*entity.Product {
	out := make([]*entity.Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	return out
}

func (r *fakeProductRepo) List(_ context.Context, search string) ([]*entity.Product, error) {
	r.lastSearch = search
	return r.all(), nil
}

func (r *fakeProductRepo) ListByCategory(_ context.Context, _ string, limit int) ([]*entity.Product, error) {
	r.lastLimit = limit
	return r.all(), nil
}

func (r *fakeProductRepo) ListByCategoryAndSubCategory(_ context.Context, _, _ string, limit, offset int) ([]*entity.Product, int, error) {
	r.lastLimit, r.lastOffset = limit, offset
	return r.all(), r.total, nil
}

func (r *fakeProductRepo) Search(_ context.Context, text string, limit, offset int) ([]*entity.Product, int, error) {
	r.lastSearch, r.lastLimit, r.lastOffset = text, limit, offset
	return r.all(), r.total, nil
}

func (r *fakeProductRepo) LatestForUpdate(_ context.Context, _, _ string) (*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) AddBox(_ context.Context, _ *entity.Box) error { return nil }

func (r *fakeProductRepo) GetBoxForUpdate(_ context.Context, _ string) (*entity.Box, *entity.Product, error) {
	return nil, nil, nil
}

// ── Puertos de salida ────────────────────────────────────────────────────────

type countingObserver struct{ calls int }

func (o *countingObserver) StockChanged(context.Context) { o.calls++ }

type fakeStorage struct {
	key         string
	contentType string
	body        string
}

func (s *fakeStorage) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.key, s.contentType, s.body = key, contentType, string(b)
	return "http://cdn.local/camstock/" + key, nil
}
