package inventory_test

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/camstock-api/internal/application/inventory"
	"github.com/jhoicas/camstock-api/internal/domain/entity"
	"github.com/jhoicas/camstock-api/internal/domain/repository"
	"github.com/jhoicas/camstock-api/pkg/logger"
)

// store base en memoria compartida por todos los repos falsos.
// fakeTx toma una copia antes de ejecutar fn y la restaura si fn falla.
type store struct {
	categories map[string]*entity.Category
	subs       map[string]*entity.SubCategory
	products   []*entity.Product
	outs       []*entity.OutProduct
	damages    []*entity.DamageProduct
	ready      []*entity.ReadyCamera
	deliveries []*entity.DeliveryHistory
	uploads    []*entity.ExcelUpload
	locks      int
}

func newStore() *store {
	return &store{categories: map[string]*entity.Category{}, subs: map[string]*entity.SubCategory{}}
}

func (s *store) snapshot() store {
	cp := *s
	cp.products = make([]*entity.Product, len(s.products))
	for i, p := range s.products {
		pc := *p
		pc.Boxes = append([]entity.Box(nil), p.Boxes...)
		cp.products[i] = &pc
	}
	cp.outs = append([]*entity.OutProduct(nil), s.outs...)
	cp.damages = append([]*entity.DamageProduct(nil), s.damages...)
	cp.ready = make([]*entity.ReadyCamera, len(s.ready))
	for i, rc := range s.ready {
		rcc := *rc
		rcc.Boxes = make([]entity.ReadyBox, len(rc.Boxes))
		for j, b := range rc.Boxes {
			b.PartUIDs = append([]string(nil), b.PartUIDs...)
			rcc.Boxes[j] = b
		}
		cp.ready[i] = &rcc
	}
	cp.deliveries = append([]*entity.DeliveryHistory(nil), s.deliveries...)
	cp.uploads = make([]*entity.ExcelUpload, len(s.uploads))
	for i, u := range s.uploads {
		uc := *u
		cp.uploads[i] = &uc
	}
	return cp
}

type fakeTx struct {
	s    *store
	runs int
}

func (f *fakeTx) Run(_ context.Context, fn func(inventory.Repos) error) error {
	f.runs++
	backup := f.s.snapshot()
	err := fn(inventory.Repos{
		Products:     &fakeProducts{f.s},
		OutProducts:  &fakeOuts{f.s},
		Damages:      &fakeDamages{f.s},
		ReadyCameras: &fakeReady{f.s},
		Deliveries:   &fakeDeliveries{f.s},
		Uploads:      &fakeUploads{f.s},
	})
	if err != nil {
		*f.s = backup
	}
	return err
}

// ── Productos ────────────────────────────────────────────────────────────────

type fakeProducts struct{ s *store }

func (r *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	r.s.products = append(r.s.products, p)
	return nil
}

func (r *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProducts) Update(context.Context, *entity.Product, bool) error { return nil }
func (r *fakeProducts) Delete(context.Context, string) error { return nil }
func (r *fakeProducts) List(context.Context, string) ([]*entity.Product, error) {
	return r.s.products, nil
}

func (r *fakeProducts) ListByCategory(_ context.Context, categoryID string, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProducts) ListByCategoryAndSubCategory(context.Context, string, string, int, int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

func (r *fakeProducts) Search(context.Context, string, int, int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

func (r *fakeProducts) LatestForUpdate(_ context.Context, categoryID, subCategoryID string) (*entity.Product, error) {
	var latest *entity.Product
	for _, p := range r.s.products {
		if p.CategoryID == categoryID && p.SubCategoryID == subCategoryID {
			if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
				latest = p
			}
		}
	}
	return latest, nil
}

func (r *fakeProducts) AddBox(_ context.Context, box *entity.Box) error {
	for _, p := range r.s.products {
		if p.ID == box.ProductID {
			p.Boxes = append(p.Boxes, *box)
		}
	}
	return nil
}

func (r *fakeProducts) GetBoxForUpdate(_ context.Context, boxID string) (*entity.Box, *entity.Product, error) {
	for _, p := range r.s.products {
		for i := range p.Boxes {
			if p.Boxes[i].ID == boxID {
				b := p.Boxes[i]
				return &b, p, nil
			}
		}
	}
	return nil, nil, nil
}

// ── Salidas ──────────────────────────────────────────────────────────────────

type fakeOuts struct{ s *store }

func (r *fakeOuts) Create(_ context.Context, o *entity.OutProduct) error {
	r.s.outs = append(r.s.outs, o)
	return nil
}

func (r *fakeOuts) List(context.Context) ([]*entity.OutProduct, error) { return r.s.outs, nil }

func (r *fakeOuts) ListByCategory(_ context.Context, categoryID string) ([]*entity.OutProduct, error) {
	var out []*entity.OutProduct
	for _, o := range r.s.outs {
		if o.CategoryID == categoryID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOuts) ListByBox(_ context.Context, boxID string) ([]*entity.OutProduct, error) {
	var out []*entity.OutProduct
	for _, o := range r.s.outs {
		if o.BoxID == boxID {
			out = append(out, o)
		}
	}
	return out, nil
}

// ── Daños ────────────────────────────────────────────────────────────────────

type fakeDamages struct{ s *store }

func (r *fakeDamages) Create(_ context.Context, d *entity.DamageProduct) error {
	r.s.damages = append(r.s.damages, d)
	return nil
}

func (r *fakeDamages) List(context.Context) ([]*entity.DamageProduct, error) {
	return r.s.damages, nil
}

func (r *fakeDamages) ListByCategory(_ context.Context, categoryID string) ([]*entity.DamageProduct, error) {
	var out []*entity.DamageProduct
	for _, d := range r.s.damages {
		if d.CategoryID == categoryID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDamages) Balance(_ context.Context, categoryID, subCategoryID, boxNo string) (int, error) {
	total := 0
	for _, d := range r.s.damages {
		if d.CategoryID == categoryID && d.SubCategoryID == subCategoryID && d.BoxNo == boxNo {
			total += d.SignedQuantity()
		}
	}
	return total, nil
}

func (r *fakeDamages) Lock(context.Context, string, string) error {
	r.s.locks++
	return nil
}

// ── Cámaras listas ───────────────────────────────────────────────────────────

type fakeReady struct{ s *store }

func (r *fakeReady) Create(_ context.Context, rc *entity.ReadyCamera) error {
	r.s.ready = append(r.s.ready, rc)
	return nil
}

func (r *fakeReady) LockInStockUIDs(_ context.Context, categoryID string, uids []string) ([]string, error) {
	r.s.locks++
	want := make(map[string]bool, len(uids))
	for _, uid := range uids {
		want[uid] = true
	}
	var found []string
	for _, rc := range r.s.ready {
		if rc.CategoryID != categoryID {
			continue
		}
		for _, b := range rc.Boxes {
			for _, uid := range b.PartUIDs {
				if want[uid] {
					found = append(found, uid)
					delete(want, uid)
				}
			}
		}
	}
	return found, nil
}

func (r *fakeReady) List(context.Context) ([]*entity.ReadyCamera, error) { return r.s.ready, nil }

func (r *fakeReady) ListBoxesByCategory(_ context.Context, categoryID string) ([]*entity.ReadyBox, error) {
	var out []*entity.ReadyBox
	for _, rc := range r.s.ready {
		if rc.CategoryID != categoryID {
			continue
		}
		for i := range rc.Boxes {
			out = append(out, &rc.Boxes[i])
		}
	}
	return out, nil
}

func (r *fakeReady) LockBoxes(_ context.Context, categoryName, boxNo string) ([]*entity.ReadyBox, error) {
	var out []*entity.ReadyBox
	for _, rc := range r.s.ready {
		if rc.CategoryName != categoryName {
			continue
		}
		for i := range rc.Boxes {
			if rc.Boxes[i].BoxNo == boxNo {
				b := rc.Boxes[i]
				b.PartUIDs = append([]string(nil), b.PartUIDs...)
				out = append(out, &b)
			}
		}
	}
	return out, nil
}

func (r *fakeReady) UpdateBoxUIDs(_ context.Context, boxID string, uids []string) error {
	for _, rc := range r.s.ready {
		for i := range rc.Boxes {
			if rc.Boxes[i].ID == boxID {
				rc.Boxes[i].PartUIDs = uids
				rc.Boxes[i].TotalParts = len(uids)
			}
		}
	}
	return nil
}

func (r *fakeReady) DeleteBox(_ context.Context, boxID string) error {
	for _, rc := range r.s.ready {
		kept := rc.Boxes[:0]
		for _, b := range rc.Boxes {
			if b.ID != boxID {
				kept = append(kept, b)
			}
		}
		rc.Boxes = kept
	}
	return nil
}

// ── Entregas ─────────────────────────────────────────────────────────────────

type fakeDeliveries struct{ s *store }

func (r *fakeDeliveries) Create(_ context.Context, d *entity.DeliveryHistory) error {
	r.s.deliveries = append(r.s.deliveries, d)
	return nil
}

func (r *fakeDeliveries) List(_ context.Context, f repository.DeliveryFilter) ([]*entity.DeliveryHistory, error) {
	var out []*entity.DeliveryHistory
	for _, d := range r.s.deliveries {
		if f.Category != "" && d.Category != f.Category {
			continue
		}
		if f.Since != nil && d.CreatedAt.Before(*f.Since) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// ── Planillas ────────────────────────────────────────────────────────────────

type fakeUploads struct{ s *store }

func (r *fakeUploads) CreateBatch(_ context.Context, rows []*entity.ExcelUpload) error {
	r.s.uploads = append(r.s.uploads, rows...)
	return nil
}

func (r *fakeUploads) ListByStatus(_ context.Context, status string) ([]*entity.ExcelUpload, error) {
	var out []*entity.ExcelUpload
	for _, u := range r.s.uploads {
		if status == "" || u.Status == status {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUploads) UpdateStatus(_ context.Context, ids []string, status, remark string) (int, error) {
	n := 0
	for _, u := range r.s.uploads {
		for _, id := range ids {
			if u.ID == id {
				u.Status, u.Remark = status, remark
				n++
			}
		}
	}
	return n, nil
}

func (r *fakeUploads) ListApprovedForUpdate(context.Context) ([]*entity.ExcelUpload, error) {
	var out []*entity.ExcelUpload
	for _, u := range r.s.uploads {
		if u.Status == entity.UploadStatusApproved && !u.Processed {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeUploads) MarkProcessed(_ context.Context, ids []string) error {
	for _, u := range r.s.uploads {
		for _, id := range ids {
			if u.ID == id {
				u.Processed = true
			}
		}
	}
	return nil
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

type fakeCategories struct{ s *store }

func (r *fakeCategories) Create(context.Context, *entity.Category) error { return nil }
func (r *fakeCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	return r.s.categories[id], nil
}

func (r *fakeCategories) GetByName(_ context.Context, name string) (*entity.Category, error) {
	for _, c := range r.s.categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCategories) Update(context.Context, *entity.Category) error { return nil }
func (r *fakeCategories) List(context.Context) ([]*entity.Category, error) { return nil, nil }
func (r *fakeCategories) Delete(context.Context, string) error { return nil }
func (r *fakeCategories) InUse(context.Context, string) (bool, error) { return false, nil }

type fakeSubs struct{ s *store }

func (r *fakeSubs) Create(context.Context, *entity.SubCategory) error { return nil }
func (r *fakeSubs) GetByID(_ context.Context, id string) (*entity.SubCategory, error) {
	return r.s.subs[id], nil
}

func (r *fakeSubs) FindByCodeOrName(_ context.Context, value string) (*entity.SubCategory, error) {
	for _, s := range r.s.subs {
		if strings.EqualFold(s.Code, value) {
			return s, nil
		}
	}
	for _, s := range r.s.subs {
		if strings.EqualFold(s.Name, value) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSubs) Update(context.Context, *entity.SubCategory) error { return nil }
func (r *fakeSubs) List(context.Context) ([]*entity.SubCategory, error) { return nil, nil }
func (r *fakeSubs) Delete(context.Context, string) error { return nil }
func (r *fakeSubs) ListByCategory(context.Context, string) ([]*entity.SubCategory, error) {
	return nil, nil
}

// ── Otros puertos ────────────────────────────────────────────────────────────

type countingObserver struct{ calls int }

func (o *countingObserver) StockChanged(context.Context) { o.calls++ }

type stubParser struct {
	rows []inventory.UploadRow
	err  error
}

func (p stubParser) Parse(io.Reader) ([]inventory.UploadRow, error) { return p.rows, p.err }

// ── Fixture ──────────────────────────────────────────────────────────────────

const (
	catID   = "7d1d2a55-8a7e-4f4e-9c51-1f1f9b0c0001"
	subID   = "7d1d2a55-8a7e-4f4e-9c51-1f1f9b0c0002"
	otherID = "7d1d2a55-8a7e-4f4e-9c51-1f1f9b0c0003"
	boxID   = "7d1d2a55-8a7e-4f4e-9c51-1f1f9b0c0004"
)

type fixture struct {
	s        *store
	tx       *fakeTx
	observer *countingObserver
	log      *logger.Logger
}

// newFixture catálogo con una categoría (CAM-X1), un repuesto (LNS) y una entrada con la caja B-1 de 20 piezas.
func newFixture() *fixture {
	s := newStore()
	s.categories[catID] = &entity.Category{ID: catID, Name: "CAM-X1"}
	s.subs[subID] = &entity.SubCategory{
		ID: subID, Name: "Lente", Code: "LNS", PartsPerCamera: 1,
		Categories: []entity.CategoryRef{{ID: catID, Name: "CAM-X1"}},
	}
	s.products = []*entity.Product{{
		ID: "p-1", CategoryID: catID, CategoryName: "CAM-X1", SubCategoryID: subID, SubCategoryName: "Lente",
		Boxes:     []entity.Box{{ID: boxID, ProductID: "p-1", BoxNo: "B-1", PartsQty: 20}},
		CreatedAt: time.Now().Add(-time.Hour),
	}}
	return &fixture{s: s, tx: &fakeTx{s: s}, observer: &countingObserver{}, log: logger.Nop()}
}
