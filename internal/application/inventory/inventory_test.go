package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/camstock-api/internal/application/dto"
	"github.com/jhoicas/camstock-api/internal/application/inventory"
	"github.com/jhoicas/camstock-api/internal/domain"
	"github.com/jhoicas/camstock-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestOutProductAdd_DescuentaDeLaCaja(t *testing.T) {
	f := newFixture()
	uc := inventory.NewOutProductUseCase(f.tx, &fakeOuts{f.s}, f.observer)
	ctx := context.Background()
	in := dto.AddOutProductRequest{Category: catID, SubCategory: subID, Box: boxID, Quantity: 15}

	out, err := uc.Add(ctx, "u-1", in)
	require.NoError(t, err)
	assert.Equal(t, "B-1", out.Box.BoxNo)
	assert.Equal(t, "Lente", out.SubCategory.Name)
	assert.Equal(t, 1, f.observer.calls)

	in.Quantity = 6
	_, err = uc.Add(ctx, "u-1", in)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "quedan 5 en la caja")
	assert.Len(t, f.s.outs, 1)

	in.Quantity = 5
	_, err = uc.Add(ctx, "u-1", in)
	require.NoError(t, err)
}

func TestOutProductAdd_Validaciones(t *testing.T) {
	f := newFixture()
	uc := inventory.NewOutProductUseCase(f.tx, &fakeOuts{f.s}, f.observer)
	ctx := context.Background()

	_, err := uc.Add(ctx, "u", dto.AddOutProductRequest{Category: "x", SubCategory: subID, Box: boxID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Add(ctx, "u", dto.AddOutProductRequest{Category: catID, SubCategory: subID, Box: boxID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Add(ctx, "u", dto.AddOutProductRequest{Category: otherID, SubCategory: subID, Box: boxID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la caja es de otra categoría")

	_, err = uc.Add(ctx, "u", dto.AddOutProductRequest{Category: catID, SubCategory: subID, Box: otherID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.observer.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Daños
// ──────────────────────────────────────────────────────────────────────────────

func TestDamageAdd_AgregaCajaYAsiento(t *testing.T) {
	f := newFixture()
	uc := inventory.NewDamageUseCase(f.tx, &fakeDamages{f.s}, &fakeSubs{f.s}, f.observer, f.log)

	res, err := uc.AddOrOut(context.Background(), "u", dto.DamageRequest{
		Category: catID, SubCategory: subID, Action: entity.DamageActionAdd,
		Boxes: []dto.BoxInput{{BoxNo: "D-1", PartsQty: 4}, {BoxNo: "", PartsQty: 2}, {BoxNo: "D-2", PartsQty: -1}},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.DamageResult{Processed: 1, Skipped: 2}, *res)
	assert.Len(t, f.s.products[0].Boxes, 2, "la caja dañada se agrega a la última entrada")
	require.Len(t, f.s.damages, 1)
	assert.Equal(t, entity.DamageActionAdd, f.s.damages[0].Action)
	assert.Equal(t, 1, f.s.locks)
	assert.Equal(t, 1, f.observer.calls)
}

func TestDamageOut_NoSuperaElSaldoYRevierte(t *testing.T) {
	f := newFixture()
	uc := inventory.NewDamageUseCase(f.tx, &fakeDamages{f.s}, &fakeSubs{f.s}, f.observer, f.log)
	ctx := context.Background()
	_, err := uc.AddOrOut(ctx, "u", dto.DamageRequest{
		Category: catID, SubCategory: subID, Action: entity.DamageActionAdd,
		Boxes: []dto.BoxInput{{BoxNo: "D-1", PartsQty: 5}},
	})
	require.NoError(t, err)

	_, err = uc.AddOrOut(ctx, "u", dto.DamageRequest{
		Category: catID, SubCategory: subID, Action: entity.DamageActionOut,
		Boxes: []dto.BoxInput{{BoxNo: "D-1", PartsQty: 3}, {BoxNo: "D-1", PartsQty: 3}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, f.s.damages, 1, "la salida parcial se revierte")

	res, err := uc.AddOrOut(ctx, "u", dto.DamageRequest{
		Category: catID, SubCategory: subID, Action: entity.DamageActionOut,
		Boxes: []dto.BoxInput{{BoxNo: "D-1", PartsQty: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)

	balances, err := uc.Boxes(ctx, catID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"D-1": 0}, balances)
}

func TestDamage_ValidacionesYSinEntradas(t *testing.T) {
	f := newFixture()
	f.s.products = nil
	uc := inventory.NewDamageUseCase(f.tx, &fakeDamages{f.s}, &fakeSubs{f.s}, f.observer, f.log)
	ctx := context.Background()

	_, err := uc.AddOrOut(ctx, "u", dto.DamageRequest{Category: "bad", SubCategory: subID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddOrOut(ctx, "u", dto.DamageRequest{Category: catID, SubCategory: subID, Action: "Lost", Boxes: []dto.BoxInput{{BoxNo: "B", PartsQty: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddOrOut(ctx, "u", dto.DamageRequest{Category: catID, SubCategory: subID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddOrOut(ctx, "u", dto.DamageRequest{Category: catID, SubCategory: subID, Boxes: []dto.BoxInput{{BoxNo: "B", PartsQty: 1}}})
	assert.ErrorIs(t, err, domain.ErrNotFound, "Add sin entradas de stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cámaras listas y entregas
// ──────────────────────────────────────────────────────────────────────────────

func seedReady(t *testing.T, f *fixture) {
	t.Helper()
	uc := inventory.NewReadyCameraUseCase(f.tx, &fakeReady{f.s}, &fakeCategories{f.s}, f.observer)
	_, err := uc.Create(context.Background(), "u", dto.CreateReadyCameraRequest{
		Category: catID,
		Boxes: []dto.ReadyBoxInput{
			{BoxNo: "R-1", PartUIDs: []string{"U1", "U2", " U3 "}},
			{BoxNo: "R-2", PartUIDs: []string{"U4"}},
		},
	})
	require.NoError(t, err)
}

func TestReadyCameraCreate_TotalesEHistorial(t *testing.T) {
	f := newFixture()
	seedReady(t, f)
	uc := inventory.NewReadyCameraUseCase(f.tx, &fakeReady{f.s}, &fakeCategories{f.s}, f.observer)

	history, err := uc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "CAM-X1", history[0].Category)
	assert.Equal(t, 4, history[0].TotalQty)
	assert.Equal(t, 2, history[0].TotalBoxes)
	assert.Equal(t, []string{"U1", "U2", "U3"}, history[0].Boxes[0].PartUIDs)
	assert.Equal(t, 3, history[0].Boxes[0].TotalParts)
}

func TestReadyCameraCreate_RechazaUIDRepetidoYCajaVacia(t *testing.T) {
	f := newFixture()
	uc := inventory.NewReadyCameraUseCase(f.tx, &fakeReady{f.s}, &fakeCategories{f.s}, f.observer)
	ctx := context.Background()

	_, err := uc.Create(ctx, "u", dto.CreateReadyCameraRequest{Category: catID, Boxes: []dto.ReadyBoxInput{
		{BoxNo: "R-1", PartUIDs: []string{"U1"}}, {BoxNo: "R-2", PartUIDs: []string{"U1"}},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "u", dto.CreateReadyCameraRequest{Category: catID, Boxes: []dto.ReadyBoxInput{{BoxNo: "R-1", PartUIDs: []string{" "}}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.s.ready)
}

func TestDeliver_QuitaUIDsYEliminaCajasVacias(t *testing.T) {
	f := newFixture()
	seedReady(t, f)
	uc := inventory.NewDeliveryUseCase(f.tx, &fakeDeliveries{f.s}, f.observer, f.log)

	out, err := uc.Deliver(context.Background(), "u", dto.DeliverRequest{
		IwonName: "IWON-7", Category: "CAM-X1",
		Boxes: []dto.DeliveryBoxInput{{BoxNo: "R-1", SelectedUIDs: []string{"U2"}}, {BoxNo: "R-2", SelectedUIDs: []string{"U4"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalDelivered)

	boxes := f.s.ready[0].Boxes
	require.Len(t, boxes, 1, "R-2 quedó vacía y se elimina")
	assert.Equal(t, []string{"U1", "U3"}, boxes[0].PartUIDs)
	assert.Equal(t, 2, boxes[0].TotalParts)
	require.Len(t, f.s.deliveries, 1)
}

func TestDeliver_UIDFueraDeStockNoCambiaNada(t *testing.T) {
	f := newFixture()
	seedReady(t, f)
	uc := inventory.NewDeliveryUseCase(f.tx, &fakeDeliveries{f.s}, f.observer, f.log)
	calls := f.observer.calls

	_, err := uc.Deliver(context.Background(), "u", dto.DeliverRequest{
		IwonName: "IWON-7", Category: "CAM-X1",
		Boxes: []dto.DeliveryBoxInput{{BoxNo: "R-1", SelectedUIDs: []string{"U1"}}, {BoxNo: "R-2", SelectedUIDs: []string{"U9"}}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, []string{"U1", "U2", "U3"}, f.s.ready[0].Boxes[0].PartUIDs)
	assert.Empty(t, f.s.deliveries)
	assert.Equal(t, calls, f.observer.calls)
}

func TestReadyCameraCreate_UIDEnStockEsConflicto(t *testing.T) {
	f := newFixture()
	seedReady(t, f)
	uc := inventory.NewReadyCameraUseCase(f.tx, &fakeReady{f.s}, &fakeCategories{f.s}, f.observer)
	calls := f.observer.calls

	_, err := uc.Create(context.Background(), "u", dto.CreateReadyCameraRequest{Category: catID, Boxes: []dto.ReadyBoxInput{
		{BoxNo: "R-1", PartUIDs: []string{"U9", "U1"}},
	}})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "U1")
	assert.Len(t, f.s.ready, 1)
	assert.Equal(t, calls, f.observer.calls)
	assert.Positive(t, f.s.locks, "la búsqueda corre bajo el bloqueo de la categoría")
}

func TestDeliver_UIDNoSeEntregaDosVeces(t *testing.T) {
	f := newFixture()
	seedReady(t, f)
	ready := inventory.NewReadyCameraUseCase(f.tx, &fakeReady{f.s}, &fakeCategories{f.s}, f.observer)
	uc := inventory.NewDeliveryUseCase(f.tx, &fakeDeliveries{f.s}, f.observer, f.log)
	ctx := context.Background()
	req := dto.DeliverRequest{
		IwonName: "IWON-7", Category: "CAM-X1",
		Boxes: []dto.DeliveryBoxInput{{BoxNo: "R-2", SelectedUIDs: []string{"U4"}}},
	}

	_, err := ready.Create(ctx, "u", dto.CreateReadyCameraRequest{Category: catID, Boxes: []dto.ReadyBoxInput{
		{BoxNo: "R-2", PartUIDs: []string{"U4"}},
	}})
	require.ErrorIs(t, err, domain.ErrConflict, "U4 sigue en stock")

	_, err = uc.Deliver(ctx, "u", req)
	require.NoError(t, err)
	_, err = uc.Deliver(ctx, "u", req)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, f.s.deliveries, 1)

	boxes, err := ready.Boxes(ctx, catID)
	require.NoError(t, err)
	for _, b := range boxes {
		assert.NotContains(t, b.PartUIDs, "U4")
	}
}

func TestDeliver_QuitaUIDDuplicadoDeTodasLasCajas(t *testing.T) {
	f := newFixture()
	// Lotes previos a la validación pueden repetir un UID en cajas con el mismo número.
	f.s.ready = []*entity.ReadyCamera{
		{ID: "rc-1", CategoryID: catID, CategoryName: "CAM-X1", Boxes: []entity.ReadyBox{{ID: "b-1", BoxNo: "R-1", PartUIDs: []string{"U1", "U2"}, TotalParts: 2}}},
		{ID: "rc-2", CategoryID: catID, CategoryName: "CAM-X1", Boxes: []entity.ReadyBox{{ID: "b-2", BoxNo: "R-1", PartUIDs: []string{"U1"}, TotalParts: 1}}},
	}
	uc := inventory.NewDeliveryUseCase(f.tx, &fakeDeliveries{f.s}, f.observer, f.log)
	req := dto.DeliverRequest{
		IwonName: "IWON-7", Category: "CAM-X1",
		Boxes: []dto.DeliveryBoxInput{{BoxNo: "R-1", SelectedUIDs: []string{"U1"}}},
	}

	_, err := uc.Deliver(context.Background(), "u", req)
	require.NoError(t, err)
	assert.Equal(t, []string{"U2"}, f.s.ready[0].Boxes[0].PartUIDs)
	assert.Empty(t, f.s.ready[1].Boxes, "la otra copia también sale del stock")

	_, err = uc.Deliver(context.Background(), "u", req)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDeliveryHistory_FiltraPorCategoriaYFecha(t *testing.T) {
	f := newFixture()
	old := time.Date(2026, 1, 10, 12, 0, 0, 0, time.Local)
	f.s.deliveries = []*entity.DeliveryHistory{
		{ID: "d1", Category: "CAM-X1", CreatedAt: old},
		{ID: "d2", Category: "CAM-X1", CreatedAt: old.AddDate(0, 1, 0)},
		{ID: "d3", Category: "CAM-Z9", CreatedAt: old.AddDate(0, 1, 0)},
	}
	uc := inventory.NewDeliveryUseCase(f.tx, &fakeDeliveries{f.s}, f.observer, f.log)

	list, err := uc.History(context.Background(), dto.DeliveryHistoryQuery{Category: "CAM-X1", Date: "2026-02-01"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "d2", list[0].ID)

	_, err = uc.History(context.Background(), dto.DeliveryHistoryQuery{Date: "01/02/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación de Excel
// ──────────────────────────────────────────────────────────────────────────────

func TestExcelImport_ResuelveReferenciasEInformaErrores(t *testing.T) {
	f := newFixture()
	parser := stubParser{rows: []inventory.UploadRow{
		{Row: 2, BoxNo: "X-1", Qty: "10", Category: "cam-x1", SubCategory: "lns"},
		{Row: 3, BoxNo: "X-2", Qty: "4", Category: "CAM-X1", SubCategory: "Lente", PartsName: "Lente 35mm"},
		{Row: 4, BoxNo: "X-3", Qty: "0", Category: "CAM-X1", SubCategory: "LNS"},
		{Row: 5, BoxNo: "X-4", Qty: "3", Category: "CAM-Q", SubCategory: "LNS"},
		{Row: 6, BoxNo: "X-5", Qty: "3", Category: "CAM-X1", SubCategory: "NOPE"},
	}}
	uc := inventory.NewExcelImportUseCase(f.tx, parser, &fakeUploads{f.s}, &fakeCategories{f.s}, &fakeSubs{f.s}, f.observer, f.log)

	res, err := uc.Import(context.Background(), "admin", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, 3, res.Failed)
	assert.Equal(t, []int{4, 5, 6}, []int{res.Errors[0].Row, res.Errors[1].Row, res.Errors[2].Row})

	require.Len(t, f.s.uploads, 2)
	assert.Equal(t, "Lente", f.s.uploads[0].PartsName, "sin nombre se toma el del repuesto")
	assert.Equal(t, "LNS", f.s.uploads[0].PartsCode)
	assert.Equal(t, "Lente 35mm", f.s.uploads[1].PartsName)
	assert.Equal(t, entity.UploadStatusPending, f.s.uploads[1].Status)
}

func TestExcelImport_PlanillaIlegible(t *testing.T) {
	f := newFixture()
	uc := inventory.NewExcelImportUseCase(f.tx, stubParser{err: errors.New("zip: not a valid zip file")}, &fakeUploads{f.s}, &fakeCategories{f.s}, &fakeSubs{f.s}, f.observer, f.log)
	_, err := uc.Import(context.Background(), "admin", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExcelProcess_AgrupaPorRepuestoYMarcaProcesadas(t *testing.T) {
	f := newFixture()
	now := time.Now()
	f.s.uploads = []*entity.ExcelUpload{
		{ID: "11111111-1111-1111-1111-111111111111", BoxNo: "X-1", Qty: 10, CategoryID: catID, SubCategoryID: subID, Status: entity.UploadStatusPending, CreatedAt: now},
		{ID: "22222222-2222-2222-2222-222222222222", BoxNo: "X-2", Qty: 5, CategoryID: catID, SubCategoryID: subID, Status: entity.UploadStatusPending, CreatedAt: now.Add(time.Second)},
		{ID: "33333333-3333-3333-3333-333333333333", BoxNo: "X-3", Qty: 7, CategoryID: catID, SubCategoryID: otherID, Status: entity.UploadStatusPending, CreatedAt: now.Add(2 * time.Second)},
	}
	uc := inventory.NewExcelImportUseCase(f.tx, stubParser{}, &fakeUploads{f.s}, &fakeCategories{f.s}, &fakeSubs{f.s}, f.observer, f.log)
	ctx := context.Background()

	n, err := uc.UpdateStatus(ctx, dto.UpdateUploadStatusRequest{
		IDs: []string{f.s.uploads[0].ID, f.s.uploads[1].ID}, ID: f.s.uploads[2].ID, Status: entity.UploadStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	res, err := uc.Process(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, dto.ProcessUploadResult{Products: 2, Boxes: 3}, *res)
	assert.Len(t, f.s.products, 3)
	assert.Len(t, f.s.products[1].Boxes, 2)

	res, err = uc.Process(ctx, "admin")
	require.NoError(t, err)
	assert.Zero(t, res.Products, "las filas ya procesadas no se vuelven a contabilizar")
	assert.Equal(t, 1, f.observer.calls)
}

func TestExcelUpdateStatus_Validaciones(t *testing.T) {
	f := newFixture()
	uc := inventory.NewExcelImportUseCase(f.tx, stubParser{}, &fakeUploads{f.s}, &fakeCategories{f.s}, &fakeSubs{f.s}, f.observer, f.log)
	ctx := context.Background()

	_, err := uc.UpdateStatus(ctx, dto.UpdateUploadStatusRequest{Status: entity.UploadStatusApproved})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateStatus(ctx, dto.UpdateUploadStatusRequest{ID: catID, Status: entity.UploadStatusPending})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateStatus(ctx, dto.UpdateUploadStatusRequest{ID: catID, Status: entity.UploadStatusRejected})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
