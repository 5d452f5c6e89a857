// Package analytics contiene los casos de uso del panel de administración:
// conciliación de repuestos por categoría, tarjetas de estadísticas y exportación.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/camstock-api/internal/application/dto"
	"github.com/jhoicas/camstock-api/internal/application/ports"
	"github.com/jhoicas/camstock-api/internal/domain"
	"github.com/jhoicas/camstock-api/internal/domain/entity"
	"github.com/jhoicas/camstock-api/internal/domain/repository"
	"github.com/jhoicas/camstock-api/internal/domain/stock"
	"github.com/jhoicas/camstock-api/pkg/logger"
)

const (
	cachePrefix  = "camstock:"
	statsKey     = cachePrefix + "stats"
	summaryKeyFn = cachePrefix + "summary:%s"
)

var _ ports.StockObserver = (*DashboardUseCase)(nil)

// Repositories puertos de lectura que necesita el panel.
type Repositories struct {
	Dashboard     repository.DashboardRepository
	Categories    repository.CategoryRepository
	SubCategories repository.SubCategoryRepository
	Products      repository.ProductRepository
	OutProducts   repository.OutProductRepository
	Damages       repository.DamageProductRepository
}

// DashboardUseCase genera la conciliación por repuesto y las tarjetas del panel.
//
// Las lecturas se guardan en caché con TTL; cualquier escritura en el libro de stock
// llama a StockChanged, que borra todas las claves del panel.
type DashboardUseCase struct {
	repos   Repositories
	cache   ports.Cache
	ttl     time.Duration
	writers map[string]ports.SummaryWriter
	log     *logger.Logger
	now     func() time.Time
}

// NewDashboardUseCase construye el caso de uso. writers indexa los exportadores por formato (xlsx, pdf).
func NewDashboardUseCase(
	repos Repositories,
	cache ports.Cache,
	ttl time.Duration,
	writers map[string]ports.SummaryWriter,
	log *logger.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{repos: repos, cache: cache, ttl: ttl, writers: writers, log: log, now: time.Now}
}

// PartsSummary conciliación entrada/salida/daño por repuesto de la categoría.
//
// Cuatro lecturas en paralelo (entradas, salidas, daños, repuestos) y luego
// stock.Summarize sobre los datos ya materializados.
func (uc *DashboardUseCase) PartsSummary(ctx context.Context, categoryID string) (*dto.PartsSummaryDTO, error) {
	if categoryID == "" {
		return nil, fmt.Errorf("%w: categoryId es obligatorio", domain.ErrInvalidInput)
	}
	key := fmt.Sprintf(summaryKeyFn, categoryID)
	var cached dto.PartsSummaryDTO
	if uc.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	category, err := uc.repos.Categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	var ledger stock.Ledger
	var parts []*entity.SubCategory
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ledger.Products, err = uc.repos.Products.ListByCategory(gctx, categoryID, 0)
		return wrap("entradas", err)
	})
	g.Go(func() error {
		var err error
		ledger.Outs, err = uc.repos.OutProducts.ListByCategory(gctx, categoryID)
		return wrap("salidas", err)
	})
	g.Go(func() error {
		var err error
		ledger.Damages, err = uc.repos.Damages.ListByCategory(gctx, categoryID)
		return wrap("daños", err)
	})
	g.Go(func() error {
		var err error
		parts, err = uc.repos.SubCategories.ListByCategory(gctx, categoryID)
		return wrap("repuestos", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	ledger.Parts = make(map[string]*entity.SubCategory, len(parts))
	for _, p := range parts {
		ledger.Parts[p.ID] = p
	}

	rows := stock.Summarize(ledger)
	out := &dto.PartsSummaryDTO{
		CategoryID:      category.ID,
		CategoryName:    category.Name,
		PossibleCameras: stock.PossibleCameras(rows),
		Parts:           make([]dto.PartSummaryDTO, 0, len(rows)),
		GeneratedAt:     uc.now(),
	}
	for _, r := range rows {
		out.Parts = append(out.Parts, dto.PartSummaryDTO{
			SubCategoryID:   r.SubCategoryID,
			PartsCode:       r.PartsCode,
			PartsName:       r.PartsName,
			PartsPerCamera:  r.PartsPerCamera,
			InwardQty:       r.InwardQty,
			OutwardQty:      r.OutwardQty,
			DamageQty:       r.DamageQty,
			AvailableQty:    r.AvailableQty,
			PossibleCameras: r.PossibleCameras,
			DamageRate:      r.DamageRate,
			LastUpdated:     r.LastUpdated,
		})
	}
	uc.toCache(ctx, key, out)
	return out, nil
}

// Stats tarjetas del panel. Cinco consultas en paralelo; "hoy" empieza a las 00:00 hora local.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	var cached dto.DashboardStatsDTO
	if uc.fromCache(ctx, statsKey, &cached) {
		return &cached, nil
	}

	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	out := &dto.DashboardStatsDTO{GeneratedAt: now}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.TotalCameras, err = uc.repos.Dashboard.CountReadyUIDs(gctx)
		return wrap("cámaras listas", err)
	})
	g.Go(func() error {
		var err error
		out.TotalBoxes, err = uc.repos.Dashboard.CountBoxes(gctx)
		return wrap("cajas", err)
	})
	g.Go(func() error {
		var err error
		out.TodayInward, err = uc.repos.Dashboard.SumInwardSince(gctx, todayStart)
		return wrap("entradas de hoy", err)
	})
	g.Go(func() error {
		var err error
		out.TodayDelivered, err = uc.repos.Dashboard.CountDeliveredSince(gctx, todayStart)
		return wrap("entregas de hoy", err)
	})
	g.Go(func() error {
		var err error
		out.LiveProjects, err = uc.repos.Dashboard.CountCategories(gctx)
		return wrap("categorías", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	uc.toCache(ctx, statsKey, out)
	return out, nil
}

// Export genera la conciliación en el formato pedido. Devuelve contenido, content-type y nombre de archivo.
func (uc *DashboardUseCase) Export(ctx context.Context, categoryID, format string) ([]byte, string, string, error) {
	if format == "" {
		format = "xlsx"
	}
	w, ok := uc.writers[format]
	if !ok {
		return nil, "", "", fmt.Errorf("%w: formato no soportado: %s", domain.ErrInvalidInput, format)
	}
	summary, err := uc.PartsSummary(ctx, categoryID)
	if err != nil {
		return nil, "", "", err
	}
	var buf bytes.Buffer
	if err := w.Write(&buf, summary); err != nil {
		return nil, "", "", fmt.Errorf("exportar resumen: %w", err)
	}
	filename := fmt.Sprintf("parts-summary-%s-%s.%s", summary.CategoryName, summary.GeneratedAt.Format("20060102"), w.Extension())
	return buf.Bytes(), w.ContentType(), filename, nil
}

// StockChanged invalida todas las lecturas del panel en caché.
func (uc *DashboardUseCase) StockChanged(ctx context.Context) {
	if err := uc.cache.DeletePrefix(ctx, cachePrefix); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché del panel")
	}
}

func (uc *DashboardUseCase) fromCache(ctx context.Context, key string, dst any) bool {
	raw, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("valor de caché corrupto")
		return false
	}
	return true
}

func (uc *DashboardUseCase) toCache(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, key, raw, uc.ttl); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("escritura de caché fallida")
	}
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard: %s: %w", what, err)
	}
	return nil
}
