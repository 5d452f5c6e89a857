package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/camstock-api/internal/application/dto"
	"github.com/jhoicas/camstock-api/internal/application/ports"
	"github.com/jhoicas/camstock-api/internal/domain"
	"github.com/jhoicas/camstock-api/internal/domain/entity"
	"github.com/jhoicas/camstock-api/internal/domain/repository"
	"github.com/jhoicas/camstock-api/internal/domain/stock"
)

// OutProductUseCase registra salidas de repuestos desde una caja de inventario.
type OutProductUseCase struct {
	txRunner TxRunner
	repo     repository.OutProductRepository
	observer ports.StockObserver
}

// NewOutProductUseCase construye el caso de uso.
func NewOutProductUseCase(txRunner TxRunner, repo repository.OutProductRepository, observer ports.StockObserver) *OutProductUseCase {
	return &OutProductUseCase{txRunner: txRunner, repo: repo, observer: observer}
}

// Add bloquea la caja (SELECT FOR UPDATE), verifica que pertenezca a la categoría y repuesto,
// y que la cantidad no supere lo que queda en ella.
func (uc *OutProductUseCase) Add(ctx context.Context, userID string, in dto.AddOutProductRequest) (*dto.OutProductResponse, error) {
	if !validIDs(in.Category, in.SubCategory, in.Box) {
		return nil, invalid("Invalid IDs")
	}
	if in.Quantity <= 0 {
		return nil, invalid("quantity debe ser mayor a cero")
	}
	var out *entity.OutProduct
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		box, product, err := repos.Products.GetBoxForUpdate(ctx, in.Box)
		if err != nil {
			return err
		}
		if box == nil {
			return fmt.Errorf("%w: caja no encontrada", domain.ErrNotFound)
		}
		if product.CategoryID != in.Category || product.SubCategoryID != in.SubCategory {
			return invalid("la caja no pertenece a la categoría y repuesto indicados")
		}
		prior, err := repos.OutProducts.ListByBox(ctx, box.ID)
		if err != nil {
			return err
		}
		if remaining := stock.BoxRemaining(*box, prior); in.Quantity > remaining {
			return fmt.Errorf("%w: la caja %s tiene %d disponibles", domain.ErrInsufficientStock, box.BoxNo, remaining)
		}
		now := time.Now()
		out = &entity.OutProduct{
			ID:              uuid.New().String(),
			CategoryID:      product.CategoryID,
			CategoryName:    product.CategoryName,
			SubCategoryID:   product.SubCategoryID,
			SubCategoryName: product.SubCategoryName,
			BoxID:           box.ID,
			BoxNo:           box.BoxNo,
			Quantity:        in.Quantity,
			UserID:          userID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return repos.OutProducts.Create(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	uc.observer.StockChanged(ctx)
	return toOutProductResponse(out), nil
}

// List lista las salidas con nombres poblados, más recientes primero.
func (uc *OutProductUseCase) List(ctx context.Context) ([]dto.OutProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OutProductResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOutProductResponse(o))
	}
	return items, nil
}

func toOutProductResponse(o *entity.OutProduct) *dto.OutProductResponse {
	return &dto.OutProductResponse{
		ID:          o.ID,
		Category:    dto.RefDTO{ID: o.CategoryID, Name: o.CategoryName},
		SubCategory: dto.RefDTO{ID: o.SubCategoryID, Name: o.SubCategoryName},
		Box:         dto.BoxRefDTO{ID: o.BoxID, BoxNo: o.BoxNo},
		Quantity:    o.Quantity,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
