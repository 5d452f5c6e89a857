package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/camstock-api/internal/application/dto"
	"github.com/jhoicas/camstock-api/internal/application/ports"
	"github.com/jhoicas/camstock-api/internal/domain"
	"github.com/jhoicas/camstock-api/internal/domain/entity"
	"github.com/jhoicas/camstock-api/internal/domain/repository"
	"github.com/jhoicas/camstock-api/internal/domain/stock"
	"github.com/jhoicas/camstock-api/pkg/logger"
)

// DamageUseCase mantiene el libro de repuestos dañados.
type DamageUseCase struct {
	txRunner TxRunner
	repo     repository.DamageProductRepository
	subRepo  repository.SubCategoryRepository
	observer ports.StockObserver
	log      *logger.Logger
}

// NewDamageUseCase construye el caso de uso.
func NewDamageUseCase(
	txRunner TxRunner,
	repo repository.DamageProductRepository,
	subRepo repository.SubCategoryRepository,
	observer ports.StockObserver,
	log *logger.Logger,
) *DamageUseCase {
	return &DamageUseCase{txRunner: txRunner, repo: repo, subRepo: subRepo, observer: observer, log: log}
}

// AddOrOut registra cajas dañadas en una sola transacción.
//
//   - Add: agrega la caja a la entrada más reciente del repuesto y asienta el daño.
//   - Out: descuenta del saldo dañado de ese número de caja; no puede quedar negativo.
//
// Cajas sin boxNo o con cantidad no positiva se omiten y se informan en Skipped.
func (uc *DamageUseCase) AddOrOut(ctx context.Context, userID string, in dto.DamageRequest) (*dto.DamageResult, error) {
	if !validIDs(in.Category, in.SubCategory) {
		return nil, invalid("Invalid Category or SubCategory IDs")
	}
	action := in.Action
	if action == "" {
		action = entity.DamageActionAdd
	}
	if !entity.ValidDamageAction(action) {
		return nil, invalid("action debe ser Add u Out")
	}
	if len(in.Boxes) == 0 {
		return nil, invalid("No valid boxes provided.")
	}
	sub, err := uc.subRepo.GetByID(ctx, in.SubCategory)
	if err != nil {
		return nil, err
	}
	if sub == nil || !sub.BelongsTo(in.Category) {
		return nil, fmt.Errorf("%w: repuesto no encontrado en la categoría", domain.ErrNotFound)
	}

	result := &dto.DamageResult{}
	err = uc.txRunner.Run(ctx, func(repos Repos) error {
		if err := repos.Damages.Lock(ctx, in.Category, in.SubCategory); err != nil {
			return err
		}
		var product *entity.Product
		if action == entity.DamageActionAdd {
			product, err = repos.Products.LatestForUpdate(ctx, in.Category, in.SubCategory)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: no hay entradas de stock para el repuesto", domain.ErrNotFound)
			}
		}
		now := time.Now()
		for _, b := range in.Boxes {
			boxNo := strings.TrimSpace(b.BoxNo)
			if boxNo == "" || b.PartsQty <= 0 {
				result.Skipped++
				continue
			}
			if action == entity.DamageActionAdd {
				box := &entity.Box{ID: uuid.New().String(), ProductID: product.ID, BoxNo: boxNo, PartsQty: b.PartsQty, CreatedAt: now}
				if err := repos.Products.AddBox(ctx, box); err != nil {
					return err
				}
			} else {
				balance, err := repos.Damages.Balance(ctx, in.Category, in.SubCategory, boxNo)
				if err != nil {
					return err
				}
				if b.PartsQty > balance {
					return fmt.Errorf("%w: la caja %s tiene %d repuestos dañados", domain.ErrConflict, boxNo, balance)
				}
			}
			entry := &entity.DamageProduct{
				ID:            uuid.New().String(),
				CategoryID:    in.Category,
				SubCategoryID: in.SubCategory,
				BoxNo:         boxNo,
				Quantity:      b.PartsQty,
				Action:        action,
				UserID:        userID,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := repos.Damages.Create(ctx, entry); err != nil {
				return err
			}
			result.Processed++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Processed > 0 {
		uc.observer.StockChanged(ctx)
	}
	uc.log.Info().
		Str("action", action).
		Str("sub_category_id", in.SubCategory).
		Int("processed", result.Processed).
		Int("skipped", result.Skipped).
		Msg("daños registrados")
	return result, nil
}

// List lista los asientos de daño, más recientes primero.
func (uc *DamageUseCase) List(ctx context.Context) ([]dto.DamageProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DamageProductResponse, 0, len(list))
	for _, d := range list {
		items = append(items, dto.DamageProductResponse{
			ID:          d.ID,
			Category:    dto.RefDTO{ID: d.CategoryID, Name: d.CategoryName},
			SubCategory: dto.RefDTO{ID: d.SubCategoryID, Name: d.SubCategoryName},
			BoxNo:       d.BoxNo,
			Quantity:    d.Quantity,
			Action:      d.Action,
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
		})
	}
	return items, nil
}

// Boxes saldo dañado por número de caja en la categoría.
func (uc *DamageUseCase) Boxes(ctx context.Context, categoryID string) (map[string]int, error) {
	if !validID(categoryID) {
		return nil, invalid("categoryId inválido")
	}
	list, err := uc.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return stock.DamageBalances(list), nil
}
