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
)

// ReadyCameraUseCase registra cámaras armadas (por UID) a la espera de entrega.
type ReadyCameraUseCase struct {
	txRunner     TxRunner
	repo         repository.ReadyCameraRepository
	categoryRepo repository.CategoryRepository
	observer     ports.StockObserver
}

// NewReadyCameraUseCase construye el caso de uso.
func NewReadyCameraUseCase(
	txRunner TxRunner,
	repo repository.ReadyCameraRepository,
	categoryRepo repository.CategoryRepository,
	observer ports.StockObserver,
) *ReadyCameraUseCase {
	return &ReadyCameraUseCase{txRunner: txRunner, repo: repo, categoryRepo: categoryRepo, observer: observer}
}

// Create valida cajas y UIDs y guarda el lote con sus cajas. Un UID repetido en la
// solicitud es 400; uno que ya está en stock en la categoría es 409.
func (uc *ReadyCameraUseCase) Create(ctx context.Context, userID string, in dto.CreateReadyCameraRequest) (*dto.ReadyCameraResponse, error) {
	if !validID(in.Category) || len(in.Boxes) == 0 {
		return nil, invalid("Category and at least one box are required.")
	}
	category, err := uc.categoryRepo.GetByID(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, invalid("la categoría no existe")
	}

	now := time.Now()
	rc := &entity.ReadyCamera{
		ID:           uuid.New().String(),
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Description:  strings.TrimSpace(in.Description),
		UserID:       userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	seen := make(map[string]bool)
	var all []string
	for _, b := range in.Boxes {
		boxNo := strings.TrimSpace(b.BoxNo)
		uids := cleanUIDs(b.PartUIDs)
		if boxNo == "" || len(uids) == 0 {
			return nil, invalid("Each box must have a boxNo and at least one partUID.")
		}
		for _, uid := range uids {
			if seen[uid] {
				return nil, invalid(fmt.Sprintf("UID repetido: %s", uid))
			}
			seen[uid] = true
			all = append(all, uid)
		}
		rc.Boxes = append(rc.Boxes, entity.ReadyBox{
			ID:            uuid.New().String(),
			ReadyCameraID: rc.ID,
			BoxNo:         boxNo,
			PartUIDs:      uids,
			TotalParts:    len(uids),
		})
	}

	err = uc.txRunner.Run(ctx, func(repos Repos) error {
		dup, err := repos.ReadyCameras.LockInStockUIDs(ctx, rc.CategoryID, all)
		if err != nil {
			return err
		}
		if len(dup) > 0 {
			return fmt.Errorf("%w: UIDs ya en stock: %s", domain.ErrConflict, strings.Join(dup, ", "))
		}
		return repos.ReadyCameras.Create(ctx, rc)
	})
	if err != nil {
		return nil, err
	}
	uc.observer.StockChanged(ctx)
	return &dto.ReadyCameraResponse{
		ID:          rc.ID,
		Category:    dto.RefDTO{ID: rc.CategoryID, Name: rc.CategoryName},
		Boxes:       toReadyBoxResponses(rc.Boxes),
		Description: rc.Description,
		CreatedAt:   rc.CreatedAt,
	}, nil
}

// History una fila por lote con totales de cámaras y cajas.
func (uc *ReadyCameraUseCase) History(ctx context.Context) ([]dto.ReadyCameraHistoryItem, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReadyCameraHistoryItem, 0, len(list))
	for _, rc := range list {
		items = append(items, dto.ReadyCameraHistoryItem{
			ID:         rc.ID,
			CreatedAt:  rc.CreatedAt,
			Category:   rc.CategoryName,
			Boxes:      toReadyBoxResponses(rc.Boxes),
			TotalQty:   rc.TotalQty(),
			TotalBoxes: len(rc.Boxes),
		})
	}
	return items, nil
}

// Boxes cajas de la categoría que todavía tienen cámaras.
func (uc *ReadyCameraUseCase) Boxes(ctx context.Context, categoryID string) ([]dto.ReadyBoxResponse, error) {
	if !validID(categoryID) {
		return nil, invalid("Category ID is required.")
	}
	boxes, err := uc.repo.ListBoxesByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReadyBoxResponse, 0, len(boxes))
	for _, b := range boxes {
		if len(b.PartUIDs) == 0 {
			continue
		}
		items = append(items, toReadyBoxResponse(*b))
	}
	return items, nil
}

// cleanUIDs recorta espacios y descarta UIDs vacíos.
func cleanUIDs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, uid := range in {
		if uid = strings.TrimSpace(uid); uid != "" {
			out = append(out, uid)
		}
	}
	return out
}

func toReadyBoxResponses(boxes []entity.ReadyBox) []dto.ReadyBoxResponse {
	items := make([]dto.ReadyBoxResponse, 0, len(boxes))
	for _, b := range boxes {
		items = append(items, toReadyBoxResponse(b))
	}
	return items
}

func toReadyBoxResponse(b entity.ReadyBox) dto.ReadyBoxResponse {
	return dto.ReadyBoxResponse{ID: b.ID, BoxNo: b.BoxNo, PartUIDs: b.PartUIDs, TotalParts: len(b.PartUIDs)}
}
