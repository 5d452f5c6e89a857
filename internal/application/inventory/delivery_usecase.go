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
	"github.com/jhoicas/camstock-api/pkg/logger"
)

// dateLayout formato de la fecha del filtro de historial.
const dateLayout = "2006-01-02"

// DeliveryUseCase entrega cámaras listas a un IWON y guarda el historial.
type DeliveryUseCase struct {
	txRunner TxRunner
	repo     repository.DeliveryRepository
	observer ports.StockObserver
	log      *logger.Logger
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(txRunner TxRunner, repo repository.DeliveryRepository, observer ports.StockObserver, log *logger.Logger) *DeliveryUseCase {
	return &DeliveryUseCase{txRunner: txRunner, repo: repo, observer: observer, log: log}
}

// Deliver retira los UIDs seleccionados de las cajas de cámaras listas y guarda el historial,
// todo en una transacción. Un UID que no esté en stock cancela la entrega completa.
func (uc *DeliveryUseCase) Deliver(ctx context.Context, userID string, in dto.DeliverRequest) (*dto.DeliveryResponse, error) {
	iwon, category := strings.TrimSpace(in.IwonName), strings.TrimSpace(in.Category)
	if iwon == "" || category == "" || len(in.Boxes) == 0 {
		return nil, invalid("IWON Name, Category, and at least one box are required.")
	}
	now := time.Now()
	history := &entity.DeliveryHistory{
		ID:        uuid.New().String(),
		IwonName:  iwon,
		Category:  category,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	seen := make(map[string]bool)
	for _, b := range in.Boxes {
		boxNo := strings.TrimSpace(b.BoxNo)
		uids := cleanUIDs(b.SelectedUIDs)
		if boxNo == "" || len(uids) == 0 {
			return nil, invalid("cada caja debe tener boxNo y al menos un UID seleccionado")
		}
		for _, uid := range uids {
			if seen[uid] {
				return nil, invalid(fmt.Sprintf("UID repetido: %s", uid))
			}
			seen[uid] = true
		}
		history.Boxes = append(history.Boxes, entity.DeliveryBox{BoxNo: boxNo, DeliveredUIDs: uids})
	}

	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		for _, b := range history.Boxes {
			if err := removeUIDs(ctx, repos.ReadyCameras, category, b); err != nil {
				return err
			}
		}
		return repos.Deliveries.Create(ctx, history)
	})
	if err != nil {
		return nil, err
	}
	uc.observer.StockChanged(ctx)
	uc.log.Info().
		Str("delivery_id", history.ID).
		Str("iwon", iwon).
		Str("category", category).
		Int("cameras", history.TotalDelivered()).
		Msg("entrega registrada")
	return toDeliveryResponse(history), nil
}

// removeUIDs bloquea las cajas de la categoría con ese número, quita los UIDs de
// todas las cajas que los tengan, actualiza totalParts y elimina las que quedan vacías.
func removeUIDs(ctx context.Context, repo repository.ReadyCameraRepository, category string, b entity.DeliveryBox) error {
	boxes, err := repo.LockBoxes(ctx, category, b.BoxNo)
	if err != nil {
		return err
	}
	owners := make(map[string][]*entity.ReadyBox)
	for _, box := range boxes {
		for _, uid := range box.PartUIDs {
			owners[uid] = append(owners[uid], box)
		}
	}
	touched := make(map[*entity.ReadyBox]bool)
	for _, uid := range b.DeliveredUIDs {
		if len(owners[uid]) == 0 {
			return fmt.Errorf("%w: el UID %s no está en stock en la caja %s", domain.ErrConflict, uid, b.BoxNo)
		}
		for _, box := range owners[uid] {
			box.PartUIDs = without(box.PartUIDs, uid)
			touched[box] = true
		}
	}
	for _, box := range boxes {
		if !touched[box] {
			continue
		}
		if len(box.PartUIDs) == 0 {
			err = repo.DeleteBox(ctx, box.ID)
		} else {
			err = repo.UpdateBoxUIDs(ctx, box.ID, box.PartUIDs)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func without(list []string, value string) []string {
	out := list[:0:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

// History historial filtrado por nombre de categoría y fecha mínima (YYYY-MM-DD).
func (uc *DeliveryUseCase) History(ctx context.Context, q dto.DeliveryHistoryQuery) ([]dto.DeliveryResponse, error) {
	filter := repository.DeliveryFilter{Category: strings.TrimSpace(q.Category)}
	if q.Date != "" {
		since, err := time.ParseInLocation(dateLayout, q.Date, time.Local)
		if err != nil {
			return nil, invalid("date debe tener formato YYYY-MM-DD")
		}
		filter.Since = &since
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDeliveryResponse(d))
	}
	return items, nil
}

func toDeliveryResponse(d *entity.DeliveryHistory) *dto.DeliveryResponse {
	boxes := make([]dto.DeliveryBoxResponse, 0, len(d.Boxes))
	for _, b := range d.Boxes {
		boxes = append(boxes, dto.DeliveryBoxResponse{BoxNo: b.BoxNo, DeliveredUIDs: b.DeliveredUIDs})
	}
	return &dto.DeliveryResponse{
		ID:             d.ID,
		IwonName:       d.IwonName,
		Category:       d.Category,
		Boxes:          boxes,
		TotalDelivered: d.TotalDelivered(),
		CreatedAt:      d.CreatedAt,
	}
}
