package inventory

import (
	"context"
	"fmt"
	"io"
	"strconv"
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

// ExcelImportUseCase importa planillas de entrada a revisión y contabiliza las filas aprobadas.
type ExcelImportUseCase struct {
	txRunner     TxRunner
	parser       SheetParser
	repo         repository.ExcelUploadRepository
	categoryRepo repository.CategoryRepository
	subRepo      repository.SubCategoryRepository
	observer     ports.StockObserver
	log          *logger.Logger
}

// NewExcelImportUseCase construye el caso de uso.
func NewExcelImportUseCase(
	txRunner TxRunner,
	parser SheetParser,
	repo repository.ExcelUploadRepository,
	categoryRepo repository.CategoryRepository,
	subRepo repository.SubCategoryRepository,
	observer ports.StockObserver,
	log *logger.Logger,
) *ExcelImportUseCase {
	return &ExcelImportUseCase{
		txRunner:     txRunner,
		parser:       parser,
		repo:         repo,
		categoryRepo: categoryRepo,
		subRepo:      subRepo,
		observer:     observer,
		log:          log,
	}
}

// Import lee la planilla, resuelve categoría (por nombre) y repuesto (por código o nombre)
// y guarda las filas válidas como Pending. Las inválidas se informan con su número de fila.
func (uc *ExcelImportUseCase) Import(ctx context.Context, userID string, r io.Reader) (*dto.UploadResult, error) {
	rows, err := uc.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if len(rows) == 0 {
		return nil, invalid("la planilla no tiene filas de datos")
	}

	result := &dto.UploadResult{Errors: []dto.UploadRowError{}}
	categories := make(map[string]*entity.Category)
	parts := make(map[string]*entity.SubCategory)
	now := time.Now()
	valid := make([]*entity.ExcelUpload, 0, len(rows))
	for _, row := range rows {
		upload, reason, err := uc.resolveRow(ctx, row, categories, parts)
		if err != nil {
			return nil, err
		}
		if reason != "" {
			result.Errors = append(result.Errors, dto.UploadRowError{Row: row.Row, Reason: reason})
			continue
		}
		upload.ID = uuid.New().String()
		upload.Status = entity.UploadStatusPending
		upload.UserID = userID
		upload.CreatedAt = now
		upload.UpdatedAt = now
		valid = append(valid, upload)
	}
	if len(valid) > 0 {
		if err := uc.repo.CreateBatch(ctx, valid); err != nil {
			return nil, err
		}
	}
	result.Inserted = len(valid)
	result.Failed = len(result.Errors)
	uc.log.Info().Int("inserted", result.Inserted).Int("failed", result.Failed).Msg("planilla importada")
	return result, nil
}

// resolveRow valida una fila; reason no vacío indica fila rechazada.
func (uc *ExcelImportUseCase) resolveRow(
	ctx context.Context,
	row UploadRow,
	categories map[string]*entity.Category,
	parts map[string]*entity.SubCategory,
) (*entity.ExcelUpload, string, error) {
	boxNo := strings.TrimSpace(row.BoxNo)
	catName := strings.TrimSpace(row.Category)
	subKey := strings.TrimSpace(row.SubCategory)
	if boxNo == "" || catName == "" || subKey == "" {
		return nil, "boxNo, category y subCategory son obligatorios", nil
	}
	qty, err := strconv.Atoi(strings.TrimSpace(row.Qty))
	if err != nil || qty <= 0 {
		return nil, "qty debe ser un entero mayor a cero", nil
	}

	category, ok := categories[strings.ToLower(catName)]
	if !ok {
		if category, err = uc.categoryRepo.GetByName(ctx, catName); err != nil {
			return nil, "", err
		}
		categories[strings.ToLower(catName)] = category
	}
	if category == nil {
		return nil, fmt.Sprintf("categoría desconocida: %s", catName), nil
	}
	sub, ok := parts[strings.ToLower(subKey)]
	if !ok {
		if sub, err = uc.subRepo.FindByCodeOrName(ctx, subKey); err != nil {
			return nil, "", err
		}
		parts[strings.ToLower(subKey)] = sub
	}
	if sub == nil {
		return nil, fmt.Sprintf("repuesto desconocido: %s", subKey), nil
	}
	if !sub.BelongsTo(category.ID) {
		return nil, fmt.Sprintf("el repuesto %s no pertenece a %s", sub.Code, category.Name), nil
	}

	name, code := strings.TrimSpace(row.PartsName), strings.TrimSpace(row.PartsCode)
	if name == "" {
		name = sub.Name
	}
	if code == "" {
		code = sub.Code
	}
	return &entity.ExcelUpload{
		PartsName:       name,
		PartsCode:       code,
		BoxNo:           boxNo,
		Qty:             qty,
		CategoryID:      category.ID,
		CategoryName:    category.Name,
		SubCategoryID:   sub.ID,
		SubCategoryName: sub.Name,
	}, "", nil
}

// List filas importadas; status vacío lista todas.
func (uc *ExcelImportUseCase) List(ctx context.Context, status string) ([]dto.ExcelUploadResponse, error) {
	list, err := uc.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExcelUploadResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.ExcelUploadResponse{
			ID:          u.ID,
			PartsName:   u.PartsName,
			PartsCode:   u.PartsCode,
			BoxNo:       u.BoxNo,
			Qty:         u.Qty,
			Category:    dto.RefDTO{ID: u.CategoryID, Name: u.CategoryName},
			SubCategory: dto.RefDTO{ID: u.SubCategoryID, Name: u.SubCategoryName},
			Status:      u.Status,
			Remark:      u.Remark,
			Processed:   u.Processed,
			CreatedAt:   u.CreatedAt,
			UpdatedAt:   u.UpdatedAt,
		})
	}
	return items, nil
}

// UpdateStatus aprueba o rechaza filas. Devuelve cuántas se actualizaron.
func (uc *ExcelImportUseCase) UpdateStatus(ctx context.Context, in dto.UpdateUploadStatusRequest) (int, error) {
	ids := append([]string{}, in.IDs...)
	if in.ID != "" {
		ids = append(ids, in.ID)
	}
	if len(ids) == 0 || !validIDs(ids...) {
		return 0, invalid("ids inválidos")
	}
	if !entity.ValidUploadReview(in.Status) {
		return 0, invalid("status debe ser Approved o Rejected")
	}
	n, err := uc.repo.UpdateStatus(ctx, ids, in.Status, strings.TrimSpace(in.Remark))
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, domain.ErrNotFound
	}
	return n, nil
}

type partKey struct{ categoryID, subCategoryID string }

// Process contabiliza las filas aprobadas pendientes: una entrada por (categoría, repuesto)
// con una caja por fila, y marca las filas como procesadas. Todo en una transacción.
func (uc *ExcelImportUseCase) Process(ctx context.Context, userID string) (*dto.ProcessUploadResult, error) {
	result := &dto.ProcessUploadResult{}
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		rows, err := repos.Uploads.ListApprovedForUpdate(ctx)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		now := time.Now()
		var order []partKey
		products := make(map[partKey]*entity.Product)
		ids := make([]string, 0, len(rows))
		for _, row := range rows {
			key := partKey{row.CategoryID, row.SubCategoryID}
			p, ok := products[key]
			if !ok {
				p = &entity.Product{
					ID:            uuid.New().String(),
					CategoryID:    row.CategoryID,
					SubCategoryID: row.SubCategoryID,
					Description:   "Importado desde Excel",
					UserID:        userID,
					CreatedAt:     now,
					UpdatedAt:     now,
				}
				products[key] = p
				order = append(order, key)
			}
			p.Boxes = append(p.Boxes, entity.Box{
				ID:        uuid.New().String(),
				ProductID: p.ID,
				BoxNo:     row.BoxNo,
				PartsQty:  row.Qty,
				CreatedAt: now,
			})
			ids = append(ids, row.ID)
		}
		for _, key := range order {
			p := products[key]
			if err := repos.Products.Create(ctx, p); err != nil {
				return err
			}
			result.Products++
			result.Boxes += len(p.Boxes)
		}
		return repos.Uploads.MarkProcessed(ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	if result.Products > 0 {
		uc.observer.StockChanged(ctx)
	}
	uc.log.Info().Int("products", result.Products).Int("boxes", result.Boxes).Msg("filas aprobadas contabilizadas")
	return result, nil
}
