package usecase

import (
	"context"
	"encoding/json"
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
)

// CategoryProductLimit máximo de entradas devueltas por get-product-by-category.
const CategoryProductLimit = 15

// ProductUseCase casos de uso para entradas de stock (inward) y sus cajas.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	subRepo      repository.SubCategoryRepository
	observer     ports.StockObserver
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	subRepo repository.SubCategoryRepository,
	observer ports.StockObserver,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, subRepo: subRepo, observer: observer}
}

// Create registra una entrada de stock. Cajas con el mismo número se combinan.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Category == "" || in.SubCategory == "" || len(in.Boxes) == 0 {
		return nil, invalid("category, subCategory y cajas (boxNo, partsQty) son obligatorios")
	}
	category, sub, err := uc.resolvePart(ctx, in.Category, in.SubCategory)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	productID := uuid.New().String()
	boxes, err := buildBoxes(productID, in.Boxes, now)
	if err != nil {
		return nil, err
	}
	product := &entity.Product{
		ID:              productID,
		CategoryID:      category.ID,
		CategoryName:    category.Name,
		SubCategoryID:   sub.ID,
		SubCategoryName: sub.Name,
		SubCategoryCode: sub.Code,
		Boxes:           boxes,
		Description:     strings.TrimSpace(in.Description),
		MoreDetails:     normalizeDetails(in.MoreDetails),
		UserID:          userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.observer.StockChanged(ctx)
	return toProductResponse(product), nil
}

// List lista todas las entradas; search filtra por texto en la descripción.
func (uc *ProductUseCase) List(ctx context.Context, search string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ListByCategory devuelve hasta CategoryProductLimit entradas de la categoría.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, categoryID string) ([]dto.ProductResponse, error) {
	if !validID(categoryID) {
		return nil, invalid("id de categoría inválido")
	}
	list, err := uc.repo.ListByCategory(ctx, categoryID, CategoryProductLimit)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ListByCategoryAndSubCategory listado paginado por categoría y repuesto.
func (uc *ProductUseCase) ListByCategoryAndSubCategory(ctx context.Context, in dto.ProductByCategoryAndSubRequest) (*dto.ProductPage, error) {
	if !validID(in.CategoryID) || !validID(in.SubCategoryID) {
		return nil, invalid("categoryId y subCategoryId son obligatorios")
	}
	in.DefaultPage()
	list, total, err := uc.repo.ListByCategoryAndSubCategory(ctx, in.CategoryID, in.SubCategoryID, in.Limit, in.Offset())
	if err != nil {
		return nil, err
	}
	return toProductPage(list, total, in.PageRequest), nil
}

// Search búsqueda paginada por texto.
func (uc *ProductUseCase) Search(ctx context.Context, in dto.SearchProductRequest) (*dto.ProductPage, error) {
	in.DefaultPage()
	list, total, err := uc.repo.Search(ctx, strings.TrimSpace(in.Search), in.Limit, in.Offset())
	if err != nil {
		return nil, err
	}
	return toProductPage(list, total, in.PageRequest), nil
}

// Details obtiene una entrada por ID.
func (uc *ProductUseCase) Details(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza descripción, detalles, publicación y opcionalmente reemplaza las cajas.
func (uc *ProductUseCase) Update(ctx context.Context, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if len(in.MoreDetails) > 0 {
		product.MoreDetails = normalizeDetails(in.MoreDetails)
	}
	if in.Publish != nil {
		product.Publish = *in.Publish
	}
	replaceBoxes := in.Boxes != nil
	if replaceBoxes {
		if len(in.Boxes) == 0 {
			return nil, invalid("la entrada debe tener al menos una caja")
		}
		boxes, err := buildBoxes(product.ID, in.Boxes, now)
		if err != nil {
			return nil, err
		}
		product.Boxes = boxes
	}
	product.UpdatedAt = now
	if err := uc.repo.Update(ctx, product, replaceBoxes); err != nil {
		return nil, err
	}
	uc.observer.StockChanged(ctx)
	return toProductResponse(product), nil
}

// Delete elimina una entrada y sus cajas.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.observer.StockChanged(ctx)
	return nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, invalid("id de entrada inválido")
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// resolvePart valida que la categoría exista y que el repuesto le pertenezca.
func (uc *ProductUseCase) resolvePart(ctx context.Context, categoryID, subCategoryID string) (*entity.Category, *entity.SubCategory, error) {
	if !validID(categoryID) || !validID(subCategoryID) {
		return nil, nil, invalid("category o subCategory inválidos")
	}
	category, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}
	if category == nil {
		return nil, nil, invalid("la categoría no existe")
	}
	sub, err := uc.subRepo.GetByID(ctx, subCategoryID)
	if err != nil {
		return nil, nil, err
	}
	if sub == nil {
		return nil, nil, invalid("el repuesto no existe")
	}
	if !sub.BelongsTo(category.ID) {
		return nil, nil, invalid("el repuesto no pertenece a la categoría")
	}
	return category, sub, nil
}

// buildBoxes valida las cajas y combina las que repiten número.
func buildBoxes(productID string, in []dto.BoxInput, now time.Time) ([]entity.Box, error) {
	boxes := make([]entity.Box, 0, len(in))
	for i, b := range in {
		boxNo := strings.TrimSpace(b.BoxNo)
		if boxNo == "" || b.PartsQty <= 0 {
			return nil, invalid(fmt.Sprintf("la caja %d debe incluir boxNo y partsQty mayor a cero", i+1))
		}
		boxes = append(boxes, entity.Box{ProductID: productID, BoxNo: boxNo, PartsQty: b.PartsQty, CreatedAt: now})
	}
	boxes = stock.CombineBoxes(boxes)
	for i := range boxes {
		boxes[i].ID = uuid.New().String()
	}
	return boxes, nil
}

func normalizeDetails(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage(`{}`)
	}
	return raw
}

func toProductPage(list []*entity.Product, total int, page dto.PageRequest) *dto.ProductPage {
	return &dto.ProductPage{
		Items:      toProductResponses(list),
		TotalCount: total,
		TotalPage:  dto.TotalPages(total, page.Limit),
		Page:       page.Page,
		Limit:      page.Limit,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	boxes := make([]dto.BoxResponse, 0, len(p.Boxes))
	for _, b := range p.Boxes {
		boxes = append(boxes, dto.BoxResponse{ID: b.ID, BoxNo: b.BoxNo, PartsQty: b.PartsQty, CreatedAt: b.CreatedAt})
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Category:    dto.RefDTO{ID: p.CategoryID, Name: p.CategoryName},
		SubCategory: dto.PartRefDTO{ID: p.SubCategoryID, Name: p.SubCategoryName, Code: p.SubCategoryCode},
		Boxes:       boxes,
		TotalParts:  p.TotalParts(),
		Description: p.Description,
		MoreDetails: p.MoreDetails,
		Publish:     p.Publish,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
