package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/camstock-api/internal/application/dto"
	"github.com/jhoicas/camstock-api/internal/domain"
	"github.com/jhoicas/camstock-api/internal/domain/entity"
	"github.com/jhoicas/camstock-api/internal/domain/repository"
)

// SubCategoryUseCase casos de uso CRUD para tipos de repuesto.
type SubCategoryUseCase struct {
	repo         repository.SubCategoryRepository
	categoryRepo repository.CategoryRepository
}

// NewSubCategoryUseCase construye el caso de uso.
func NewSubCategoryUseCase(repo repository.SubCategoryRepository, categoryRepo repository.CategoryRepository) *SubCategoryUseCase {
	return &SubCategoryUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un repuesto asociado a una o más categorías existentes.
func (uc *SubCategoryUseCase) Create(ctx context.Context, in dto.CreateSubCategoryRequest) (*dto.SubCategoryResponse, error) {
	name, code, image := strings.TrimSpace(in.Name), strings.TrimSpace(in.Code), strings.TrimSpace(in.Image)
	if name == "" || code == "" || image == "" || len(in.Category) == 0 {
		return nil, invalid("name, code, image y al menos una categoría son obligatorios")
	}
	perCamera := in.PartsPerCamera
	if perCamera == 0 {
		perCamera = 1
	}
	if perCamera < 1 {
		return nil, invalid("partsPerCamera debe ser mayor o igual a 1")
	}
	refs, err := uc.resolveCategories(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sub := &entity.SubCategory{
		ID:             uuid.New().String(),
		Name:           name,
		Code:           code,
		Image:          image,
		PartsPerCamera: perCamera,
		Categories:     refs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return toSubCategoryResponse(sub), nil
}

// List lista los repuestos, más recientes primero.
func (uc *SubCategoryUseCase) List(ctx context.Context) ([]dto.SubCategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SubCategoryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSubCategoryResponse(s))
	}
	return items, nil
}

// Update aplica los campos presentes.
func (uc *SubCategoryUseCase) Update(ctx context.Context, in dto.UpdateSubCategoryRequest) (*dto.SubCategoryResponse, error) {
	sub, err := uc.get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if sub.Name = strings.TrimSpace(*in.Name); sub.Name == "" {
			return nil, invalid("name no puede quedar vacío")
		}
	}
	if in.Code != nil {
		if sub.Code = strings.TrimSpace(*in.Code); sub.Code == "" {
			return nil, invalid("code no puede quedar vacío")
		}
	}
	if in.Image != nil {
		sub.Image = strings.TrimSpace(*in.Image)
	}
	if in.PartsPerCamera != nil {
		if *in.PartsPerCamera < 1 {
			return nil, invalid("partsPerCamera debe ser mayor o igual a 1")
		}
		sub.PartsPerCamera = *in.PartsPerCamera
	}
	if in.Category != nil {
		if len(*in.Category) == 0 {
			return nil, invalid("al menos una categoría es obligatoria")
		}
		refs, err := uc.resolveCategories(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		sub.Categories = refs
	}
	sub.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return toSubCategoryResponse(sub), nil
}

// Delete elimina un repuesto.
func (uc *SubCategoryUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *SubCategoryUseCase) get(ctx context.Context, id string) (*entity.SubCategory, error) {
	if !validID(id) {
		return nil, invalid("_id inválido")
	}
	sub, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	return sub, nil
}

// resolveCategories valida que cada categoría exista y devuelve las referencias sin duplicados.
func (uc *SubCategoryUseCase) resolveCategories(ctx context.Context, ids []string) ([]entity.CategoryRef, error) {
	seen := make(map[string]bool, len(ids))
	refs := make([]entity.CategoryRef, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if !validID(id) {
			return nil, invalid("categoría inválida: " + id)
		}
		c, err := uc.categoryRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, invalid("la categoría no existe: " + id)
		}
		refs = append(refs, entity.CategoryRef{ID: c.ID, Name: c.Name})
	}
	return refs, nil
}

func toSubCategoryResponse(s *entity.SubCategory) *dto.SubCategoryResponse {
	cats := make([]dto.RefDTO, 0, len(s.Categories))
	for _, c := range s.Categories {
		cats = append(cats, dto.RefDTO{ID: c.ID, Name: c.Name})
	}
	return &dto.SubCategoryResponse{
		ID:             s.ID,
		Name:           s.Name,
		Code:           s.Code,
		Image:          s.Image,
		PartsPerCamera: s.PartsPerCamera,
		Category:       cats,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
