package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/camstock-api/internal/application/dto"
	"github.com/jhoicas/camstock-api/internal/application/usecase"
)

// SubCategoryHandler maneja los tipos de repuesto.
type SubCategoryHandler struct {
	uc *usecase.SubCategoryUseCase
}

// NewSubCategoryHandler construye el handler.
func NewSubCategoryHandler(uc *usecase.SubCategoryUseCase) *SubCategoryHandler {
	return &SubCategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear repuesto
// @Tags         subcategory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSubCategoryRequest  true  "Datos del repuesto"
// @Success      201   {object}  dto.Envelope{data=dto.SubCategoryResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/subcategory/create [post]
func (h *SubCategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSubCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Repuesto creado", out))
}

// List godoc
// @Summary      Listar repuestos
// @Tags         subcategory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.SubCategoryResponse}
// @Router       /api/subcategory/get [post]
func (h *SubCategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Repuestos", out))
}

// Update godoc
// @Summary      Actualizar repuesto
// @Tags         subcategory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSubCategoryRequest  true  "_id y campos a modificar"
// @Success      200   {object}  dto.Envelope{data=dto.SubCategoryResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/subcategory/update [put]
func (h *SubCategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSubCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Repuesto actualizado", out))
}

// Delete godoc
// @Summary      Eliminar repuesto
// @Tags         subcategory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IDRequest  true  "_id"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/subcategory/delete [delete]
func (h *SubCategoryHandler) Delete(c *fiber.Ctx) error {
	var in dto.IDRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.Delete(c.Context(), in.ID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Repuesto eliminado", nil))
}
