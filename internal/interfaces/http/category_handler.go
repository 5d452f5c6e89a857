package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/camstock-api/internal/application/dto"
	"github.com/jhoicas/camstock-api/internal/application/usecase"
)

// CategoryHandler maneja las categorías (modelos de cámara).
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         category
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "name, description"
// @Success      201   {object}  dto.Envelope{data=dto.CategoryResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/category/create [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Categoría creada", out))
}

// List godoc
// @Summary      Listar categorías
// @Tags         category
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.CategoryResponse}
// @Router       /api/category/get [post]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Categorías", out))
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         category
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "_id, name?, description?"
// @Success      200   {object}  dto.Envelope{data=dto.CategoryResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/category/update [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Categoría actualizada", out))
}

// Delete godoc
// @Summary      Eliminar categoría
// @Description  Responde 409 si algún repuesto o entrada la referencia.
// @Tags         category
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IDRequest  true  "_id"
// @Success      200   {object}  dto.Envelope
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/category/delete [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	var in dto.IDRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.Delete(c.Context(), in.ID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Categoría eliminada", nil))
}
