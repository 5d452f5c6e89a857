package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/camstock-api/internal/application/dto"
	"github.com/jhoicas/camstock-api/internal/application/usecase"
)

// ProductHandler maneja las entradas de stock (recepción de repuestos por cajas).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar entrada de stock
// @Tags         product
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Categoría, repuesto y cajas"
// @Success      201   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/product/create [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Entrada registrada", out))
}

// List godoc
// @Summary      Listar entradas
// @Tags         product
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductListRequest  false  "search opcional"
// @Success      200   {object}  dto.Envelope{data=[]dto.ProductResponse}
// @Router       /api/product/get [post]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var in dto.ProductListRequest
	if err := parseOptional(c, &in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(c.Context(), in.Search)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Entradas", out))
}

// ListByCategory godoc
// @Summary      Últimas entradas de una categoría
// @Tags         product
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductByCategoryRequest  true  "id de la categoría"
// @Success      200   {object}  dto.Envelope{data=[]dto.ProductResponse}
// @Router       /api/product/get-product-by-category [post]
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	var in dto.ProductByCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ListByCategory(c.Context(), in.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Entradas de la categoría", out))
}

// ListByCategoryAndSubCategory godoc
// @Summary      Entradas paginadas por categoría y repuesto
// @Tags         product
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductByCategoryAndSubRequest  true  "categoryId, subCategoryId, page, limit"
// @Success      200   {object}  dto.PageEnvelope{data=[]dto.ProductResponse}
// @Router       /api/product/get-pruduct-by-category-and-subcategory [post]
func (h *ProductHandler) ListByCategoryAndSubCategory(c *fiber.Ctx) error {
	var in dto.ProductByCategoryAndSubRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	page, err := h.uc.ListByCategoryAndSubCategory(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pageEnvelope("Entradas del repuesto", page))
}

// Details godoc
// @Summary      Detalle de una entrada
// @Tags         product
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductDetailsRequest  true  "productId"
// @Success      200   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/product/get-product-details [post]
func (h *ProductHandler) Details(c *fiber.Ctx) error {
	var in dto.ProductDetailsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Details(c.Context(), in.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Detalle de la entrada", out))
}

// Update godoc
// @Summary      Actualizar entrada
// @Description  Si se envían cajas, reemplazan a las actuales.
// @Tags         product
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProductRequest  true  "_id y campos a modificar"
// @Success      200   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/product/update-product-details [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Entrada actualizada", out))
}

// Delete godoc
// @Summary      Eliminar entrada
// @Tags         product
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IDRequest  true  "_id"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/product/delete-product [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	var in dto.IDRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.Delete(c.Context(), in.ID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Entrada eliminada", nil))
}

// Search godoc
// @Summary      Buscar entradas
// @Tags         product
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SearchProductRequest  true  "search, page, limit"
// @Success      200   {object}  dto.PageEnvelope{data=[]dto.ProductResponse}
// @Router       /api/product/search-product [post]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	var in dto.SearchProductRequest
	if err := parseOptional(c, &in); err != nil {
		return invalidBody(c)
	}
	page, err := h.uc.Search(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pageEnvelope("Resultados de búsqueda", page))
}

func pageEnvelope(message string, p *dto.ProductPage) dto.PageEnvelope {
	return dto.PageEnvelope{
		Envelope:   dto.OK(message, p.Items),
		TotalCount: p.TotalCount,
		TotalPage:  p.TotalPage,
		Page:       p.Page,
		Limit:      p.Limit,
	}
}
