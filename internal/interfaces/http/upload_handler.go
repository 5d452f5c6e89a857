package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/camstock-api/internal/application/dto"
	"github.com/jhoicas/camstock-api/internal/application/inventory"
	"github.com/jhoicas/camstock-api/internal/domain/entity"
)

// UploadHandler maneja la importación de entradas desde Excel y su revisión.
type UploadHandler struct {
	uc *inventory.ExcelImportUseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *inventory.ExcelImportUseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// UploadExcel godoc
// @Summary      Importar planilla de entradas
// @Description  Primera hoja con columnas partsName, partsCode, boxNo, qty, category, subCategory. Las filas quedan Pending.
// @Tags         excel-import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        excelFile  formData  file  true  "Planilla .xlsx"
// @Success      200        {object}  dto.Envelope{data=dto.UploadResult}
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/product/upload-excel [post]
func (h *UploadHandler) UploadExcel(c *fiber.Ctx) error {
	fh, err := c.FormFile("excelFile")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("MISSING_FILE", "excelFile es requerido"))
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	out, err := h.uc.Import(c.Context(), GetUserID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Planilla importada", out))
}

// Pending godoc
// @Summary      Filas pendientes de revisión
// @Tags         excel-import
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.ExcelUploadResponse}
// @Router       /api/product/get-upload-details [get]
func (h *UploadHandler) Pending(c *fiber.Ctx) error {
	return h.list(c, entity.UploadStatusPending, "Filas pendientes")
}

// All godoc
// @Summary      Todas las filas importadas
// @Tags         excel-import
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.ExcelUploadResponse}
// @Router       /api/product/get-all-upload-data [get]
func (h *UploadHandler) All(c *fiber.Ctx) error {
	return h.list(c, "", "Filas importadas")
}

// Rejected godoc
// @Summary      Filas rechazadas
// @Tags         excel-import
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.ExcelUploadResponse}
// @Router       /api/product/get-rejected-data [get]
func (h *UploadHandler) Rejected(c *fiber.Ctx) error {
	return h.list(c, entity.UploadStatusRejected, "Filas rechazadas")
}

func (h *UploadHandler) list(c *fiber.Ctx, status, message string) error {
	out, err := h.uc.List(c.Context(), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(message, out))
}

// UpdateStatus godoc
// @Summary      Aprobar o rechazar filas
// @Tags         excel-import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateUploadStatusRequest  true  "ids o _id, status, remark"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/product/update-upload-status [post]
func (h *UploadHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateUploadStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	n, err := h.uc.UpdateStatus(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Estado actualizado", fiber.Map{"updated": n}))
}

// Process godoc
// @Summary      Contabilizar filas aprobadas
// @Description  Crea una entrada por (categoría, repuesto) con una caja por fila, en una sola transacción.
// @Tags         excel-import
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.ProcessUploadResult}
// @Router       /api/product/process-upload-data [post]
func (h *UploadHandler) Process(c *fiber.Ctx) error {
	out, err := h.uc.Process(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Filas aprobadas contabilizadas", out))
}
