package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/camstock-api/internal/application/analytics"
	"github.com/jhoicas/camstock-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del panel de administración.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// PartsSummary godoc
// @Summary      Conciliación de repuestos por categoría
// @Description  Entradas, salidas, daños, disponible y cámaras posibles por repuesto.
// @Tags         adminpanel
// @Security     Bearer
// @Produce      json
// @Param        categoryId  query  string  true  "ID de la categoría"
// @Success      200         {object}  dto.Envelope{data=dto.PartsSummaryDTO}
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /api/adminpanel/parts-summary [get]
func (h *DashboardHandler) PartsSummary(c *fiber.Ctx) error {
	out, err := h.uc.PartsSummary(c.Context(), c.Query("categoryId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Resumen de repuestos", out))
}

// Export godoc
// @Summary      Descargar conciliación
// @Tags         adminpanel
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        categoryId  query  string  true   "ID de la categoría"
// @Param        format      query  string  false  "xlsx | pdf"  default(xlsx)
// @Success      200         {file}    binary
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/adminpanel/parts-summary/export [get]
func (h *DashboardHandler) Export(c *fiber.Ctx) error {
	body, contentType, filename, err := h.uc.Export(c.Context(), c.Query("categoryId"), c.Query("format", "xlsx"))
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}

// Stats godoc
// @Summary      Tarjetas del panel
// @Tags         adminpanel
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.DashboardStatsDTO}
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/adminpanel/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Estadísticas", out))
}
