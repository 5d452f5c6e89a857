package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/camstock-api/internal/application/dto"
	"github.com/jhoicas/camstock-api/internal/application/inventory"
)

// InventoryHandler maneja los movimientos del libro de stock: salidas, daños,
// cámaras listas y entregas.
type InventoryHandler struct {
	outs     *inventory.OutProductUseCase
	damages  *inventory.DamageUseCase
	ready    *inventory.ReadyCameraUseCase
	delivery *inventory.DeliveryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	outs *inventory.OutProductUseCase,
	damages *inventory.DamageUseCase,
	ready *inventory.ReadyCameraUseCase,
	delivery *inventory.DeliveryUseCase,
) *InventoryHandler {
	return &InventoryHandler{outs: outs, damages: damages, ready: ready, delivery: delivery}
}

// AddOut godoc
// @Summary      Registrar salida de repuestos
// @Description  Descuenta de una caja concreta; la cantidad no puede superar lo que queda en ella.
// @Tags         outproduct
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddOutProductRequest  true  "category, subCategory, box, quantity"
// @Success      201   {object}  dto.Envelope{data=dto.OutProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/outproduct/add [post]
func (h *InventoryHandler) AddOut(c *fiber.Ctx) error {
	var in dto.AddOutProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.outs.Add(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Salida registrada", out))
}

// ListOuts godoc
// @Summary      Listar salidas
// @Tags         outproduct
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.OutProductResponse}
// @Router       /api/outproduct/all [get]
func (h *InventoryHandler) ListOuts(c *fiber.Ctx) error {
	out, err := h.outs.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Salidas", out))
}

// AddOrOutDamage godoc
// @Summary      Registrar o retirar repuestos dañados
// @Tags         damageproduct
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DamageRequest  true  "category, subCategory, action (Add|Out), boxes"
// @Success      200   {object}  dto.Envelope{data=dto.DamageResult}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/damageproduct/add-or-out [post]
func (h *InventoryHandler) AddOrOutDamage(c *fiber.Ctx) error {
	var in dto.DamageRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.damages.AddOrOut(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Daños registrados", out))
}

// ListDamages godoc
// @Summary      Listar libro de daños
// @Tags         damageproduct
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.DamageProductResponse}
// @Router       /api/damageproduct/all [get]
func (h *InventoryHandler) ListDamages(c *fiber.Ctx) error {
	out, err := h.damages.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Daños", out))
}

// DamagedBoxes godoc
// @Summary      Saldo dañado por caja
// @Tags         damageproduct
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DamagedBoxesRequest  true  "categoryId"
// @Success      200   {object}  dto.Envelope{data=map[string]int}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/damageproduct/boxes [post]
func (h *InventoryHandler) DamagedBoxes(c *fiber.Ctx) error {
	var in dto.DamagedBoxesRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.damages.Boxes(c.Context(), in.CategoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Cajas dañadas", out))
}

// CreateReady godoc
// @Summary      Registrar cámaras armadas
// @Tags         readycamera
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReadyCameraRequest  true  "category, boxes con partUIDs"
// @Success      201   {object}  dto.Envelope{data=dto.ReadyCameraResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/readycamera/create [post]
func (h *InventoryHandler) CreateReady(c *fiber.Ctx) error {
	var in dto.CreateReadyCameraRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ready.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Cámaras listas registradas", out))
}

// ReadyHistory godoc
// @Summary      Historial de cámaras listas
// @Tags         readycamera
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.ReadyCameraHistoryItem}
// @Router       /api/readycamera/history [get]
func (h *InventoryHandler) ReadyHistory(c *fiber.Ctx) error {
	out, err := h.ready.History(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Historial de cámaras listas", out))
}

// ReadyBoxes godoc
// @Summary      Cajas con cámaras en stock
// @Tags         readycamera
// @Security     Bearer
// @Produce      json
// @Param        categoryId  query  string  true  "ID de la categoría"
// @Success      200         {object}  dto.Envelope{data=[]dto.ReadyBoxResponse}
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/readycamera/boxes [get]
func (h *InventoryHandler) ReadyBoxes(c *fiber.Ctx) error {
	out, err := h.ready.Boxes(c.Context(), c.Query("categoryId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Cajas de cámaras listas", out))
}

// Deliver godoc
// @Summary      Entregar cámaras a un IWON
// @Description  Un UID que no esté en stock anula toda la entrega (409).
// @Tags         delivery
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeliverRequest  true  "iwonName, category, boxes con selectedUIDs"
// @Success      201   {object}  dto.Envelope{data=dto.DeliveryResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/delivery/deliver [post]
func (h *InventoryHandler) Deliver(c *fiber.Ctx) error {
	var in dto.DeliverRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.delivery.Deliver(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Entrega registrada", out))
}

// DeliveryHistory godoc
// @Summary      Historial de entregas
// @Tags         delivery
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Nombre de la categoría"
// @Param        date      query  string  false  "Desde (YYYY-MM-DD)"
// @Success      200       {object}  dto.Envelope{data=[]dto.DeliveryResponse}
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/delivery/history [get]
func (h *InventoryHandler) DeliveryHistory(c *fiber.Ctx) error {
	var q dto.DeliveryHistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.delivery.History(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Historial de entregas", out))
}
