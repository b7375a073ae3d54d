package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// LedgerHandler ledger local de cantidades (protegido).
type LedgerHandler struct {
	uc *inventory.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *inventory.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// ListItems godoc
// @Summary      Artículos del ledger
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.StockItem
// @Router       /api/ledger/items [get]
func (h *LedgerHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.uc.ListItems(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	if items == nil {
		items = []*entity.StockItem{}
	}
	return c.JSON(items)
}

// CreateItem godoc
// @Summary      Alta de artículo
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "Artículo"
// @Success      201   {object}  entity.StockItem
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/items [post]
func (h *LedgerHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.uc.CreateItem(c.UserContext(), inventory.CreateItemInput{
		ID:        strings.TrimSpace(in.ID),
		Name:      in.Name,
		Category:  entity.Category(in.Category),
		Price:     in.Price,
		Quantity:  in.Quantity,
		Threshold: in.Threshold,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// GetItem godoc
// @Summary      Artículo por ID
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  entity.StockItem
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/items/{id} [get]
func (h *LedgerHandler) GetItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	item, err := h.uc.GetItem(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// RecordSale godoc
// @Summary      Registrar venta en el ledger
// @Description  Con política reject y sin stock suficiente responde 409.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del artículo"
// @Param        body  body  dto.MovementRequest  true  "Cantidad"
// @Success      200   {object}  inventory.Result
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/items/{id}/sale [post]
func (h *LedgerHandler) RecordSale(c *fiber.Ctx) error {
	in, ok, err := h.movementInput(c)
	if !ok {
		return err
	}
	res, err := h.uc.RecordSale(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// RecordReplenishment godoc
// @Summary      Registrar reaprovisionamiento
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del artículo"
// @Param        body  body  dto.MovementRequest  true  "Cantidad"
// @Success      200   {object}  inventory.Result
// @Router       /api/ledger/items/{id}/replenish [post]
func (h *LedgerHandler) RecordReplenishment(c *fiber.Ctx) error {
	in, ok, err := h.movementInput(c)
	if !ok {
		return err
	}
	res, err := h.uc.RecordReplenishment(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// movementInput lee id y cuerpo; ok=false indica que la respuesta de error ya se escribió.
func (h *LedgerHandler) movementInput(c *fiber.Ctx) (inventory.RecordInput, bool, error) {
	id := c.Params("id")
	if id == "" {
		return inventory.RecordInput{}, false, missingID(c)
	}
	var body dto.MovementRequest
	if err := c.BodyParser(&body); err != nil {
		return inventory.RecordInput{}, false, invalidBody(c)
	}
	if body.Quantity <= 0 {
		return inventory.RecordInput{}, false,
			c.Status(fiber.StatusBadRequest).JSON(validationBody("La quantité doit être supérieure à 0"))
	}
	return inventory.RecordInput{ProductID: id, Quantity: body.Quantity, Actor: actor(c), Note: body.Note}, true, nil
}

// Adjust godoc
// @Summary      Ajuste de inventario
// @Description  delta con signo, o fixerA para fijar la cantidad (también vuelve contable un artículo ilimitado).
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del artículo"
// @Param        body  body  dto.AdjustmentRequest  true  "Ajuste"
// @Success      200   {object}  inventory.Result
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/items/{id}/adjust [post]
func (h *LedgerHandler) Adjust(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var body dto.AdjustmentRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}
	if body.SetTo == nil && body.Delta == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(validationBody("delta ou fixerA est requis"))
	}
	if body.SetTo != nil && *body.SetTo < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(validationBody("fixerA doit être positif"))
	}
	res, err := h.uc.RecordAdjustment(c.UserContext(), inventory.AdjustInput{
		ProductID: id,
		Delta:     body.Delta,
		SetTo:     body.SetTo,
		Actor:     actor(c),
		Note:      body.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// ListMovements godoc
// @Summary      Movimientos del ledger
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        produitId  query  string  false  "Artículo"
// @Param        type       query  string  false  "vente | reappro | ajustement"
// @Param        limit      query  int     false  "Límite"  default(50)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {array}  entity.StockMovement
// @Router       /api/ledger/movements [get]
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.uc.ListMovements(c.UserContext(), repository.MovementFilter{
		ProductID: c.Query("produitId"),
		Kind:      c.Query("type"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	if list == nil {
		list = []*entity.StockMovement{}
	}
	return c.JSON(fiber.Map{"data": list, "page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// Health godoc
// @Summary      Estado del stock del ledger
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  inventory.Health
// @Router       /api/ledger/health [get]
func (h *LedgerHandler) Health(c *fiber.Ctx) error {
	out, err := h.uc.Health(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Lista de reposición sugerida
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  inventory.ReplenishmentLine
// @Router       /api/ledger/replenishment [get]
func (h *LedgerHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.uc.ReplenishmentList(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// actor nombre a registrar en el movimiento: el de la sesión o, si falta, su id.
func actor(c *fiber.Ctx) string {
	if s := GetSession(c); s != nil {
		if s.Name != "" {
			return s.Name
		}
		return s.UserID
	}
	return ""
}
