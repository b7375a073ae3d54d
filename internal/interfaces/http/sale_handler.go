package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/backend"
)

// SaleBackend ventas del backend REST.
type SaleBackend interface {
	CreateSale(ctx context.Context, token string, in backend.CreateSaleRequest) (*entity.Sale, error)
	ListSales(ctx context.Context, token string, page, limit int) (*entity.SalePage, error)
	GetSale(ctx context.Context, token, id string) (*entity.Sale, error)
}

// SaleHandler ventas (protegido).
type SaleHandler struct {
	api SaleBackend
}

// NewSaleHandler construye el handler.
func NewSaleHandler(api SaleBackend) *SaleHandler {
	return &SaleHandler{api: api}
}

// Create godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  backend.CreateSaleRequest  true  "Venta con sus líneas"
// @Success      201   {object}  entity.Sale
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in backend.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.api.CreateSale(c.UserContext(), GetBackendToken(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Tamaño"  default(10)
// @Success      200    {object}  entity.SalePage
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.api.ListSales(c.UserContext(), GetBackendToken(c), c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  entity.Sale
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.api.GetSale(c.UserContext(), GetBackendToken(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
