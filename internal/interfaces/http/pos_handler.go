package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/backend"
)

// POSBackend puntos de venta del backend REST.
type POSBackend interface {
	CreatePOS(ctx context.Context, token string, in backend.CreatePOSRequest) (*entity.PointOfSale, error)
	ListPOS(ctx context.Context, token string) ([]entity.PointOfSale, error)
}

// POSHandler puntos de venta (protegido).
type POSHandler struct {
	api POSBackend
}

// NewPOSHandler construye el handler.
func NewPOSHandler(api POSBackend) *POSHandler {
	return &POSHandler{api: api}
}

type posResponse struct {
	entity.PointOfSale
	ActiveUsers int `json:"activeUsers"`
}

// List godoc
// @Summary      Listar puntos de venta
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.PointOfSale
// @Router       /api/pos [get]
func (h *POSHandler) List(c *fiber.Ctx) error {
	list, err := h.api.ListPOS(c.UserContext(), GetBackendToken(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]posResponse, 0, len(list))
	for _, p := range list {
		out = append(out, posResponse{PointOfSale: p, ActiveUsers: backend.ActiveUsersCount(p)})
	}
	return c.JSON(fiber.Map{"count": len(out), "data": out})
}

// Create godoc
// @Summary      Crear punto de venta
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  backend.CreatePOSRequest  true  "Nombre y dirección"
// @Success      201   {object}  entity.PointOfSale
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pos [post]
func (h *POSHandler) Create(c *fiber.Ctx) error {
	var in backend.CreatePOSRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.api.CreatePOS(c.UserContext(), GetBackendToken(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
