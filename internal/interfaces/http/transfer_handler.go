package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Backoffice-api/internal/application/ports"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/backend"
)

// TransferBackend transferencias del backend REST.
type TransferBackend interface {
	CreateTransfer(ctx context.Context, token string, in backend.CreateTransferRequest) (*entity.Transfer, error)
	ListTransfers(ctx context.Context, token string, q ports.TransferQuery) (*entity.TransferPage, error)
	GetTransfer(ctx context.Context, token, id string) (*entity.Transfer, error)
	AvailableStock(ctx context.Context, token, companyID string) (*entity.AvailableStock, error)
}

// TransferHandler transferencias empresa → punto de venta (protegido).
type TransferHandler struct {
	api TransferBackend
}

// NewTransferHandler construye el handler.
func NewTransferHandler(api TransferBackend) *TransferHandler {
	return &TransferHandler{api: api}
}

// Create godoc
// @Summary      Crear transferencia
// @Description  Sin stock suficiente responde con el detalle por producto en details.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  backend.CreateTransferRequest  true  "Destino y líneas"
// @Success      201   {object}  entity.Transfer
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in backend.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.CompanyID = GetCompanyID(c)
	in.UserID = GetUserID(c)
	out, err := h.api.CreateTransfer(c.UserContext(), GetBackendToken(c), in)
	if err != nil {
		if errors.As(err, new(domain.ValidationErrors)) {
			return respondError(c, err)
		}
		return respondError(c, err, backend.FormatTransferError(err))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar transferencias
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        page           query  int     false  "Página"  default(1)
// @Param        limit          query  int     false  "Tamaño"  default(10)
// @Param        pointOfSaleId  query  string  false  "Punto de venta"
// @Param        userId         query  string  false  "Usuario"
// @Param        startDate      query  string  false  "YYYY-MM-DD"
// @Param        endDate        query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  entity.TransferPage
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	q, err := transferQueryFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.api.ListTransfers(c.UserContext(), GetBackendToken(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener transferencia
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {object}  entity.Transfer
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.api.GetTransfer(c.UserContext(), GetBackendToken(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AvailableStock godoc
// @Summary      Stock disponible de la empresa
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.AvailableStock
// @Router       /api/transfers/stock [get]
func (h *TransferHandler) AvailableStock(c *fiber.Ctx) error {
	out, err := h.api.AvailableStock(c.UserContext(), GetBackendToken(c), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

const queryDateLayout = "2006-01-02"

// transferQueryFrom lee filtros y paginación; la empresa siempre es la de la sesión.
func transferQueryFrom(c *fiber.Ctx) (ports.TransferQuery, error) {
	q := ports.TransferQuery{
		Page:          c.QueryInt("page", 1),
		Limit:         c.QueryInt("limit", 10),
		CompanyID:     GetCompanyID(c),
		UserID:        c.Query("userId"),
		PointOfSaleID: c.Query("pointOfSaleId"),
		StartDate:     c.Query("startDate"),
		EndDate:       c.Query("endDate"),
	}
	var v domain.ValidationErrors
	var start, end time.Time
	var err error
	if q.StartDate != "" {
		if start, err = time.Parse(queryDateLayout, q.StartDate); err != nil {
			v = append(v, "startDate doit être au format AAAA-MM-JJ")
		}
	}
	if q.EndDate != "" {
		if end, err = time.Parse(queryDateLayout, q.EndDate); err != nil {
			v = append(v, "endDate doit être au format AAAA-MM-JJ")
		}
	}
	if len(v) == 0 && !start.IsZero() && !end.IsZero() && end.Before(start) {
		v = append(v, "endDate doit être postérieure à startDate")
	}
	return q, v.OrNil()
}
