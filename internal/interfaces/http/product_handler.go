package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/backend"
)

// ProductBackend productos y stock de empresa del backend REST.
type ProductBackend interface {
	CreateProduct(ctx context.Context, token string, in backend.CreateProductRequest) (*entity.Product, error)
	ListProducts(ctx context.Context, token string) ([]entity.Product, error)
	GetProduct(ctx context.Context, token, id string) (*entity.Product, error)
	UpdateProduct(ctx context.Context, token, id string, in backend.UpdateProductRequest) (*entity.Product, error)
	DeactivateProduct(ctx context.Context, token, id string) error
	AddStock(ctx context.Context, token string, in backend.AddStockRequest) (*backend.AddStockResponse, error)
	TransferStock(ctx context.Context, token string, in backend.TransferStockRequest) (*backend.TransferStockResponse, error)
	StockHistory(ctx context.Context, token, id string) (*backend.StockHistory, error)
}

// ProductHandler maneja las peticiones HTTP de productos (protegido).
type ProductHandler struct {
	api ProductBackend
}

// NewProductHandler construye el handler.
func NewProductHandler(api ProductBackend) *ProductHandler {
	return &ProductHandler{api: api}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  backend.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in backend.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.Name = strings.TrimSpace(in.Name)
	var v domain.ValidationErrors
	if in.Name == "" {
		v = append(v, "Le nom du produit est requis")
	}
	if in.Price != nil && in.Price.IsNegative() {
		v = append(v, "Le prix doit être positif")
	}
	if in.InitialQty < 0 {
		v = append(v, "La quantité initiale doit être positive")
	}
	if err := v.OrNil(); err != nil {
		return respondError(c, err)
	}
	out, err := h.api.CreateProduct(c.UserContext(), GetBackendToken(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Product
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.api.ListProducts(c.UserContext(), GetBackendToken(c))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		out = []entity.Product{}
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.api.GetProduct(c.UserContext(), GetBackendToken(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del producto"
// @Param        body  body  backend.UpdateProductRequest  true  "Campos a cambiar"
// @Success      200   {object}  entity.Product
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in backend.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Price != nil && in.Price.IsNegative() {
		return respondError(c, domain.ValidationErrors{"Le prix doit être positif"})
	}
	out, err := h.api.UpdateProduct(c.UserContext(), GetBackendToken(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Deactivate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.api.DeactivateProduct(c.UserContext(), GetBackendToken(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddStock godoc
// @Summary      Entrada de stock en la empresa
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  backend.AddStockRequest  true  "Producto y cantidad"
// @Success      200   {object}  backend.AddStockResponse
// @Router       /api/products/add-stock [post]
func (h *ProductHandler) AddStock(c *fiber.Ctx) error {
	var in backend.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	var v domain.ValidationErrors
	if in.ProductID == "" {
		v = append(v, "Le produit est requis")
	}
	if in.QtyAdded <= 0 {
		v = append(v, "La quantité doit être supérieure à 0")
	}
	if err := v.OrNil(); err != nil {
		return respondError(c, err)
	}
	out, err := h.api.AddStock(c.UserContext(), GetBackendToken(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TransferStock godoc
// @Summary      Transferir stock a un punto de venta
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  backend.TransferStockRequest  true  "Producto, punto de venta y cantidad"
// @Success      200   {object}  backend.TransferStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/transfer-stock [post]
func (h *ProductHandler) TransferStock(c *fiber.Ctx) error {
	var in backend.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	var v domain.ValidationErrors
	if in.ProductID == "" {
		v = append(v, "Le produit est requis")
	}
	if in.PointOfSaleID == "" {
		v = append(v, "Le point de vente est requis")
	}
	if in.Qty <= 0 {
		v = append(v, "La quantité doit être supérieure à 0")
	}
	if err := v.OrNil(); err != nil {
		return respondError(c, err)
	}
	out, err := h.api.TransferStock(c.UserContext(), GetBackendToken(c), in)
	if err != nil {
		return respondError(c, err, backend.FormatTransferError(err))
	}
	return c.JSON(out)
}

// StockHistory godoc
// @Summary      Historial de stock de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  backend.StockHistory
// @Router       /api/products/{id}/stock-history [get]
func (h *ProductHandler) StockHistory(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.api.StockHistory(c.UserContext(), GetBackendToken(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
