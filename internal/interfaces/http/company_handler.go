package http

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/backend"
)

// CompanyBackend operaciones de empresa y empleados del backend REST.
type CompanyBackend interface {
	CompanyProfile(ctx context.Context, token string) (*backend.CompanyProfile, error)
	CompanyInfo(ctx context.Context, token string) (*entity.Company, error)
	UpdateCompany(ctx context.Context, token string, in backend.UpdateCompanyRequest) (*backend.UpdateCompanyResponse, error)
	Employees(ctx context.Context, token string, f backend.EmployeeFilter) (*backend.EmployeePage, error)
	AddUser(ctx context.Context, token string, in backend.AddUserRequest) (*backend.AddUserResponse, error)
	CompanySummary(ctx context.Context, token string) (*backend.CompanySummary, error)
}

// CompanyHandler perfil de empresa y empleados (protegido).
type CompanyHandler struct {
	api CompanyBackend
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(api CompanyBackend) *CompanyHandler {
	return &CompanyHandler{api: api}
}

// profileResponse perfil con la marca de completitud.
type profileResponse struct {
	*backend.CompanyProfile
	Complete bool `json:"complete"`
}

// Profile godoc
// @Summary      Perfil de la empresa
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  backend.CompanyProfile
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/company/profile [get]
func (h *CompanyHandler) Profile(c *fiber.Ctx) error {
	out, err := h.api.CompanyProfile(c.UserContext(), GetBackendToken(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profileResponse{CompanyProfile: out, Complete: backend.IsProfileComplete(out.Company)})
}

// Info godoc
// @Summary      Datos básicos de la empresa
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.Company
// @Router       /api/company/info [get]
func (h *CompanyHandler) Info(c *fiber.Ctx) error {
	out, err := h.api.CompanyInfo(c.UserContext(), GetBackendToken(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empresa
// @Description  Los campos vacíos conservan el valor actual.
// @Tags         company
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  backend.UpdateCompanyRequest  true  "Datos de la empresa"
// @Success      200   {object}  backend.UpdateCompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in backend.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ctx, token := c.UserContext(), GetBackendToken(c)
	current, err := h.api.CompanyInfo(ctx, token)
	if err != nil {
		return respondError(c, err)
	}
	req := backend.BuildUpdate(*current)
	if v := strings.TrimSpace(in.CompanyName); v != "" {
		req.CompanyName = v
	}
	if v := strings.TrimSpace(in.CompanyAddress); v != "" {
		req.CompanyAddress = v
	}
	if v := strings.TrimSpace(in.Industry); v != "" {
		req.Industry = v
	}
	out, err := h.api.UpdateCompany(ctx, token, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Employees godoc
// @Summary      Listar empleados
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Param        role           query  string  false  "admin | manager | commercial"
// @Param        pointOfSaleId  query  string  false  "Punto de venta"
// @Param        isActive       query  bool    false  "Solo activos / inactivos"
// @Param        search         query  string  false  "Nombre o email"
// @Param        page           query  int     false  "Página"
// @Param        limit          query  int     false  "Tamaño de página"
// @Success      200  {object}  backend.EmployeePage
// @Router       /api/company/employees [get]
func (h *CompanyHandler) Employees(c *fiber.Ctx) error {
	f := backend.EmployeeFilter{
		Role:          c.Query("role"),
		PointOfSaleID: c.Query("pointOfSaleId"),
		Search:        strings.TrimSpace(c.Query("search")),
		Page:          c.QueryInt("page", 0),
		Limit:         c.QueryInt("limit", 0),
	}
	if raw := c.Query("isActive"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(validationBody("isActive doit valoir true ou false"))
		}
		f.IsActive = &b
	}
	out, err := h.api.Employees(c.UserContext(), GetBackendToken(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddEmployee godoc
// @Summary      Agregar empleado
// @Tags         company
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  backend.AddUserRequest  true  "Empleado"
// @Success      201   {object}  backend.AddUserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company/employees [post]
func (h *CompanyHandler) AddEmployee(c *fiber.Ctx) error {
	var in backend.AddUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.Email = strings.TrimSpace(in.Email)
	out, err := h.api.AddUser(c.UserContext(), GetBackendToken(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Summary godoc
// @Summary      Resumen de la empresa
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  backend.CompanySummary
// @Router       /api/company/summary [get]
func (h *CompanyHandler) Summary(c *fiber.Ctx) error {
	out, err := h.api.CompanySummary(c.UserContext(), GetBackendToken(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
