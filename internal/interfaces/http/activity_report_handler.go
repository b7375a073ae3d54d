package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
)

// ActivityReportHandler rapports d'activité de los comerciales (protegido).
type ActivityReportHandler struct {
	uc *usecase.ActivityReportUseCase
}

// NewActivityReportHandler construye el handler.
func NewActivityReportHandler(uc *usecase.ActivityReportUseCase) *ActivityReportHandler {
	return &ActivityReportHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar rapport de actividad
// @Description  Sin commercial se usa el nombre de la sesión.
// @Tags         activity-reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateActivityReportRequest  true  "Rapport"
// @Success      201   {object}  dto.ActivityReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/activity-reports [post]
func (h *ActivityReportHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateActivityReportRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	s := GetSession(c)
	if s == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Session requise"})
	}
	out, err := h.uc.Create(c.UserContext(), s.CompanyID, s.UserID, s.Name, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar rapports de actividad
// @Tags         activity-reports
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ActivityReportListResponse
// @Router       /api/activity-reports [get]
func (h *ActivityReportHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(validationBody("Paramètres de pagination invalides"))
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
