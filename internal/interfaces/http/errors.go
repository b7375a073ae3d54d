package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/backend"
)

// LocalError clave de c.Locals con el error interno, para el log de acceso.
const LocalError = "error"

const msgInternal = "Une erreur interne est survenue"

// respondError traduce err a la respuesta HTTP. message reemplaza el texto de los errores
// del backend cuando no está vacío.
func respondError(c *fiber.Ctx, err error, message ...string) error {
	var (
		valErrs domain.ValidationErrors
		apiErr  *backend.APIError
		unErr   *backend.UnavailableError
	)
	override := ""
	if len(message) > 0 {
		override = message[0]
	}

	switch {
	case errors.As(err, &valErrs):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: valErrs.Error(), Errors: []string(valErrs),
		})
	case errors.As(err, &apiErr):
		status := apiErr.Status
		if status < 400 || status > 599 {
			status = fiber.StatusBadGateway
		}
		msg := apiErr.UserMessage()
		if override != "" {
			msg = override
		}
		resp := dto.ErrorResponse{Code: backendCode(status), Message: msg}
		if len(apiErr.Errors) > 0 {
			resp.Errors = apiErr.Errors
		}
		if len(apiErr.Details) > 0 {
			resp.Details = apiErr.Details
		}
		return c.Status(status).JSON(resp)
	case errors.As(err, &unErr):
		c.Locals(LocalError, err.Error())
		msg := unErr.UserMessage()
		if override != "" {
			msg = override
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BACKEND_UNAVAILABLE", Message: msg})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Ressource introuvable"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "La ressource existe déjà"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "Stock insuffisant"})
	case errors.Is(err, domain.ErrUntrackedStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "UNTRACKED_STOCK", Message: "Stock illimité, aucun ajustement relatif possible"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Données invalides"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Identifiants invalides"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Accès refusé"})
	default:
		c.Locals(LocalError, err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msgInternal})
	}
}

func backendCode(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return "VALIDATION"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	default:
		return "BACKEND_ERROR"
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Corps de requête invalide"})
}

func missingID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "L'identifiant est requis"})
}

func validationBody(msgs ...string) dto.ErrorResponse {
	return dto.ErrorResponse{Code: "VALIDATION", Message: strings.Join(msgs, ", "), Errors: msgs}
}
