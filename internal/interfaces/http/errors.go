package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/vgc-store/internal/application/auth"
	"github.com/jhoicas/vgc-store/internal/application/dto"
	"github.com/jhoicas/vgc-store/internal/domain"
)

// Códigos de error de la API.
const (
	CodeInvalidBody      = "INVALID_BODY"
	CodeValidation       = "VALIDATION"
	CodeInvalidPhone     = "INVALID_PHONE_NUMBER"
	CodeInvalidCode      = "INVALID_CODE"
	CodeInvalidQuantity  = "INVALID_QUANTITY"
	CodeIncomplete       = "INCOMPLETE_PROFILE"
	CodeSessionState     = "INVALID_SESSION_STATE"
	CodeNotFound         = "NOT_FOUND"
	CodeAuthRequired     = "AUTH_REQUIRED"
	CodeEmptyCart        = "EMPTY_CART"
	CodeForbidden        = "FORBIDDEN"
	CodeChallengeFailed  = "AUTH_CHALLENGE_FAILED"
	CodeUploadFailed     = "UPLOAD_FAILED"
	CodeDispatchFailed   = "DISPATCH_FAILED"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternal         = "INTERNAL"
)

// forbidden respuesta única para cualquier acceso denegado al panel; no distingue
// entre "sin sesión" y "sesión sin permisos".
var forbidden = dto.ErrorResponse{Code: CodeForbidden, Message: "acceso denegado", Redirect: "/"}

// writeError traduce un error de aplicación a su respuesta HTTP.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrAuthRequired):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeAuthRequired, Message: err.Error(), Redirect: "/auth"})
	case errors.Is(err, domain.ErrEmptyCart):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: CodeEmptyCart, Message: err.Error(), Redirect: "/cart"})
	case errors.Is(err, domain.ErrAuthorization):
		return c.Status(fiber.StatusForbidden).JSON(forbidden)
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidCode):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidCode, Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidPhoneNumber):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidPhone, Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidQuantity, Message: err.Error()})
	case errors.Is(err, domain.ErrIncompleteProfile):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeIncomplete, Message: err.Error()})
	case errors.Is(err, auth.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: CodeSessionState, Message: err.Error()})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: err.Error()})
	case errors.Is(err, domain.ErrAuthChallenge):
		log.Warn().Err(err).Str("path", c.Path()).Msg("desafío de verificación fallido")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: CodeChallengeFailed, Message: "no se pudo enviar el código, intente de nuevo", Retry: true})
	case errors.Is(err, domain.ErrUpload):
		log.Error().Err(err).Str("path", c.Path()).Msg("subida de imagen fallida")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: CodeUploadFailed, Message: domain.ErrUpload.Error()})
	case errors.Is(err, domain.ErrDispatch):
		log.Error().Err(err).Str("path", c.Path()).Msg("envío del pedido fallido")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: CodeDispatchFailed, Message: domain.ErrDispatch.Error(), Retry: true})
	case errors.Is(err, domain.ErrStore):
		log.Error().Err(err).Str("path", c.Path()).Msg("almacén no disponible")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: CodeStoreUnavailable, Message: "servicio no disponible, intente más tarde"})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeInternal, Message: "error interno"})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
}
