package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/vgc-store/internal/application/auth"
	"github.com/jhoicas/vgc-store/internal/application/dto"
	"github.com/jhoicas/vgc-store/internal/domain"
	"github.com/jhoicas/vgc-store/internal/domain/entity"
)

// AuthHandler pasos del inicio de sesión por código SMS.
type AuthHandler struct {
	otp  *auth.OTPAuthenticator
	gate *auth.AdminGate
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(otp *auth.OTPAuthenticator, gate *auth.AdminGate) *AuthHandler {
	return &AuthHandler{otp: otp, gate: gate}
}

// ChallengeToken godoc
// @Summary      Iniciar sesión de verificación
// @Description  Sesión Unauthenticated con un token anti-bot para el primer envío.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.AuthSessionDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/auth/challenge-token [get]
func (h *AuthHandler) ChallengeToken(c *fiber.Ctx) error {
	sess, err := h.otp.Start(c.UserContext())
	if err != nil {
		return h.sessionError(c, sess, err)
	}
	return c.JSON(toSessionDTO(sess))
}

// RequestCode godoc
// @Summary      Enviar código
// @Description  Envía un código de 6 dígitos al número nacional de 10 dígitos con el prefijo del país.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RequestCodeRequest  true  "Sesión y número"
// @Success      200  {object}  dto.AuthSessionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.AuthErrorResponse
// @Router       /api/auth/otp/request [post]
func (h *AuthHandler) RequestCode(c *fiber.Ctx) error {
	var in dto.RequestCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	sess, err := h.otp.RequestCode(c.UserContext(), toSession(in.Session), in.PhoneNumber)
	if err != nil {
		return h.sessionError(c, sess, err)
	}
	return c.JSON(toSessionDTO(sess))
}

// VerifyCode godoc
// @Summary      Verificar código
// @Description  Con el código correcto devuelve el token Bearer y la ruta a la que volver.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Client-ID  header  string                 false  "ID de cliente"
// @Param        body         body    dto.VerifyCodeRequest  true   "Sesión y código"
// @Success      200  {object}  dto.VerifyCodeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/auth/otp/verify [post]
func (h *AuthHandler) VerifyCode(c *fiber.Ctx) error {
	var in dto.VerifyCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	sess, err := h.otp.VerifyCode(c.UserContext(), toSession(in.Session), in.Code)
	if err != nil {
		return h.sessionError(c, sess, err)
	}
	token, returnURL, err := h.otp.Complete(c.UserContext(), GetClientID(c), sess)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.VerifyCodeResponse{
		Session:   toSessionDTO(sess),
		Token:     token,
		Identity:  toIdentityResponse(sess.Identity, h.gate.IsAdmin(sess.Identity)),
		ReturnURL: returnURL,
	})
}

// ResetChallenge godoc
// @Summary      Cambiar número
// @Description  Descarta el desafío pendiente y vuelve a Unauthenticated.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetChallengeRequest  true  "Sesión"
// @Success      200  {object}  dto.AuthSessionDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/auth/otp/reset [post]
func (h *AuthHandler) ResetChallenge(c *fiber.Ctx) error {
	var in dto.ResetChallengeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	sess, err := h.otp.ResetChallenge(toSession(in.Session))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSessionDTO(sess))
}

// sessionError un fallo del proveedor viaja con la sesión renovada para poder reintentar.
func (h *AuthHandler) sessionError(c *fiber.Ctx, sess entity.AuthSession, err error) error {
	if !errors.Is(err, domain.ErrAuthChallenge) {
		return writeError(c, err)
	}
	log.Warn().Err(err).Str("path", c.Path()).Msg("desafío de verificación fallido")
	return c.Status(fiber.StatusBadGateway).JSON(dto.AuthErrorResponse{
		ErrorResponse: dto.ErrorResponse{
			Code:    CodeChallengeFailed,
			Message: "no se pudo enviar el código, intente de nuevo",
			Retry:   true,
		},
		Session: toSessionDTO(sess),
	})
}

func toSession(in dto.AuthSessionDTO) entity.AuthSession {
	return entity.AuthSession{
		State:          entity.AuthState(in.State),
		PhoneNumber:    in.PhoneNumber,
		VerificationID: in.VerificationID,
		ChallengeToken: in.ChallengeToken,
	}
}

func toSessionDTO(s entity.AuthSession) dto.AuthSessionDTO {
	return dto.AuthSessionDTO{
		State:          string(s.Current()),
		PhoneNumber:    s.PhoneNumber,
		VerificationID: s.VerificationID,
		ChallengeToken: s.ChallengeToken,
	}
}

func toIdentityResponse(id *entity.Identity, isAdmin bool) dto.IdentityResponse {
	if id == nil {
		return dto.IdentityResponse{}
	}
	return dto.IdentityResponse{UID: id.UID, PhoneNumber: id.PhoneNumber, IsAdmin: isAdmin}
}

// Me godoc
// @Summary      Identidad de la sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.IdentityResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id := GetIdentity(c)
	return c.JSON(toIdentityResponse(id, h.gate.IsAdmin(id)))
}
