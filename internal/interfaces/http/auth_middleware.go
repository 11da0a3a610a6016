package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vgc-store/internal/application/dto"
	"github.com/jhoicas/vgc-store/internal/domain/entity"
	"github.com/jhoicas/vgc-store/pkg/jwt"
)

// Locals keys para la identidad verificada en Fiber.
const (
	LocalUID   = "uid"
	LocalPhone = "phone"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UID y teléfono a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido", Redirect: "/auth"})
		}
		uid, phone, ok := parseBearer(jwtSecret, authHeader)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado", Redirect: "/auth"})
		}
		c.Locals(LocalUID, uid)
		c.Locals(LocalPhone, phone)
		return c.Next()
	}
}

// OptionalAuth carga la identidad si llega un token válido; sin token (o con uno inválido)
// la petición sigue como anónima y el caso de uso decide.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uid, phone, ok := parseBearer(jwtSecret, c.Get("Authorization")); ok {
			c.Locals(LocalUID, uid)
			c.Locals(LocalPhone, phone)
		}
		return c.Next()
	}
}

func parseBearer(secret, header string) (uid, phone string, ok bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "", false
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", "", false
	}
	uid, phone, err := jwt.Parse(secret, tokenString)
	if err != nil || uid == "" {
		return "", "", false
	}
	return uid, phone, true
}

// GetUID devuelve el UID del contexto (después del middleware de auth).
func GetUID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUID).(string)
	return s
}

// GetPhone devuelve el teléfono E.164 del contexto.
func GetPhone(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalPhone).(string)
	return s
}

// GetIdentity identidad verificada de la petición o nil si es anónima.
func GetIdentity(c *fiber.Ctx) *entity.Identity {
	uid := GetUID(c)
	if uid == "" {
		return nil
	}
	return &entity.Identity{UID: uid, PhoneNumber: GetPhone(c)}
}
