package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/garantias-api/pkg/config"
	pkgjwt "github.com/jhoicas/garantias-api/pkg/jwt"
)

// Locals key para el UserID en Fiber.
const LocalUserID = "user_id"

// IdentityResolver deriva la identidad del usuario desde la petición. La
// aplicación no emite credenciales; acepta lo que el gateway de identidad ya
// validó, sea un token firmado o cabeceras inyectadas por el reverse proxy.
// Las implementaciones son mutuamente excluyentes y se eligen por config.
type IdentityResolver interface {
	Resolve(c *fiber.Ctx) (userID string, err error)
}

// NewIdentityResolver construye el resolver según AUTH_MODE.
func NewIdentityResolver(cfg config.AuthConfig) IdentityResolver {
	if cfg.Mode == "proxy" {
		return &ProxyHeaderResolver{}
	}
	return &JWTResolver{Secret: cfg.JWTSecret, Cookie: cfg.Cookie}
}

// JWTResolver valida un token HS256 emitido por el gateway, tomado del header
// Authorization (Bearer) o, en su defecto, de la cookie de sesión.
type JWTResolver struct {
	Secret string
	Cookie string
}

// Resolve extrae y valida el token.
func (r *JWTResolver) Resolve(c *fiber.Ctx) (string, error) {
	tokenString := ""
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", fiber.NewError(fiber.StatusUnauthorized, "formato: Bearer <token>")
		}
		tokenString = strings.TrimSpace(parts[1])
	} else if r.Cookie != "" {
		tokenString = c.Cookies(r.Cookie)
	}
	if tokenString == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "token requerido")
	}
	userID, err := pkgjwt.Parse(r.Secret, tokenString)
	if err != nil {
		return "", fiber.NewError(fiber.StatusUnauthorized, "token inválido o expirado")
	}
	return userID, nil
}

// Cabeceras de identidad que puede inyectar el proxy (Authentik u otro).
// Se prueban en orden; la primera no vacía gana.
var proxyIdentityHeaders = []string{
	"X-Authentik-Uid",
	"X-Authentik-Username",
	"Remote-User",
}

// ProxyHeaderResolver confía en las cabeceras de identidad del reverse proxy.
// Solo es seguro cuando la aplicación no es alcanzable sin pasar por el proxy.
type ProxyHeaderResolver struct{}

// Resolve lee la primera cabecera de identidad presente.
func (r *ProxyHeaderResolver) Resolve(c *fiber.Ctx) (string, error) {
	for _, h := range proxyIdentityHeaders {
		if v := c.Get(h); v != "" {
			return v, nil
		}
	}
	return "", fiber.NewError(fiber.StatusUnauthorized, "sin cabeceras de identidad")
}

// AuthMiddleware resuelve la identidad y deja el UserID en c.Locals.
func AuthMiddleware(resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := resolver.Resolve(c)
		if err != nil {
			msg := "no autorizado"
			if fe, ok := err.(*fiber.Error); ok {
				msg = fe.Message
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code": "UNAUTHORIZED", "message": msg,
			})
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
