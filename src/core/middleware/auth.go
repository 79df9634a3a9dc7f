package middleware

import (
	"errors"
	"strings"

	"github.com/gemgeek/gemconnect-backend/src/core/auth"
	"github.com/gemgeek/gemconnect-backend/src/core/helpers"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Authenticate resolves the optional caller identity. Requests without an
// Authorization header pass through anonymously; a header that is present
// must carry a valid token ("JWT <token>" or "Bearer <token>").
func Authenticate(issuer *auth.Issuer) fiber.Handler {
	verify := func(scheme string) fiber.Handler {
		return jwtware.New(jwtware.Config{
			SigningKey:     jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: issuer.Secret()},
			AuthScheme:     scheme,
			ErrorHandler:   jwtError,
			SuccessHandler: attachIdentity,
		})
	}
	jwtScheme := verify("JWT")
	bearerScheme := verify("Bearer")

	return func(c *fiber.Ctx) error {
		header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		switch {
		case header == "":
			return c.Next()
		case strings.HasPrefix(header, "Bearer "):
			return bearerScheme(c)
		default:
			return jwtScheme(c)
		}
	}
}

// attachIdentity moves the verified claims onto the request context.
func attachIdentity(c *fiber.Ctx) error {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or expired JWT", errors.New("missing token"))
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or expired JWT", errors.New("unexpected claims"))
	}
	id, err := auth.IdentityFromClaims(claims)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "User ID missing in token", err)
	}
	c.SetUserContext(auth.WithIdentity(c.UserContext(), id))
	return c.Next()
}

// jwtError handles JWT-related errors
func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Missing or malformed JWT", err)
	}
	return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or expired JWT", err)
}
