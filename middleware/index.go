package middleware

import (
	"errors"
	"hearthroot_shop/constants"
	"hearthroot_shop/utils"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CartSessionCookie = "cart_session"

func tokenFromRequest(c *fiber.Ctx) string {
	token := c.Cookies("access_token")
	if token == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	return token
}

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return utils.ErrorResponse(c, 401, "Missing token", errors.New("no token"))
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, 401, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// AdminOnly sits behind Protected and rejects tokens without the admin role.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return utils.ErrorResponse(c, 401, "Missing token", errors.New("no token"))
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.ErrorResponse(c, 401, "Invalid token", errors.New("bad claims"))
		}
		role, _ := claims["role"].(string)
		if role != constants.ROLE_ADMIN && role != constants.ROLE_MODERATOR {
			return utils.ErrorResponse(c, 403, "Admin access required", errors.New("insufficient role"))
		}
		return c.Next()
	}
}

// OptionalAuth parses a token when present but lets anonymous requests
// through. Cart and checkout routes use it so guests keep working.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			c.Locals("user", nil)
			return c.Next()
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			c.Locals("user", nil)
			return c.Next()
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// CartSession guarantees every visitor carries a session token for their
// guest cart. The same cookie is what login later merges from.
func CartSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(CartSessionCookie)
		if token == "" {
			token = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     CartSessionCookie,
				Value:    token,
				HTTPOnly: true,
				SameSite: "Lax",
				Path:     "/",
			})
		}
		c.Locals("cartSession", token)
		return c.Next()
	}
}

// CartSessionToken reads the session token set by CartSession.
func CartSessionToken(c *fiber.Ctx) string {
	token, _ := c.Locals("cartSession").(string)
	if token == "" {
		token = c.Cookies(CartSessionCookie)
	}
	return token
}
