// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"strings"

	"moneytransfer/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// SubjectLocal is the fiber local holding the authenticated token subject.
const SubjectLocal = "subject"

// JWTAuth validates HS256 bearer tokens signed with secret.
// It checks for:
// - Presence of Authorization header with Bearer token
// - Valid signature and signing method
// - Token expiration, when the token carries one
func JWTAuth(secret string, logger *zap.Logger) fiber.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	key := []byte(secret)

	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			logger.Debug("missing bearer token", zap.String("path", c.Path()))
			return response.Unauthorized(c)
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims,
			func(*jwt.Token) (interface{}, error) { return key, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			logger.Info("token rejected", zap.String("path", c.Path()), zap.Error(err))
			return response.Unauthorized(c)
		}

		c.Locals(SubjectLocal, claims.Subject)
		return c.Next()
	}
}
