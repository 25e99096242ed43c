package middleware

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	apperrors "taskdesk.com/taskdesk/internal/errors"
)

// UsernameKey is the echo context key holding the authenticated username.
const UsernameKey = "username"

// Authenticate requires a valid HS256 bearer token and stores its subject
// under UsernameKey.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				return apperrors.ErrUnauthorized
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method")
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return apperrors.ErrUnauthorized
			}

			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				return apperrors.ErrUnauthorized
			}

			c.Set(UsernameKey, sub)
			return next(c)
		}
	}
}
