package http

import (
	"errors"
	"net/http"
	"strings"

	"pickup/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

var errMissingUser = errors.New("authenticated user is missing from the request context")

// Authenticator verifies HS256 bearer tokens. The subject claim carries the
// acting user id.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) Authenticator {
	return Authenticator{secret: []byte(secret)}
}

// Middleware rejects requests without a valid token with 401.
func (a Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			userID, err := a.parse(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

func (a Authenticator) parse(tokenString string) (kernel.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromString(claims.Subject)
}

func currentUser(c echo.Context) (kernel.UUID, error) {
	id, ok := c.Get(userIDKey).(kernel.UUID)
	if !ok {
		return kernel.UUID{}, errMissingUser
	}
	return id, nil
}
