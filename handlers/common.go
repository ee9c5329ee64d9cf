// Package handlers is presentation glue: every handler binds a request,
// calls one store operation and maps its sentinel error to a status code.
// No business rules live here.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"webfree/middleware"
	"webfree/store"
)

// API exposes one node's store over HTTP.
type API struct {
	Store *store.Store
}

func New(s *store.Store) *API {
	return &API{Store: s}
}

// statusFor maps store sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrUnauthenticated),
		errors.Is(err, store.ErrInvalidCredentials),
		errors.Is(err, store.ErrBanned):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrTaken):
		return http.StatusConflict
	case errors.Is(err, store.ErrEmptyText):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWith(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// issueToken mints the bearer token the UI sends back on every request.
func issueToken(userID string) (string, error) {
	claims := &middleware.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(middleware.Secret())
}
