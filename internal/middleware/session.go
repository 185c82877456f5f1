package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alizia-edu/alizia-api/internal/models"
	"github.com/alizia-edu/alizia-api/internal/state"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
	"github.com/alizia-edu/alizia-api/pkg/response"
)

// Context keys for the resolved session.
const (
	ContextClaimsKey = "sessionClaims"
	ContextStoreKey  = "sessionStore"
)

type sessionResolver interface {
	ValidateToken(token string) (*models.SessionClaims, error)
	StoreFor(claims *models.SessionClaims) (*state.Store, error)
}

// Session protects routes by requiring a valid session token and resolves
// the live store behind it.
func Session(sessions sessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := sessions.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		store, err := sessions.StoreFor(claims)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Set(ContextStoreKey, store)
		c.Next()
	}
}
