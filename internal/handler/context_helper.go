package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alizia-edu/alizia-api/internal/middleware"
	"github.com/alizia-edu/alizia-api/internal/models"
	"github.com/alizia-edu/alizia-api/internal/state"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.SessionClaims {
	value, exists := c.Get(middleware.ContextClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

func storeFromContext(c *gin.Context) *state.Store {
	value, exists := c.Get(middleware.ContextStoreKey)
	if !exists {
		return nil
	}
	store, ok := value.(*state.Store)
	if !ok {
		return nil
	}
	return store
}

func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid id parameter")
	}
	return id, nil
}
