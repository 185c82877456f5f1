package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alizia-edu/alizia-api/internal/models"
	"github.com/alizia-edu/alizia-api/internal/state"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
)

type sessionResolverMock struct {
	claims *models.SessionClaims
	store  *state.Store

	validateErr error
	storeErr    error
}

func (m *sessionResolverMock) ValidateToken(string) (*models.SessionClaims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.claims, nil
}

func (m *sessionResolverMock) StoreFor(*models.SessionClaims) (*state.Store, error) {
	if m.storeErr != nil {
		return nil, m.storeErr
	}
	return m.store, nil
}

func sessionRouter(resolver sessionResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(resolver))
	r.GET("/probe", func(c *gin.Context) {
		_, hasClaims := c.Get(ContextClaimsKey)
		_, hasStore := c.Get(ContextStoreKey)
		c.JSON(http.StatusOK, gin.H{"claims": hasClaims, "store": hasStore})
	})
	return r
}

func TestSessionMiddleware_MissingHeader(t *testing.T) {
	r := sessionRouter(&sessionResolverMock{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddleware_MalformedHeader(t *testing.T) {
	r := sessionRouter(&sessionResolverMock{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddleware_ExpiredSession(t *testing.T) {
	r := sessionRouter(&sessionResolverMock{validateErr: appErrors.ErrSessionExpired})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_EXPIRED")
}

func TestSessionMiddleware_DroppedStore(t *testing.T) {
	resolver := &sessionResolverMock{
		claims:   &models.SessionClaims{SessionID: "session-1", UserID: 42},
		storeErr: appErrors.ErrSessionExpired,
	}
	r := sessionRouter(resolver)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddleware_ResolvesClaimsAndStore(t *testing.T) {
	resolver := &sessionResolverMock{
		claims: &models.SessionClaims{SessionID: "session-1", UserID: 42},
		store:  state.New(models.User{ID: 42}),
	}
	r := sessionRouter(resolver)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"claims":true`)
	assert.Contains(t, w.Body.String(), `"store":true`)
}
