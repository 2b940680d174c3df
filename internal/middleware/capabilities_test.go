package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantnet_back_end/internal/models"
	"plantnet_back_end/internal/utils"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := r.Group("/")
	auth.Use(AuthRequired(), Authorize())
	{
		auth.GET("/users", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
		auth.POST("/order", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	}
	return r
}

func stubRole(t *testing.T, role models.Role, err error) {
	t.Helper()
	orig := LookupRole
	LookupRole = func(context.Context, string) (models.Role, error) { return role, err }
	t.Cleanup(func() { LookupRole = orig })
}

func authCookie(t *testing.T, email string) *http.Cookie {
	t.Helper()
	token, err := utils.GenerateJWT(email)
	require.NoError(t, err)
	return &http.Cookie{Name: "token", Value: token}
}

func TestAuthRequiredWithoutCookie(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"unauthorized access"}`, w.Body.String())
}

func TestAuthRequiredBadToken(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "pas-un-jwt"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizeWrongRole(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "secret-de-test")
	stubRole(t, models.RoleCustomer, nil)
	r := newRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(authCookie(t, "client@plantnet.app"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"forbidden access"}`, w.Body.String())
}

func TestAuthorizeAdminAllowed(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "secret-de-test")
	stubRole(t, models.RoleAdmin, nil)
	r := newRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(authCookie(t, "admin@plantnet.app"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorizeUnlistedRouteNeedsOnlyAuth(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "secret-de-test")
	// Le rôle n'est même pas consulté pour une route hors table.
	stubRole(t, "", errors.New("ne doit pas être appelé"))
	r := newRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order", nil)
	req.AddCookie(authCookie(t, "client@plantnet.app"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorizeLookupFailureIsForbidden(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "secret-de-test")
	stubRole(t, "", errors.New("redis indisponible"))
	r := newRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(authCookie(t, "admin@plantnet.app"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
