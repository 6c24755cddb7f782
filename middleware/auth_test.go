package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carrent/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(), func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": id})
	})
	r.GET("/staff", JWTAuthMiddleware(), RequireStaff(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := authRouter()

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(t, r, "/protected", "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := doRequest(t, r, "/protected", "Token abc")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(t, r, "/protected", "Bearer not.a.jwt")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := utils.GenerateToken("3", "test@example.com", "customer", -time.Minute)
		require.NoError(t, err)
		w := doRequest(t, r, "/protected", "Bearer "+token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := utils.GenerateToken("3", "test@example.com", "customer", time.Hour)
		require.NoError(t, err)
		w := doRequest(t, r, "/protected", "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"userId":3`)
	})
}

func TestRequireStaff(t *testing.T) {
	r := authRouter()

	customer, err := utils.GenerateToken("3", "test@example.com", "customer", time.Hour)
	require.NoError(t, err)
	w := doRequest(t, r, "/staff", "Bearer "+customer)
	require.Equal(t, http.StatusForbidden, w.Code)

	staff, err := utils.GenerateToken("7", "staff@example.com", "staff", time.Hour)
	require.NoError(t, err)
	w = doRequest(t, r, "/staff", "Bearer "+staff)
	require.Equal(t, http.StatusOK, w.Code)
}
