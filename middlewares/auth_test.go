package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eatmove/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(testSecret, roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"accountId": utils.CurrentAccountID(c), "role": utils.CurrentRole(c)})
	})
	r.GET("/open", OptionalAuth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"accountId": utils.CurrentAccountID(c)})
	})
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	r := newRouter()
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/protected", "").Code)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	r := newRouter()
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/protected", "not.a.jwt").Code)
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	r := newRouter()
	token, err := utils.GenerateToken(1, "member", "other-secret", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/protected", token).Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	r := newRouter()
	token, err := utils.GenerateToken(1, "member", testSecret, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/protected", token).Code)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	r := newRouter()
	token, err := utils.GenerateToken(7, "member", testSecret, time.Hour)
	require.NoError(t, err)

	w := doGet(r, "/protected", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accountId":7`)
	assert.Contains(t, w.Body.String(), `"role":"member"`)
}

func TestAuthMiddlewareEnforcesRole(t *testing.T) {
	r := newRouter("restaurant")

	memberToken, err := utils.GenerateToken(1, "member", testSecret, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doGet(r, "/protected", memberToken).Code)

	partnerToken, err := utils.GenerateToken(2, "restaurant", testSecret, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doGet(r, "/protected", partnerToken).Code)
}

func TestOptionalAuthNeverBlocks(t *testing.T) {
	r := newRouter()

	// anonymous passes with a zero account
	w := doGet(r, "/open", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accountId":0`)

	// broken token is ignored, not rejected
	w = doGet(r, "/open", "broken")
	assert.Equal(t, http.StatusOK, w.Code)

	// valid token attaches the account
	token, err := utils.GenerateToken(9, "member", testSecret, time.Hour)
	require.NoError(t, err)
	w = doGet(r, "/open", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accountId":9`)
}
