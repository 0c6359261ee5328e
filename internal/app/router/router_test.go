package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountshandler "portfolio_backend/internal/feature/accounts/transport/handler"
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	portfoliohandler "portfolio_backend/internal/feature/portfolio/transport/handler"
	transactionshandler "portfolio_backend/internal/feature/transactions/transport/handler"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter() *gin.Engine {
	return NewRouter(
		authhandler.NewAuthHandler(nil),
		transactionshandler.NewTransactionsHandler(nil),
		accountshandler.NewAccountsHandler(nil),
		portfoliohandler.NewPortfolioHandler(nil),
	)
}

func TestRouter_HealthIsPublic(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter()

	for _, path := range []string{
		"/transaction/all",
		"/transaction/stats",
		"/transaction/1",
		"/investment_account/all",
		"/investment_account/1/stats",
		"/investment_account/1/acb",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRouter_ValidTokenPassesMiddleware(t *testing.T) {
	t.Setenv(jwtmw.EnvKeyJWTSecret, "test-secret")

	token, err := jwtmw.NewGenerator("test-secret", time.Hour).GenerateToken(1, "user@example.com")
	require.NoError(t, err)

	r := newTestRouter()

	// A non-numeric id is rejected by the handler itself, after the
	// middleware admitted the token.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transaction/abc", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
