// Package router assembles the HTTP routes of the API server.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	accountshandler "portfolio_backend/internal/feature/accounts/transport/handler"
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	portfoliohandler "portfolio_backend/internal/feature/portfolio/transport/handler"
	transactionshandler "portfolio_backend/internal/feature/transactions/transport/handler"
	"portfolio_backend/internal/platform/http/handler"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// NewRouter wires every endpoint. Everything except the health check,
// signup and login sits behind the JWT middleware.
func NewRouter(auth *authhandler.AuthHandler, transactions *transactionshandler.TransactionsHandler,
	accounts *accountshandler.AccountsHandler, portfolio *portfoliohandler.PortfolioHandler) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/healthz", handler.Health)
	r.POST("/signup", auth.Signup)
	r.POST("/login", auth.Login)

	authed := r.Group("/")
	authed.Use(jwtmw.AuthRequired())
	{
		tx := authed.Group("/transaction")
		tx.GET("/all", transactions.List)
		tx.GET("/stats", portfolio.Stats)
		tx.GET("/:id", transactions.Get)
		tx.POST("", transactions.Create)
		tx.PUT("/:id", transactions.Update)
		tx.DELETE("/:id", transactions.Delete)
		tx.POST("/batch", transactions.ImportBatch)
		tx.PUT("/batch", transactions.MoveBatch)
		tx.DELETE("/batch", transactions.DeleteBatch)

		acct := authed.Group("/investment_account")
		acct.GET("/all", accounts.List)
		acct.GET("/:id", accounts.Get)
		acct.POST("", accounts.Create)
		acct.PUT("/:id", accounts.Update)
		acct.DELETE("/:id", accounts.Delete)
		acct.GET("/:id/stats", portfolio.AccountStats)
		acct.GET("/:id/acb", portfolio.AccountACB)
	}

	return r
}
