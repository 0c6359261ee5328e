package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"portfolio_backend/internal/app/di"
	"portfolio_backend/internal/app/router"
	accountsadapters "portfolio_backend/internal/feature/accounts/adapters"
	accountshandler "portfolio_backend/internal/feature/accounts/transport/handler"
	accountsusecase "portfolio_backend/internal/feature/accounts/usecase"
	authadapters "portfolio_backend/internal/feature/auth/adapters"
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	authusecase "portfolio_backend/internal/feature/auth/usecase"
	portfoliohandler "portfolio_backend/internal/feature/portfolio/transport/handler"
	portfoliousecase "portfolio_backend/internal/feature/portfolio/usecase"
	txadapters "portfolio_backend/internal/feature/transactions/adapters"
	txhandler "portfolio_backend/internal/feature/transactions/transport/handler"
	txusecase "portfolio_backend/internal/feature/transactions/usecase"
	"portfolio_backend/internal/platform/db"
	jwtmw "portfolio_backend/internal/platform/jwt"
	platformredis "portfolio_backend/internal/platform/redis"
)

const tokenLifetime = 24 * time.Hour

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	gormDB := db.OpenDB()

	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		slog.Warn("redis unavailable, running without price cache", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}()
	}

	// Repositories
	userRepo := authadapters.NewUserMySQL(gormDB)
	txRepo := txadapters.NewTransactionRepository(gormDB)
	accountRepo := accountsadapters.NewAccountRepository(gormDB)
	priceReader := di.NewPriceReader(rdb, gormDB)

	// Usecases
	authUC := authusecase.NewAuthUsecase(userRepo, jwtmw.NewGenerator(secret, tokenLifetime))
	txUC := txusecase.NewTransactionsUsecase(txRepo)
	accountUC := accountsusecase.NewAccountsUsecase(accountRepo)
	portfolioUC := portfoliousecase.NewPortfolioUsecase(txRepo, priceReader, accountRepo)

	// Handlers
	authH := authhandler.NewAuthHandler(authUC)
	txH := txhandler.NewTransactionsHandler(txUC)
	accountH := accountshandler.NewAccountsHandler(accountUC)
	portfolioH := portfoliohandler.NewPortfolioHandler(portfolioUC)

	r := router.NewRouter(authH, txH, accountH, portfolioH)

	if err := r.Run(":8080"); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
