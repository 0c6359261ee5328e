// Package handler provides the HTTP layer for the portfolio valuation
// endpoints.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/portfolio/transport/http/dto"
	"portfolio_backend/internal/feature/portfolio/usecase"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// PortfolioUsecase defines what the handler needs from the valuation
// layer.
type PortfolioUsecase interface {
	BookCost(ctx context.Context, scope usecase.Scope) (string, error)
	MarketValue(ctx context.Context, scope usecase.Scope) (usecase.MarketValue, error)
	AdjustedCostBase(ctx context.Context, ownerID, accountID uint) (map[string]string, error)
}

// PortfolioHandler serves the derived portfolio figures.
type PortfolioHandler struct {
	uc PortfolioUsecase
}

// NewPortfolioHandler creates a new PortfolioHandler instance.
func NewPortfolioHandler(uc PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

func ownerID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(jwtmw.ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// stats computes and writes the combined book cost / market value
// payload for one scope.
func (h *PortfolioHandler) stats(c *gin.Context, scope usecase.Scope) {
	bookCost, err := h.uc.BookCost(c.Request.Context(), scope)
	if err != nil {
		slog.Error("book cost failed", "error", err, "owner_id", scope.OwnerID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	mv, err := h.uc.MarketValue(c.Request.Context(), scope)
	if err != nil {
		slog.Error("market value failed", "error", err, "owner_id", scope.OwnerID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewStatsResponse(bookCost, mv))
}

// Stats handles GET /transaction/stats: the valuation across all of the
// caller's transactions.
func (h *PortfolioHandler) Stats(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	h.stats(c, usecase.Scope{OwnerID: owner})
}

// AccountStats handles GET /investment_account/:id/stats: the valuation
// narrowed to one account.
func (h *PortfolioHandler) AccountStats(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid account id"})
		return
	}
	h.stats(c, usecase.AccountScope(owner, id))
}

// AccountACB handles GET /investment_account/:id/acb. An inconsistent
// ledger (a sell that was never backed by a buy) is the client's data
// problem, reported as 422.
func (h *PortfolioHandler) AccountACB(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid account id"})
		return
	}
	acbs, err := h.uc.AdjustedCostBase(c.Request.Context(), owner, id)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidLedgerState) {
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("adjusted cost base failed", "error", err, "account_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.ACBResponse{AdjustCostBase: acbs})
}
