// Package handler provides the HTTP layer for the accounts feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/accounts/domain/entity"
	"portfolio_backend/internal/feature/accounts/transport/http/dto"
	"portfolio_backend/internal/feature/accounts/usecase"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// AccountsUsecase defines what the handler needs from the business
// layer.
type AccountsUsecase interface {
	Get(ctx context.Context, id, ownerID uint) (*entity.Account, error)
	List(ctx context.Context, ownerID uint) ([]entity.Account, error)
	Create(ctx context.Context, account *entity.Account) error
	Update(ctx context.Context, account *entity.Account) error
	Delete(ctx context.Context, id, ownerID uint) error
}

// AccountsHandler processes the HTTP requests for investment accounts.
type AccountsHandler struct {
	uc AccountsUsecase
}

// NewAccountsHandler creates a new AccountsHandler instance.
func NewAccountsHandler(uc AccountsUsecase) *AccountsHandler {
	return &AccountsHandler{uc: uc}
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

// Get handles GET /investment_account/:id.
func (h *AccountsHandler) Get(c *gin.Context) {
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
	account, err := h.uc.Get(c.Request.Context(), id, owner)
	if err != nil {
		if errors.Is(err, usecase.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "account not found"})
			return
		}
		slog.Error("get account failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*account))
}

// List handles GET /investment_account/all.
func (h *AccountsHandler) List(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	accounts, err := h.uc.List(c.Request.Context(), owner)
	if err != nil {
		slog.Error("list accounts failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(accounts))
}

// Create handles POST /investment_account.
func (h *AccountsHandler) Create(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	var req dto.AccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	account := req.ToEntity(owner)
	if err := h.uc.Create(c.Request.Context(), &account); err != nil {
		if errors.Is(err, usecase.ErrInvalidAccount) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("create account failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusCreated, dto.FromEntity(account))
}

// Update handles PUT /investment_account/:id.
func (h *AccountsHandler) Update(c *gin.Context) {
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
	var req dto.AccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	account := req.ToEntity(owner)
	account.ID = id
	if err := h.uc.Update(c.Request.Context(), &account); err != nil {
		switch {
		case errors.Is(err, usecase.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "account not found"})
		case errors.Is(err, usecase.ErrInvalidAccount):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("update account failed", "error", err, "id", id)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(account))
}

// Delete handles DELETE /investment_account/:id. The account's assigned
// transactions are removed with it.
func (h *AccountsHandler) Delete(c *gin.Context) {
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
	if err := h.uc.Delete(c.Request.Context(), id, owner); err != nil {
		if errors.Is(err, usecase.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "account not found"})
			return
		}
		slog.Error("delete account failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}
