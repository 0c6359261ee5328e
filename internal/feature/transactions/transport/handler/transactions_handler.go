// Package handler provides the HTTP handlers for the transactions feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/transactions/domain/entity"
	"portfolio_backend/internal/feature/transactions/transport/http/dto"
	"portfolio_backend/internal/feature/transactions/usecase"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// TransactionsUsecase defines the usecase operations for stock
// transactions. Defined by the consumer (handler) per Go convention.
type TransactionsUsecase interface {
	Get(ctx context.Context, id, ownerID uint) (*entity.Transaction, error)
	List(ctx context.Context, ownerID uint) ([]entity.Transaction, error)
	ListForAccount(ctx context.Context, ownerID uint, accountID *uint) ([]entity.Transaction, error)
	Create(ctx context.Context, tx *entity.Transaction) error
	Update(ctx context.Context, tx *entity.Transaction) error
	Delete(ctx context.Context, id, ownerID uint) error
	DeleteBatch(ctx context.Context, ownerID uint, ids []uint) error
	MoveToAccount(ctx context.Context, ownerID uint, ids []uint, accountID *uint) error
	ImportCSV(ctx context.Context, ownerID uint, accountID *uint, r io.Reader) (int, error)
}

// TransactionsHandler processes the HTTP requests for stock transactions.
type TransactionsHandler struct {
	uc TransactionsUsecase
}

// NewTransactionsHandler creates a new TransactionsHandler instance.
func NewTransactionsHandler(uc TransactionsUsecase) *TransactionsHandler {
	return &TransactionsHandler{uc: uc}
}

// ownerID reads the authenticated user's id set by the JWT middleware.
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

// Get handles GET /transaction/:id.
func (h *TransactionsHandler) Get(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid transaction id"})
		return
	}
	tx, err := h.uc.Get(c.Request.Context(), id, owner)
	if err != nil {
		if errors.Is(err, usecase.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "transaction not found"})
			return
		}
		slog.Error("get transaction failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*tx))
}

// List handles GET /transaction/all. With an account_id query parameter
// it narrows to that account's bucket ("null" selects unassigned rows).
func (h *TransactionsHandler) List(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var (
		txs []entity.Transaction
		err error
	)
	switch raw := c.Query("account_id"); raw {
	case "":
		txs, err = h.uc.List(c.Request.Context(), owner)
	case "null":
		txs, err = h.uc.ListForAccount(c.Request.Context(), owner, nil)
	default:
		id64, perr := strconv.ParseUint(raw, 10, 32)
		if perr != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid account_id"})
			return
		}
		accountID := uint(id64)
		txs, err = h.uc.ListForAccount(c.Request.Context(), owner, &accountID)
	}
	if err != nil {
		slog.Error("list transactions failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(txs))
}

// Create handles POST /transaction.
func (h *TransactionsHandler) Create(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	var req dto.TransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	tx, err := req.ToEntity(owner)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.uc.Create(c.Request.Context(), &tx); err != nil {
		if errors.Is(err, usecase.ErrInvalidTransaction) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("create transaction failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusCreated, dto.FromEntity(tx))
}

// Update handles PUT /transaction/:id.
func (h *TransactionsHandler) Update(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid transaction id"})
		return
	}
	var req dto.TransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	tx, err := req.ToEntity(owner)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	tx.ID = id
	if err := h.uc.Update(c.Request.Context(), &tx); err != nil {
		switch {
		case errors.Is(err, usecase.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "transaction not found"})
		case errors.Is(err, usecase.ErrInvalidTransaction):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("update transaction failed", "error", err, "id", id)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(tx))
}

// Delete handles DELETE /transaction/:id.
func (h *TransactionsHandler) Delete(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid transaction id"})
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id, owner); err != nil {
		if errors.Is(err, usecase.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "transaction not found"})
			return
		}
		slog.Error("delete transaction failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// ImportBatch handles POST /transaction/batch: a multipart form with a
// CSV "file" part and an optional "account_id" field. The import is
// all-or-nothing.
func (h *TransactionsHandler) ImportBatch(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var accountID *uint
	if raw := c.PostForm("account_id"); raw != "" {
		id64, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid account_id"})
			return
		}
		id := uint(id64)
		accountID = &id
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "missing csv file"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("open uploaded csv failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.Warn("failed to close uploaded file", "error", err)
		}
	}()

	n, err := h.uc.ImportCSV(c.Request.Context(), owner, accountID, file)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidTransaction) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("csv import failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	slog.Info("csv import successful", "rows", n, "user_id", owner)
	c.JSON(http.StatusCreated, gin.H{"imported": n})
}

// MoveBatch handles PUT /transaction/batch: assigns the listed
// transactions to an account (null clears the assignment).
func (h *TransactionsHandler) MoveBatch(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	var req dto.BatchMoveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.uc.MoveToAccount(c.Request.Context(), owner, req.TransactionIDs, req.NewAccountID); err != nil {
		slog.Error("batch move failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// DeleteBatch handles DELETE /transaction/batch.
func (h *TransactionsHandler) DeleteBatch(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	var req dto.BatchDeleteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.uc.DeleteBatch(c.Request.Context(), owner, req.TransactionIDs); err != nil {
		slog.Error("batch delete failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}
