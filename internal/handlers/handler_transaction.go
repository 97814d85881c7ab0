package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for the transaction store.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// RegisterTransactionRoutes registers the transaction, balance and description routes.
func RegisterTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(ts)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("/", h.listTransactions)
		transactions.POST("/", h.createTransaction)
		transactions.PUT("/:id", h.updateTransaction)
	}

	rg.GET("/balance/", h.getBalance)

	descriptions := rg.Group("/descriptions")
	{
		descriptions.GET("/", h.listDescriptions)
		descriptions.GET("/suggest", h.suggestDescriptions)
	}
}

// listTransactions godoc
// @Summary List transactions
// @Description Returns stored transactions, newest first
// @Tags transactions
// @Produce json
// @Param skip query int false "Number of transactions to skip" default(0)
// @Param limit query int false "Maximum number of transactions" default(100)
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /transactions/ [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, "query parameters", err)
		return
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	logger.Debug("Transactions listed", slog.Int("count", len(txns)), slog.Int("skip", params.Skip), slog.Int("limit", params.Limit))
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Stores a new credit or debit. created_at defaults to today.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to create transaction"
// @Router /transactions/ [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "request format", err)
		return
	}

	tx, err := h.transactionService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created", slog.String("transaction_id", tx.TransactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Replaces type, amount and description. created_at is kept when omitted.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Replacement values"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to update transaction"
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")
	logger = logger.With(slog.String("transaction_id", transactionID))

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "request format", err)
		return
	}

	tx, err := h.transactionService.UpdateTransaction(c.Request.Context(), transactionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found")
			c.JSON(http.StatusNotFound, gin.H{"detail": "Transaction not found"})
			return
		}
		respondServiceError(c, logger, err, "Failed to update transaction")
		return
	}

	logger.Info("Transaction updated")
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

// getBalance godoc
// @Summary Current balance
// @Description Sum of credits minus sum of debits over every stored transaction
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Router /balance/ [get]
func (h *transactionHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balance, err := h.transactionService.GetBalance(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute balance")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// listDescriptions godoc
// @Summary Distinct descriptions
// @Tags descriptions
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} map[string]string "Failed to list descriptions"
// @Router /descriptions/ [get]
func (h *transactionHandler) listDescriptions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	descriptions, err := h.transactionService.ListDescriptions(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list descriptions")
		return
	}
	if descriptions == nil {
		descriptions = []string{}
	}
	c.JSON(http.StatusOK, descriptions)
}

// suggestDescriptions godoc
// @Summary Description suggestions
// @Description Previously used descriptions containing q, case-insensitively
// @Tags descriptions
// @Produce json
// @Param q query string false "Partial description"
// @Success 200 {array} string
// @Failure 500 {object} map[string]string "Failed to suggest descriptions"
// @Router /descriptions/suggest [get]
func (h *transactionHandler) suggestDescriptions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	suggestions, err := h.transactionService.SuggestDescriptions(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to suggest descriptions")
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	c.JSON(http.StatusOK, suggestions)
}
