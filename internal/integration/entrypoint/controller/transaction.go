package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/transaction"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase       *transaction.ListTransactionsUseCase
	createUseCase     *transaction.CreateTransactionUseCase
	createManyUseCase *transaction.CreateManyTransactionsUseCase
	getUseCase        *transaction.GetTransactionUseCase
	deleteUseCase     *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	createManyUseCase *transaction.CreateManyTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:       listUseCase,
		createUseCase:     createUseCase,
		createManyUseCase: createManyUseCase,
		getUseCase:        getUseCase,
		deleteUseCase:     deleteUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		OwnerID:   ownerID,
		StartDate: queryWithAlias(ctx, "startDate", "start"),
		EndDate:   queryWithAlias(ctx, "endDate", "end"),
	}

	// Non-numeric values fall back to the defaults
	if page, err := strconv.Atoi(ctx.Query("page")); err == nil {
		input.Page = page
	}
	if limit, err := strconv.Atoi(ctx.Query("limit")); err == nil {
		input.Limit = limit
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Page))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		OwnerID:           ownerID,
		TransactionFields: req.ToFields(),
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// CreateMany handles POST /transactions/bulk requests.
func (c *TransactionController) CreateMany(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	var req dto.CreateManyTransactionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	input := transaction.CreateManyTransactionsInput{
		OwnerID:      ownerID,
		Transactions: make([]transaction.TransactionFields, 0, len(req.Transactions)),
	}
	for _, row := range req.Transactions {
		input.Transactions = append(input.Transactions, row.ToFields())
	}

	output, err := c.createManyUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.TransactionsResponse{
		Transactions: dto.ToTransactionResponses(output.Transactions),
		Count:        len(output.Transactions),
	})
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	transactionID, ok := parseTransactionID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		TransactionID: transactionID,
		OwnerID:       ownerID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	transactionID, ok := parseTransactionID(ctx)
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		OwnerID:       ownerID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseTransactionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
			Code:  string(domainerror.ErrCodeInvalidTransactionID),
		})
		return uuid.Nil, false
	}
	return id, true
}

func queryWithAlias(ctx *gin.Context, key, alias string) string {
	if v := ctx.Query(key); v != "" {
		return v
	}
	return ctx.Query(alias)
}

// handleTransactionError handles transaction errors and returns appropriate HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		response := dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		}
		if txnErr.Index >= 0 {
			index := txnErr.Index
			response.Index = &index
		}
		ctx.JSON(c.getStatusCodeForTransactionError(txnErr.Code), response)
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionKind,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeInvalidTransactionCategory,
		domainerror.ErrCodeInvalidTransactionID,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeEmptyTransactionBatch,
		domainerror.ErrCodeInvalidDateFilter,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeTooManyTransactions:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
