package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/config"
	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/application/usecase/expense"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
	"github.com/expense-claims/backend/internal/integration/entrypoint/dto"
	"github.com/expense-claims/backend/internal/integration/entrypoint/middleware"
)

const expenseDateLayout = "2006-01-02"

// ExpenseController handles expense lifecycle endpoints.
type ExpenseController struct {
	listUseCase     *expense.ListExpensesUseCase
	getUseCase      *expense.GetExpenseUseCase
	createUseCase   *expense.CreateExpenseUseCase
	updateUseCase   *expense.UpdateExpenseUseCase
	deleteUseCase   *expense.DeleteExpenseUseCase
	submitUseCase   *expense.SubmitExpenseUseCase
	approveUseCase  *expense.ApproveExpenseUseCase
	rejectUseCase   *expense.RejectExpenseUseCase
	markPaidUseCase *expense.MarkPaidUseCase
	validateUseCase *expense.ValidateExpenseUseCase
	cfg             *config.ExpenseConfig
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	listUseCase *expense.ListExpensesUseCase,
	getUseCase *expense.GetExpenseUseCase,
	createUseCase *expense.CreateExpenseUseCase,
	updateUseCase *expense.UpdateExpenseUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
	submitUseCase *expense.SubmitExpenseUseCase,
	approveUseCase *expense.ApproveExpenseUseCase,
	rejectUseCase *expense.RejectExpenseUseCase,
	markPaidUseCase *expense.MarkPaidUseCase,
	validateUseCase *expense.ValidateExpenseUseCase,
	cfg *config.ExpenseConfig,
) *ExpenseController {
	return &ExpenseController{
		listUseCase:     listUseCase,
		getUseCase:      getUseCase,
		createUseCase:   createUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		submitUseCase:   submitUseCase,
		approveUseCase:  approveUseCase,
		rejectUseCase:   rejectUseCase,
		markPaidUseCase: markPaidUseCase,
		validateUseCase: validateUseCase,
		cfg:             cfg,
	}
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	filter := adapter.ExpenseFilter{
		SearchTerm:     ctx.Query("search"),
		SortBy:         adapter.SortByExpenseDate,
		SortDescending: true,
	}

	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.ExpenseStatus(statusStr)
		if !entity.IsValidExpenseStatus(status) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid status filter",
			})
			return
		}
		filter.Status = &status
	}
	if categoryIDStr := ctx.Query("category_id"); categoryIDStr != "" {
		if id, err := uuid.Parse(categoryIDStr); err == nil {
			filter.CategoryID = &id
		}
	}
	if userIDStr := ctx.Query("user_id"); userIDStr != "" {
		if id, err := uuid.Parse(userIDStr); err == nil {
			filter.UserID = &id
		}
	}
	if fromStr := ctx.Query("date_from"); fromStr != "" {
		if from, err := time.Parse(expenseDateLayout, fromStr); err == nil {
			filter.DateFrom = &from
		}
	}
	if toStr := ctx.Query("date_to"); toStr != "" {
		if to, err := time.Parse(expenseDateLayout, toStr); err == nil {
			end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
			filter.DateTo = &end
		}
	}
	if minStr := ctx.Query("amount_min"); minStr != "" {
		if min, err := decimal.NewFromString(minStr); err == nil {
			filter.AmountMin = &min
		}
	}
	if maxStr := ctx.Query("amount_max"); maxStr != "" {
		if max, err := decimal.NewFromString(maxStr); err == nil {
			filter.AmountMax = &max
		}
	}
	if sortBy := ctx.Query("sort_by"); sortBy != "" {
		filter.SortBy = adapter.ExpenseSortField(sortBy)
	}
	if sortDir := ctx.Query("sort_dir"); sortDir != "" {
		filter.SortDescending = sortDir != "asc"
	}

	pagination := adapter.ExpensePagination{
		Page:     1,
		PageSize: c.cfg.DefaultPageSize,
	}
	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			pagination.Page = page
		}
	}
	if sizeStr := ctx.Query("page_size"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil && size > 0 {
			pagination.PageSize = size
		}
	}
	if pagination.PageSize > c.cfg.MaxPageSize {
		pagination.PageSize = c.cfg.MaxPageSize
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), expense.ListExpensesInput{
		Filter:     filter,
		Pagination: pagination,
		ActorID:    claims.UserID,
		IsManager:  claims.IsManager(),
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve expenses",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output))
}

// Get handles GET /expenses/:id requests.
func (c *ExpenseController) Get(ctx *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}
	expenseID, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), expense.GetExpenseInput{
		ExpenseID: expenseID,
		ActorID:   claims.UserID,
		IsManager: claims.IsManager(),
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseDetailResponse(output))
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingExpenseFields),
		})
		return
	}

	input, ok := c.buildExpenseInput(ctx, req.Title, req.Description, req.Amount, req.Currency, req.CategoryID, req.ExpenseDate)
	if !ok {
		return
	}
	input.UserID = claims.UserID

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(output.Expense))
}

// Update handles PUT /expenses/:id requests.
func (c *ExpenseController) Update(ctx *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}
	expenseID, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingExpenseFields),
		})
		return
	}

	base, ok := c.buildExpenseInput(ctx, req.Title, req.Description, req.Amount, req.Currency, req.CategoryID, req.ExpenseDate)
	if !ok {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), expense.UpdateExpenseInput{
		ExpenseID:   expenseID,
		ActorID:     claims.UserID,
		Title:       base.Title,
		Description: base.Description,
		Amount:      base.Amount,
		Currency:    base.Currency,
		CategoryID:  base.CategoryID,
		ExpenseDate: base.ExpenseDate,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}
	expenseID, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{
		ExpenseID: expenseID,
		ActorID:   claims.UserID,
		IsManager: claims.IsManager(),
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Submit handles POST /expenses/:id/submit requests.
func (c *ExpenseController) Submit(ctx *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}
	expenseID, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	output, err := c.submitUseCase.Execute(ctx.Request.Context(), expense.SubmitExpenseInput{
		ExpenseID: expenseID,
		ActorID:   claims.UserID,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// Approve handles POST /expenses/:id/approve requests.
func (c *ExpenseController) Approve(ctx *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}
	expenseID, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	// The body is optional; an absent body means approval without notes.
	var req dto.ApproveExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		req = dto.ApproveExpenseRequest{}
	}

	output, err := c.approveUseCase.Execute(ctx.Request.Context(), expense.ApproveExpenseInput{
		ExpenseID: expenseID,
		ActorID:   claims.UserID,
		IsManager: claims.IsManager(),
		Notes:     req.Notes,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// Reject handles POST /expenses/:id/reject requests.
func (c *ExpenseController) Reject(ctx *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}
	expenseID, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	var req dto.RejectExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "rejection reason is required",
			Code:  string(domainerror.ErrCodeRejectionReasonRequired),
		})
		return
	}

	output, err := c.rejectUseCase.Execute(ctx.Request.Context(), expense.RejectExpenseInput{
		ExpenseID: expenseID,
		ActorID:   claims.UserID,
		IsManager: claims.IsManager(),
		Reason:    req.Reason,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// MarkPaid handles POST /expenses/:id/pay requests.
func (c *ExpenseController) MarkPaid(ctx *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}
	expenseID, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	output, err := c.markPaidUseCase.Execute(ctx.Request.Context(), expense.MarkPaidInput{
		ExpenseID: expenseID,
		ActorID:   claims.UserID,
		IsManager: claims.IsManager(),
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// Validate handles POST /expenses/validate requests. It runs the admission
// checks without storing anything.
func (c *ExpenseController) Validate(ctx *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	var req dto.ValidateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingExpenseFields),
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}
	expenseDate, err := time.Parse(expenseDateLayout, req.ExpenseDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
		})
		return
	}

	input := expense.ValidateExpenseInput{
		UserID:      claims.UserID,
		Amount:      decimal.NewFromFloat(req.Amount),
		Currency:    c.currencyOrDefault(req.Currency),
		CategoryID:  categoryID,
		ExpenseDate: expenseDate,
	}
	if req.ExpenseID != nil && *req.ExpenseID != "" {
		if id, parseErr := uuid.Parse(*req.ExpenseID); parseErr == nil {
			input.ExcludeExpenseID = &id
		}
	}

	if err := c.validateUseCase.Execute(ctx.Request.Context(), input); err != nil {
		var expErr *domainerror.ExpenseError
		if errors.As(err, &expErr) {
			ctx.JSON(http.StatusOK, dto.ValidateExpenseResponse{
				Valid: false,
				Error: expErr.Message,
				Code:  string(expErr.Code),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ValidateExpenseResponse{Valid: true})
}

// buildExpenseInput parses the shared create/update fields. It writes the
// error response itself and reports success through the bool.
func (c *ExpenseController) buildExpenseInput(ctx *gin.Context, title, description string, amount float64, currency, categoryIDStr, dateStr string) (expense.CreateExpenseInput, bool) {
	categoryID, err := uuid.Parse(categoryIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return expense.CreateExpenseInput{}, false
	}

	expenseDate, err := time.Parse(expenseDateLayout, dateStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
		})
		return expense.CreateExpenseInput{}, false
	}

	return expense.CreateExpenseInput{
		Title:       title,
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
		Currency:    c.currencyOrDefault(currency),
		CategoryID:  categoryID,
		ExpenseDate: expenseDate,
	}, true
}

func (c *ExpenseController) currencyOrDefault(currency string) string {
	if currency == "" {
		return c.cfg.DefaultCurrency
	}
	return currency
}

// handleExpenseError maps domain expense errors onto HTTP status codes by
// error class: validation 400, state 409, permission 403, not found 404.
func (c *ExpenseController) handleExpenseError(ctx *gin.Context, err error) {
	var expErr *domainerror.ExpenseError
	if errors.As(err, &expErr) {
		ctx.JSON(statusForExpenseCode(expErr.Code), dto.ErrorResponse{
			Error: expErr.Message,
			Code:  string(expErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func statusForExpenseCode(code domainerror.ExpenseErrorCode) int {
	switch {
	case code.IsValidationCode():
		return http.StatusBadRequest
	case code.IsStateCode():
		return http.StatusConflict
	case code.IsPermissionCode():
		return http.StatusForbidden
	case code.IsNotFoundCode():
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func parseExpenseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid expense ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func unauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
