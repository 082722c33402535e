package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/application/usecase/audit"
	"github.com/expense-claims/backend/internal/application/usecase/settings"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
	"github.com/expense-claims/backend/internal/integration/entrypoint/dto"
)

// SettingsController handles the manager-only policy and audit endpoints.
type SettingsController struct {
	getUseCase       *settings.GetSettingsUseCase
	updateUseCase    *settings.UpdateSettingsUseCase
	listAuditUseCase *audit.ListAuditLogsUseCase
}

// NewSettingsController creates a new settings controller instance.
func NewSettingsController(
	getUseCase *settings.GetSettingsUseCase,
	updateUseCase *settings.UpdateSettingsUseCase,
	listAuditUseCase *audit.ListAuditLogsUseCase,
) *SettingsController {
	return &SettingsController{
		getUseCase:       getUseCase,
		updateUseCase:    updateUseCase,
		listAuditUseCase: listAuditUseCase,
	}
}

// Get handles GET /settings requests.
func (c *SettingsController) Get(ctx *gin.Context) {
	if !requireManager(ctx) {
		return
	}

	current, err := c.getUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve settings",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(current))
}

// Update handles PUT /settings requests.
func (c *SettingsController) Update(ctx *gin.Context) {
	if !requireManager(ctx) {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), settings.UpdateSettingsInput{
		AutoApprovalThreshold: decimal.NewFromFloat(req.AutoApprovalThreshold),
		AllowedCurrencies:     req.AllowedCurrencies,
		DefaultCurrency:       req.DefaultCurrency,
	})
	if err != nil {
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
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(updated))
}

// ListAuditLogs handles GET /audit-logs requests.
func (c *SettingsController) ListAuditLogs(ctx *gin.Context) {
	if !requireManager(ctx) {
		return
	}

	input := audit.ListAuditLogsInput{}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			input.Limit = limit
		}
	}

	output, err := c.listAuditUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve audit logs",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAuditLogListResponse(output.Entries))
}
