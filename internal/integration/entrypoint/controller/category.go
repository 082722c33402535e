package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/application/usecase/category"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
	"github.com/expense-claims/backend/internal/integration/entrypoint/dto"
	"github.com/expense-claims/backend/internal/integration/entrypoint/middleware"
)

// CategoryController handles category endpoints. Listing is open to every
// authenticated user; creation and update are manager operations.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	createUseCase *category.CreateCategoryUseCase
	updateUseCase *category.UpdateCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	// Non-managers only see active categories; the admin view needs all.
	activeOnly := !claims.IsManager()
	if ctx.Query("active_only") == "true" {
		activeOnly = true
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{
		ActiveOnly: activeOnly,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve categories",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	if !requireManager(ctx) {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingCategoryFields),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		Name:                req.Name,
		Description:         req.Description,
		Icon:                req.Icon,
		MaxAmountPerExpense: decimal.NewFromFloat(req.MaxAmountPerExpense),
		MonthlyLimit:        decimal.NewFromFloat(req.MonthlyLimit),
	})
	if err != nil {
		handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// Update handles PUT /categories/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	if !requireManager(ctx) {
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingCategoryFields),
		})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), category.UpdateCategoryInput{
		CategoryID:          categoryID,
		Name:                req.Name,
		Description:         req.Description,
		Icon:                req.Icon,
		MaxAmountPerExpense: decimal.NewFromFloat(req.MaxAmountPerExpense),
		MonthlyLimit:        decimal.NewFromFloat(req.MonthlyLimit),
		IsActive:            isActive,
	})
	if err != nil {
		handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// requireManager enforces the manager role for admin endpoints. It writes
// the error response itself and reports success through the bool.
func requireManager(ctx *gin.Context) bool {
	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return false
	}
	if !claims.IsManager() {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: "manager role required",
			Code:  string(domainerror.ErrCodeManagerRoleRequired),
		})
		return false
	}
	return true
}

// handleCategoryError maps domain category errors onto HTTP status codes.
func handleCategoryError(ctx *gin.Context, err error) {
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		status := http.StatusBadRequest
		if catErr.Code == domainerror.ErrCodeCategoryNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
