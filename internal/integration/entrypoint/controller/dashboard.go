package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/application/usecase/dashboard"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
	"github.com/expense-claims/backend/internal/integration/entrypoint/dto"
	"github.com/expense-claims/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles the reporting endpoints.
type DashboardController struct {
	getUseCase *dashboard.GetDashboardUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(getUseCase *dashboard.GetDashboardUseCase) *DashboardController {
	return &DashboardController{getUseCase: getUseCase}
}

// Get handles GET /dashboard requests.
//
// Non-managers always receive their personal dashboard. Managers receive the
// company-wide view by default and may scope to one user with ?user_id=.
func (c *DashboardController) Get(ctx *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	filter, err := dashboard.ParseTimeFilter(ctx.Query("filter"))
	if err != nil {
		var dashErr *domainerror.DashboardError
		if errors.As(err, &dashErr) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: dashErr.Message,
				Code:  string(dashErr.Code),
			})
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid time filter",
		})
		return
	}

	input := dashboard.GetDashboardInput{Filter: filter}
	if claims.IsManager() {
		if userIDStr := ctx.Query("user_id"); userIDStr != "" {
			userID, parseErr := uuid.Parse(userIDStr)
			if parseErr != nil {
				ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
					Error: "Invalid user ID format",
				})
				return
			}
			input.UserID = &userID
		}
	} else {
		actorID := claims.UserID
		input.UserID = &actorID
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute dashboard",
		})
		return
	}

	// The user selector is only rendered for managers.
	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output, claims.IsManager()))
}
