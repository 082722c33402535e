package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-claims/backend/internal/application/usecase/auth"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
	"github.com/expense-claims/backend/internal/integration/entrypoint/dto"
)

// AuthController handles the switch-user session endpoints.
type AuthController struct {
	switchUserUseCase *auth.SwitchUserUseCase
	listUsersUseCase  *auth.ListUsersUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	switchUserUseCase *auth.SwitchUserUseCase,
	listUsersUseCase *auth.ListUsersUseCase,
) *AuthController {
	return &AuthController{
		switchUserUseCase: switchUserUseCase,
		listUsersUseCase:  listUsersUseCase,
	}
}

// SwitchUser handles POST /auth/switch-user requests.
func (c *AuthController) SwitchUser(ctx *gin.Context) {
	var req dto.SwitchUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	output, err := c.switchUserUseCase.Execute(ctx.Request.Context(), auth.SwitchUserInput{
		Username: req.Username,
	})
	if err != nil {
		var authErr *domainerror.AuthError
		if errors.As(err, &authErr) {
			status := http.StatusBadRequest
			if authErr.Code == domainerror.ErrCodeUserNotFound {
				status = http.StatusNotFound
			}
			ctx.JSON(status, dto.ErrorResponse{
				Error: authErr.Message,
				Code:  string(authErr.Code),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSwitchUserResponse(output))
}

// ListUsers handles GET /users requests.
func (c *AuthController) ListUsers(ctx *gin.Context) {
	users, err := c.listUsersUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve users",
		})
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserListResponse(users))
}
