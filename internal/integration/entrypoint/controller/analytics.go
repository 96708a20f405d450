package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/analytics"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// AnalyticsController handles the analytics endpoint.
type AnalyticsController struct {
	getAnalyticsUseCase *analytics.GetAnalyticsUseCase
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(getAnalyticsUseCase *analytics.GetAnalyticsUseCase) *AnalyticsController {
	return &AnalyticsController{
		getAnalyticsUseCase: getAnalyticsUseCase,
	}
}

// Get handles GET /analytics requests.
func (c *AnalyticsController) Get(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	output, err := c.getAnalyticsUseCase.Execute(ctx.Request.Context(), analytics.GetAnalyticsInput{
		OwnerID: ownerID,
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAnalyticsResponse(output.Summary))
}

func (c *AnalyticsController) handleAnalyticsError(ctx *gin.Context, err error) {
	var anlErr *domainerror.AnalyticsError
	if errors.As(err, &anlErr) {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: anlErr.Message,
			Code:  string(anlErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
