package v1

import (
	"net/http"

	"go-jobtrack-backend/internal/delivery/http/response"
	"go-jobtrack-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsUC domain.AnalyticsUsecase
}

// NewAnalyticsHandler registers the analytics route
func NewAnalyticsHandler(r *gin.RouterGroup, analyticsUC domain.AnalyticsUsecase) {
	handler := &AnalyticsHandler{analyticsUC: analyticsUC}
	r.GET("/analytics", handler.Summary)
}

// Summary godoc
// @Summary      Analytics summary
// @Description  Derived statistics over the current user's applications. Rates are null when their denominator is zero.
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.AnalyticsSummary}
// @Router       /analytics [get]
// @Security     BearerAuth
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	summary, err := h.analyticsUC.Compute(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Analytics computed", summary)
}
