package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardUC domain.DashboardUsecase
}

func NewDashboardHandler(protected *gin.RouterGroup, dashboardUC domain.DashboardUsecase) {
	handler := &DashboardHandler{dashboardUC: dashboardUC}
	protected.GET("/dashboard/summary", handler.Summary)
}

// Summary godoc
// @Summary      Dashboard totals
// @Description  Totals depend on the caller's role
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /dashboard/summary [get]
// @Security     BearerAuth
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardUC.Summary(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Dashboard summary", summary)
}
