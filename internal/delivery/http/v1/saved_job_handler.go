package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type SavedJobHandler struct {
	savedJobUC domain.SavedJobUsecase
}

func NewSavedJobHandler(protected *gin.RouterGroup, savedJobUC domain.SavedJobUsecase) {
	handler := &SavedJobHandler{savedJobUC: savedJobUC}

	protected.POST("/jobs/:id/save", handler.Save)
	protected.DELETE("/jobs/:id/save", handler.Remove)
	protected.GET("/saved-jobs", handler.List)
}

// Save is idempotent; saving an already saved job returns the existing entry.
func (h *SavedJobHandler) Save(c *gin.Context) {
	jobID, ok := paramID(c, "id")
	if !ok {
		return
	}
	saved, err := h.savedJobUC.Save(c.Request.Context(), middleware.ActorFrom(c), jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job saved", saved)
}

func (h *SavedJobHandler) Remove(c *gin.Context) {
	jobID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.savedJobUC.Remove(c.Request.Context(), middleware.ActorFrom(c), jobID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job removed from saved list", nil)
}

func (h *SavedJobHandler) List(c *gin.Context) {
	result, err := h.savedJobUC.List(c.Request.Context(), middleware.ActorFrom(c), pageFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Saved jobs", result)
}
