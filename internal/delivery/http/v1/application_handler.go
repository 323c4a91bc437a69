package v1

import (
	"fmt"
	"net/http"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	jobs := protected.Group("/jobs")
	{
		jobs.POST("/:id/apply", handler.Apply)
		jobs.GET("/:id/applications", handler.ListForJob)
		jobs.GET("/:id/applications/export", handler.Export)
	}

	applications := protected.Group("/applications")
	{
		applications.GET("", handler.ListMine)
		applications.GET("/:id", handler.GetDetails)
		applications.PATCH("/:id/status", handler.UpdateStatus)
		applications.DELETE("/:id", handler.Withdraw)
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending reviewed accepted rejected"`
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Creates the caller's application or updates the existing one. The employer is notified on the first submission only.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      201  {object}  response.Response  "First submission"
// @Success      200  {object}  response.Response  "Existing application updated"
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var fields domain.ApplicationFields
	if !bindJSON(c, &fields) {
		return
	}

	result, err := h.applicationUC.Submit(c.Request.Context(), middleware.ActorFrom(c), jobID, fields)
	if err != nil {
		c.Error(err)
		return
	}

	if result.WasFirstSubmission {
		response.Success(c, http.StatusCreated, "Application submitted", result)
		return
	}
	response.Success(c, http.StatusOK, "Application updated", result)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	result, err := h.applicationUC.MyApplications(c.Request.Context(), middleware.ActorFrom(c), pageFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "My applications", result)
}

// ListForJob godoc
// @Summary      Applications for a job
// @Tags         applications
// @Produce      json
// @Param        id        path      int  true   "Job ID"
// @Param        page      query     int  false  "Page number"
// @Param        per_page  query     int  false  "Page size"
// @Success      200       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Router       /jobs/{id}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	jobID, ok := paramID(c, "id")
	if !ok {
		return
	}
	result, err := h.applicationUC.ListForJob(c.Request.Context(), middleware.ActorFrom(c), jobID, pageFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job applications", result)
}

// Export godoc
// @Summary      Export applications
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id      path   int     true   "Job ID"
// @Param        format  query  string  false  "xlsx (default) or csv"
// @Success      200
// @Failure      403     {object}  response.Response
// @Router       /jobs/{id}/applications/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Export(c *gin.Context) {
	jobID, ok := paramID(c, "id")
	if !ok {
		return
	}
	export, err := h.applicationUC.ExportForJob(c.Request.Context(), middleware.ActorFrom(c), jobID, c.Query("format"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Content)
}

func (h *ApplicationHandler) GetDetails(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	app, err := h.applicationUC.GetApplication(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application", app)
}

// UpdateStatus godoc
// @Summary      Review an application
// @Description  Job owner or admin. Owners may only move forward: pending to reviewed, accepted or rejected; reviewed to accepted or rejected.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path      int                  true  "Application ID"
// @Param        status  body      UpdateStatusRequest  true  "New status"
// @Success      200     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      422     {object}  response.Response
// @Router       /applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	app, err := h.applicationUC.UpdateStatus(c.Request.Context(), middleware.ActorFrom(c), id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", app)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.applicationUC.Withdraw(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application withdrawn", nil)
}
