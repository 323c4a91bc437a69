package v1

import (
	"net/http"
	"strconv"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.PATCH("/:id", handler.Update)
		protectedJobs.DELETE("/:id", handler.Delete)
	}
}

type CreateJobRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description" binding:"required"`
	Location    *string  `json:"location" binding:"omitempty,max=255"`
	Type        *string  `json:"type" binding:"omitempty,max=50"`
	SalaryMin   *float64 `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax   *float64 `json:"salary_max" binding:"omitempty,gte=0"`
	Tags        []string `json:"tags" binding:"omitempty,dive,max=50"`
	Status      string   `json:"status" binding:"omitempty,oneof=open closed draft"`
	CompanyID   *int64   `json:"company_id" binding:"omitempty,gt=0"`
}

// CreateJob godoc
// @Summary      Create a job
// @Description  Employers and admins only. The job is owned by the caller.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job := &domain.Job{
		CompanyID:   req.CompanyID,
		Title:       req.Title,
		Location:    req.Location,
		Type:        req.Type,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		Tags:        req.Tags,
		Description: req.Description,
		Status:      req.Status,
	}
	if err := h.jobUC.CreateJob(c.Request.Context(), middleware.ActorFrom(c), job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// ListJobs godoc
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        q           query     string  false  "Search title and description"
// @Param        location    query     string  false  "Location contains"
// @Param        type        query     string  false  "Job type"
// @Param        status      query     string  false  "open, closed or draft"
// @Param        company_id  query     int     false  "Company"
// @Param        page        query     int     false  "Page number"
// @Param        per_page    query     int     false  "Page size (max 100)"
// @Success      200         {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	filter := domain.JobFilter{
		Query:    c.Query("q"),
		Location: c.Query("location"),
		Type:     c.Query("type"),
		Status:   c.Query("status"),
		Page:     pageFrom(c),
	}
	if raw := c.Query("company_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.CompanyID = &id
		}
	}

	result, err := h.jobUC.ListJobs(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job list", result)
}

func (h *JobHandler) GetDetails(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job details", job)
}

// UpdateJob godoc
// @Summary      Update a job
// @Description  Owner or admin. Partial: omitted fields are unchanged.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var update domain.JobUpdate
	if !bindJSON(c, &update) {
		return
	}
	job, err := h.jobUC.UpdateJob(c.Request.Context(), middleware.ActorFrom(c), id, update)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.jobUC.DeleteJob(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}
