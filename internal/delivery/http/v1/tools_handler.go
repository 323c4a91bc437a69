package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ToolsHandler struct {
	toolsUC domain.ToolsUsecase
}

func NewToolsHandler(protected *gin.RouterGroup, toolsUC domain.ToolsUsecase) {
	handler := &ToolsHandler{toolsUC: toolsUC}

	tools := protected.Group("/tools")
	{
		tools.POST("/cv-builder", handler.BuildCV)
		tools.POST("/ai-job-match", handler.MatchJobs)
		tools.POST("/skill-builder", handler.SkillGaps)
		tools.POST("/quiz/submit", handler.GradeQuiz)
	}
}

// BuildCV godoc
// @Summary      Build CV sections
// @Tags         tools
// @Accept       json
// @Produce      json
// @Param        cv   body      domain.CVBuilderInput  true  "CV content"
// @Success      200  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /tools/cv-builder [post]
// @Security     BearerAuth
func (h *ToolsHandler) BuildCV(c *gin.Context) {
	var req domain.CVBuilderInput
	if !bindJSON(c, &req) {
		return
	}
	response.Success(c, http.StatusOK, "CV sections", h.toolsUC.BuildCV(req))
}

// MatchJobs godoc
// @Summary      Match open jobs
// @Description  Keyword match over open jobs. Skills take precedence over resume text; limit is 1 to 50 (default 10).
// @Tags         tools
// @Accept       json
// @Produce      json
// @Param        match  body      domain.JobMatchInput  true  "Skills or resume text"
// @Success      200    {object}  response.Response
// @Failure      422    {object}  response.Response
// @Router       /tools/ai-job-match [post]
// @Security     BearerAuth
func (h *ToolsHandler) MatchJobs(c *gin.Context) {
	var req domain.JobMatchInput
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.toolsUC.MatchJobs(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Matching jobs", result)
}

func (h *ToolsHandler) SkillGaps(c *gin.Context) {
	var req domain.SkillBuilderInput
	if !bindJSON(c, &req) {
		return
	}
	response.Success(c, http.StatusOK, "Skill gaps", h.toolsUC.SkillGaps(req))
}

func (h *ToolsHandler) GradeQuiz(c *gin.Context) {
	var req domain.QuizSubmission
	if !bindJSON(c, &req) {
		return
	}
	response.Success(c, http.StatusOK, "Quiz graded", h.toolsUC.GradeQuiz(req))
}
