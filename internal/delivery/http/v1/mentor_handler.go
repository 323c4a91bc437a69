package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type MentorHandler struct {
	mentorUC domain.MentorUsecase
}

func NewMentorHandler(public *gin.RouterGroup, protected *gin.RouterGroup, mentorUC domain.MentorUsecase) {
	handler := &MentorHandler{mentorUC: mentorUC}

	public.GET("/mentors", handler.List)
	public.GET("/mentors/:id", handler.GetDetails)

	mentors := protected.Group("/mentors")
	{
		mentors.POST("", handler.Create)
		mentors.PUT("/:id", handler.Update)
		mentors.DELETE("/:id", handler.Delete)
	}
}

type CreateMentorRequest struct {
	UserID      *int64  `json:"user_id" binding:"omitempty,gt=0"`
	Name        string  `json:"name" binding:"required,max=255"`
	Headline    *string `json:"headline" binding:"omitempty,max=255"`
	Bio         *string `json:"bio"`
	Expertise   *string `json:"expertise" binding:"omitempty,max=255"`
	Location    *string `json:"location" binding:"omitempty,max=255"`
	Website     *string `json:"website" binding:"omitempty,url,max=255"`
	LinkedinURL *string `json:"linkedin_url" binding:"omitempty,url,max=255"`
	GithubURL   *string `json:"github_url" binding:"omitempty,url,max=255"`
	AvatarURL   *string `json:"avatar_url" binding:"omitempty,url,max=255"`
}

func (h *MentorHandler) List(c *gin.Context) {
	result, err := h.mentorUC.ListMentors(c.Request.Context(), c.Query("q"), pageFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Mentor list", result)
}

func (h *MentorHandler) GetDetails(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	mentor, err := h.mentorUC.GetMentor(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Mentor details", mentor)
}

func (h *MentorHandler) Create(c *gin.Context) {
	var req CreateMentorRequest
	if !bindJSON(c, &req) {
		return
	}
	mentor := &domain.Mentor{
		UserID:      req.UserID,
		Name:        req.Name,
		Headline:    req.Headline,
		Bio:         req.Bio,
		Expertise:   req.Expertise,
		Location:    req.Location,
		Website:     req.Website,
		LinkedinURL: req.LinkedinURL,
		GithubURL:   req.GithubURL,
		AvatarURL:   req.AvatarURL,
	}
	if err := h.mentorUC.CreateMentor(c.Request.Context(), middleware.ActorFrom(c), mentor); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Mentor created", mentor)
}

func (h *MentorHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var update domain.MentorUpdate
	if !bindJSON(c, &update) {
		return
	}
	mentor, err := h.mentorUC.UpdateMentor(c.Request.Context(), middleware.ActorFrom(c), id, update)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Mentor updated", mentor)
}

func (h *MentorHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.mentorUC.DeleteMentor(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Mentor deleted", nil)
}
