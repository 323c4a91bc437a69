package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
}

func NewCompanyHandler(public *gin.RouterGroup, protected *gin.RouterGroup, companyUC domain.CompanyUsecase) {
	handler := &CompanyHandler{companyUC: companyUC}

	publicCompanies := public.Group("/companies")
	{
		publicCompanies.GET("", handler.List)
		publicCompanies.GET("/:id", handler.GetDetails)
	}

	protectedCompanies := protected.Group("/companies")
	{
		protectedCompanies.POST("", handler.Create)
		protectedCompanies.PUT("/:id", handler.Update)
		protectedCompanies.PATCH("/:id", handler.Update)
		protectedCompanies.DELETE("/:id", handler.Delete)
	}
}

type CreateCompanyRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Website     *string `json:"website" binding:"omitempty,url,max=255"`
	Location    *string `json:"location" binding:"omitempty,max=255"`
	Industry    *string `json:"industry" binding:"omitempty,max=255"`
	Size        *string `json:"size" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	LogoPath    *string `json:"logo_path" binding:"omitempty,max=255"`
	LogoURL     *string `json:"logo_url" binding:"omitempty,url,max=255"`
	LinkedinURL *string `json:"linkedin_url" binding:"omitempty,url,max=255"`
	TwitterURL  *string `json:"twitter_url" binding:"omitempty,url,max=255"`
}

// CreateCompany godoc
// @Summary      Create a company
// @Description  Employers and admins. One company per owner.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        company  body      CreateCompanyRequest  true  "Company"
// @Success      201      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /companies [post]
// @Security     BearerAuth
func (h *CompanyHandler) Create(c *gin.Context) {
	var req CreateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}
	company := &domain.Company{
		Name:        req.Name,
		Website:     req.Website,
		Location:    req.Location,
		Industry:    req.Industry,
		Size:        req.Size,
		Description: req.Description,
		LogoPath:    req.LogoPath,
		LogoURL:     req.LogoURL,
		LinkedinURL: req.LinkedinURL,
		TwitterURL:  req.TwitterURL,
	}
	if err := h.companyUC.CreateCompany(c.Request.Context(), middleware.ActorFrom(c), company); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Company created", company)
}

func (h *CompanyHandler) List(c *gin.Context) {
	result, err := h.companyUC.ListCompanies(c.Request.Context(), domain.CompanyFilter{
		Query:    c.Query("q"),
		Location: c.Query("location"),
		Industry: c.Query("industry"),
		Size:     c.Query("size"),
		Page:     pageFrom(c),
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company list", result)
}

func (h *CompanyHandler) GetDetails(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	company, err := h.companyUC.GetCompany(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company details", company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var update domain.CompanyUpdate
	if !bindJSON(c, &update) {
		return
	}
	company, err := h.companyUC.UpdateCompany(c.Request.Context(), middleware.ActorFrom(c), id, update)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company updated", company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.companyUC.DeleteCompany(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company deleted", nil)
}
