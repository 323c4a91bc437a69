package v1

import (
	"net/http"
	"sync"

	"jobboard-backend/config"
	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	UserUC         domain.UserUsecase
	RoleUC         domain.RoleUsecase
	JobUC          domain.JobUsecase
	CompanyUC      domain.CompanyUsecase
	ApplicationUC  domain.ApplicationUsecase
	SavedJobUC     domain.SavedJobUsecase
	NotificationUC domain.NotificationUsecase
	MentorUC       domain.MentorUsecase
	DashboardUC    domain.DashboardUsecase
	ToolsUC        domain.ToolsUsecase
	HealthUC       usecase.HealthUsecase
	RateLimiter    *middleware.RateLimiter
	Config         *config.Config
}

var configureBinding sync.Once

func NewRouter(deps RouterDeps) *gin.Engine {
	configureBinding.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			validation.Configure(v)
		}
	})

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, deps.Config.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		response.Success(c, code, "System status", status)
	})

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := v1.Group("")
	authLimit := func(c *gin.Context) { c.Next() }
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Middleware(middleware.DefaultRateLimitConfig(deps.Config.RateLimitPerMinute)))
		authLimit = deps.RateLimiter.Middleware(middleware.AuthRateLimitConfig())
	}

	protected := api.Group("")
	protected.Use(middleware.Authenticate(deps.AuthUC))
	{
		NewAuthHandler(api, protected, deps.AuthUC, authLimit)
		NewUserHandler(protected, deps.UserUC, deps.RoleUC)
		NewJobHandler(api, protected, deps.JobUC)
		NewCompanyHandler(api, protected, deps.CompanyUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewSavedJobHandler(protected, deps.SavedJobUC)
		NewNotificationHandler(protected, deps.NotificationUC)
		NewMentorHandler(api, protected, deps.MentorUC)
		NewDashboardHandler(protected, deps.DashboardUC)
		NewToolsHandler(protected, deps.ToolsUC)
	}

	return r
}
