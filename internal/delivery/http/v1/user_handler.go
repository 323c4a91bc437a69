package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
	roleUC domain.RoleUsecase
}

func NewUserHandler(protected *gin.RouterGroup, userUC domain.UserUsecase, roleUC domain.RoleUsecase) {
	handler := &UserHandler{userUC: userUC, roleUC: roleUC}

	protected.GET("/profile", handler.GetProfile)
	protected.PUT("/profile", handler.UpdateProfile)

	users := protected.Group("/users")
	{
		users.GET("/:id", handler.GetUser)
		users.PUT("/:id", handler.UpdateUser)
		users.DELETE("/:id", handler.DeleteUser)
		users.PUT("/:id/role", handler.AssignRole)
	}

	roles := protected.Group("/roles")
	{
		roles.GET("", handler.ListRoles)
		roles.POST("", handler.CreateRole)
	}
}

type AssignRoleRequest struct {
	RoleID int64 `json:"role_id" binding:"required,gt=0"`
}

type CreateRoleRequest struct {
	Name        string  `json:"name" binding:"required,max=50"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// GetProfile godoc
// @Summary      Own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /profile [get]
// @Security     BearerAuth
func (h *UserHandler) GetProfile(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	user, err := h.userUC.GetProfile(c.Request.Context(), actor, actor.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile", user)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Partial update: omitted fields are left unchanged, null clears a field
// @Tags         profile
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /profile [put]
// @Security     BearerAuth
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	h.updateUser(c, actor, actor.UserID)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	user, err := h.userUC.GetProfile(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User", user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.updateUser(c, middleware.ActorFrom(c), id)
}

func (h *UserHandler) updateUser(c *gin.Context, actor *domain.Actor, id int64) {
	var update domain.ProfileUpdate
	if !bindJSON(c, &update) {
		return
	}
	user, err := h.userUC.UpdateProfile(c.Request.Context(), actor, id, update)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.userUC.DeleteUser(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted", nil)
}

// AssignRole godoc
// @Summary      Assign a role (admin)
// @Description  Changes the user's role and revokes all of that user's tokens
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User ID"
// @Param        role  body      AssignRoleRequest  true  "Role"
// @Success      200   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /users/{id}/role [put]
// @Security     BearerAuth
func (h *UserHandler) AssignRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AssignRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userUC.AssignRole(c.Request.Context(), middleware.ActorFrom(c), id, req.RoleID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Role assigned", user)
}

func (h *UserHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleUC.ListRoles(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Roles", roles)
}

func (h *UserHandler) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	role := &domain.Role{Name: req.Name, Description: req.Description}
	if err := h.roleUC.CreateRole(c.Request.Context(), middleware.ActorFrom(c), role); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Role created", role)
}
