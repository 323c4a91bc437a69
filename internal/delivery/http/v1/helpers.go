package v1

import (
	"errors"
	"strconv"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// bindJSON decodes and validates the body. Validation failures become a 422
// with per-field messages; anything else is a malformed request.
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.Error(apperror.Validation("The given data was invalid.", validation.FormatValidationErrors(verrs)))
		return false
	}
	c.Error(apperror.BadRequest("Malformed JSON request body."))
	return false
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.NotFound("Resource not found."))
		return 0, false
	}
	return id, true
}

func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.Error(apperror.NotFound("Notification not found."))
		return uuid.Nil, false
	}
	return id, true
}

// pageFrom reads page/per_page; bad values fall back to the defaults.
func pageFrom(c *gin.Context) domain.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(domain.DefaultPerPage)))
	return domain.NewPage(page, perPage)
}
