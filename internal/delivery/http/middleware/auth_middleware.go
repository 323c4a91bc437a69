package middleware

import (
	"strings"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Authenticate resolves the bearer token and stores the actor on the context.
// Every failure yields the same generic 401.
func Authenticate(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := bearerToken(c.GetHeader("Authorization"))
		if presented == "" {
			c.Error(apperror.Unauthorized("Unauthenticated."))
			c.Abort()
			return
		}

		session, err := authUC.Resolve(c.Request.Context(), presented)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		actor := session.Actor()
		c.Set(string(domain.KeyActor), actor)
		c.Set(string(domain.KeyUserID), actor.UserID)
		c.Set(string(domain.KeyUserRole), actor.Role)
		c.Set(string(domain.KeyAbilities), actor.Abilities)
		c.Set(string(domain.KeyTokenID), actor.TokenID)

		c.Next()
	}
}

// ActorFrom returns the authenticated actor, or nil on public routes.
func ActorFrom(c *gin.Context) *domain.Actor {
	v, ok := c.Get(string(domain.KeyActor))
	if !ok {
		return nil
	}
	actor, _ := v.(*domain.Actor)
	return actor
}

func bearerToken(header string) string {
	scheme, value, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(value)
}
