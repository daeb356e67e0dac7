package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/interview-coach/internal/apperror"
	"github.com/lshigami/interview-coach/internal/dto"
	"github.com/lshigami/interview-coach/internal/model"
	"github.com/lshigami/interview-coach/internal/service"
	"github.com/rs/zerolog/log"
)

const currentUserKey = "currentUser"

type AuthMiddleware struct {
	authService service.AuthService
}

func NewAuthMiddleware(authService service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAuth rejects requests without a valid "Authorization: Bearer <access>"
// header and stores the authenticated user on the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		user, err := m.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			var appErr *apperror.Error
			if errors.As(err, &appErr) && appErr.Kind == apperror.KindUnauthorized {
				c.AbortWithStatusJSON(apperror.StatusCode(appErr.Kind), dto.ErrorResponse{Error: appErr.Message})
				return
			}
			log.Error().Err(err).Msg("RequireAuth: authentication failed")
			c.AbortWithStatusJSON(apperror.StatusCode(apperror.KindInternal), dto.ErrorResponse{Error: "internal server error"})
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// CurrentUser returns the user set by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

func CurrentUserID(c *gin.Context) uint {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}
