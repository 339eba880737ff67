package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/eventdesk/internal/observability/context"
)

const (
	HeaderUserID     = "X-User-Id"
	contextUserIDKey = "user_id"
)

// UserContext takes the tenant identity set by the upstream auth gateway
// and puts it on the request context.
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(contextUserIDKey, userID)
		c.Request = c.Request.WithContext(obscontext.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

func userIDFromRequest(c *gin.Context) string {
	return obscontext.UserIDFromGin(c)
}
