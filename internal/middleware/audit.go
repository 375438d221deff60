package middleware

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kumusta-app/kumusta-api/internal/models"
)

type auditWriter interface {
	AppendAuditLog(log models.AuditLog)
}

// Audit records an audit entry after a successful request.
func Audit(store auditWriter, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		var username string
		if claims, ok := c.Get(ContextUserKey); ok {
			if user, ok := claims.(*models.JWTClaims); ok {
				username = user.Username
			}
		}

		details, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})

		store.AppendAuditLog(models.AuditLog{
			ID:        uuid.NewString(),
			Username:  username,
			Action:    action,
			Resource:  resource,
			Details:   string(details),
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
			CreatedAt: time.Now().UTC(),
		})
	}
}
