package middleware

import (
	"bytes"
	"io"
	"strings"

	"github.com/rajpratap-1411/personal-finance-dashboard/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditMiddleware records mutating requests of authenticated users.
// Read-only requests are skipped to keep the trail small.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// capture the body before handlers consume it
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		if c.Request.Method == "GET" || c.Request.Method == "HEAD" {
			return
		}

		var userID uint
		if v, ok := c.Get("currentUser"); ok {
			if user, ok := v.(*models.User); ok && user != nil {
				userID = user.ID
			}
		}
		if userID == 0 {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if len(bodyBytes) > 0 && len(bodyBytes) < 1024 && !sensitiveBody(path) {
			action += " " + string(bodyBytes)
		}

		entry := models.AuditLog{
			UserID:    &userID,
			Method:    c.Request.Method,
			Path:      path,
			Action:    action,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}

		_ = db.Create(&entry).Error
	}
}

// sensitiveBody reports whether a request body may carry credentials.
// Those bodies never reach the trail; only method and path are kept.
func sensitiveBody(path string) bool {
	return strings.Contains(path, "password")
}
