package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-contacts/internal/observability"
	"go.uber.org/zap"
)

// Audit actions
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
	AuditActionImport = "import"
)

// AuditMiddleware logs successful write operations to the audit logger.
// Request bodies are never logged since they carry contact phone numbers.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut && method != http.MethodDelete && method != http.MethodPatch {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/v1/health") || strings.HasPrefix(path, "/metrics") {
			c.Next()
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		userID, _ := UserID(c)
		observability.Logger().Named("audit").Info("write operation",
			zap.String("action", mapRequestToAction(method, path)),
			zap.String("resource", extractResourceFromPath(path)),
			zap.String("resource_id", extractResourceID(c)),
			zap.String("user_id", userID),
			zap.String("ip_address", c.ClientIP()),
			zap.String("request_id", GetRequestID(c)),
			zap.Int("status", status),
		)
	}
}

// mapRequestToAction maps an HTTP method and path to an audit action
func mapRequestToAction(method, path string) string {
	if method == http.MethodPost && strings.HasSuffix(path, "/import") {
		return AuditActionImport
	}
	switch method {
	case http.MethodPost:
		return AuditActionCreate
	case http.MethodDelete:
		return AuditActionDelete
	default:
		return AuditActionUpdate
	}
}

// extractResourceFromPath extracts the resource type from the request path
func extractResourceFromPath(path string) string {
	path = strings.TrimPrefix(path, "/v1/")
	switch {
	case strings.HasPrefix(path, "groups/") && strings.HasSuffix(path, "/import"):
		return "contacts"
	case strings.HasPrefix(path, "import-configs"):
		return "import_config"
	case strings.HasPrefix(path, "import/"):
		return "import"
	}

	parts := strings.Split(path, "/")
	if parts[0] == "" {
		return "unknown"
	}
	return parts[0]
}

// extractResourceID extracts the resource identifier from route params
func extractResourceID(c *gin.Context) string {
	if id := c.Param("config_id"); id != "" {
		return id
	}
	if id := c.Param("group_id"); id != "" {
		return id
	}
	return ""
}
