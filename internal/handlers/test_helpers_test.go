package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-contacts/internal/config"
	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/middleware"
	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/prefeitura-rio/app-contacts/internal/services"
	"github.com/stretchr/testify/require"
)

const (
	testAdminGroup = "contacts:admin"
	testUser       = "user-1"
	testGroupID    = "group-1"
)

func init() {
	gin.SetMode(gin.TestMode)
	if config.AppConfig == nil {
		config.AppConfig = &config.Config{
			AdminGroup:        testAdminGroup,
			ImportMaxRows:     100,
			ImportMaxFileSize: 1 << 20,
			ImportRateLimit:   0,
			RedisTTL:          time.Minute,
		}
	}
}

// createTestJWT creates a fake JWT token for testing
func createTestJWT(claims models.JWTClaims) string {
	claimsJSON, _ := json.Marshal(claims)
	claimsB64 := base64.RawURLEncoding.EncodeToString(claimsJSON)

	// Create a fake JWT (header.payload.signature)
	return "eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9." + claimsB64 + ".fake-signature"
}

// createUserClaims creates JWT claims for a regular user
func createUserClaims(sub string) models.JWTClaims {
	return models.JWTClaims{SUB: sub, ISS: "test-issuer"}
}

// createAdminClaims creates JWT claims with the admin role
func createAdminClaims(sub string) models.JWTClaims {
	claims := createUserClaims(sub)
	claims.RealmAccess.Roles = []string{testAdminGroup}
	return claims
}

// testServer wires the handlers over in-memory storage
type testServer struct {
	router  *gin.Engine
	store   *services.MemoryContactStore
	configs *services.ImportConfigService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newRateLimitedTestServer(t, config.AppConfig.ImportRateLimit)
}

// newRateLimitedTestServer allows importsPerMinute imports per user
func newRateLimitedTestServer(t *testing.T, importsPerMinute int) *testServer {
	t.Helper()

	store := services.NewMemoryContactStore()
	store.AddGroup(models.Group{ID: testGroupID, Name: "Spring campaign", OwnerID: testUser})
	store.AddGroup(models.Group{ID: "group-foreign", Name: "Other list", OwnerID: "user-2"})

	configs := services.NewImportConfigService(services.NewMemoryImportConfigRepository(), nil, time.Minute, logging.Logger)
	imports := services.NewImportService(store, nil, logging.Logger, config.AppConfig.ImportMaxRows)

	limiter := services.NewImportRateLimiter(importsPerMinute, logging.Logger)
	importHandlers := NewImportHandlers(imports, configs, limiter, config.AppConfig.ImportMaxFileSize, logging.Logger)
	configHandlers := NewImportConfigHandlers(configs, logging.Logger)

	router := gin.New()
	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware())
	{
		v1.POST("/groups/:group_id/import", importHandlers.ImportContacts)
		v1.POST("/import/preview", importHandlers.PreviewImport)

		v1.GET("/import-configs", configHandlers.ListConfigs)
		v1.POST("/import-configs", configHandlers.CreateConfig)
		v1.GET("/import-configs/presets", configHandlers.ListPresets)
		v1.GET("/import-configs/default", configHandlers.GetDefaultConfig)
		v1.GET("/import-configs/:config_id", configHandlers.GetConfig)
		v1.PUT("/import-configs/:config_id", configHandlers.UpdateConfig)
		v1.DELETE("/import-configs/:config_id", configHandlers.DeleteConfig)
		v1.POST("/import-configs/:config_id/default", configHandlers.SetDefaultConfig)
	}

	return &testServer{router: router, store: store, configs: configs}
}

// do sends the request as the given user and returns the recorder
func (s *testServer) do(req *http.Request, claims *models.JWTClaims) *httptest.ResponseRecorder {
	if claims != nil {
		req.Header.Set("Authorization", "Bearer "+createTestJWT(*claims))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// jsonRequest builds a request with a JSON body
func jsonRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// multipartRequest builds a multipart upload with a file and extra form fields
func multipartRequest(t *testing.T, url, filename, content string, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// decode unmarshals the recorder body into v
func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
