package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-contacts/internal/config"
	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/models"
)

func init() {
	logging.InitLogger()
	gin.SetMode(gin.TestMode)

	if config.AppConfig == nil {
		config.AppConfig = &config.Config{
			AdminGroup: "contacts:admin",
		}
	}
}

func createTestJWT(claims models.JWTClaims) string {
	claimsJSON, _ := json.Marshal(claims)
	claimsB64 := base64.RawURLEncoding.EncodeToString(claimsJSON)

	// Create a fake JWT (header.payload.signature)
	return "eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9." + claimsB64 + ".fake-signature"
}

func claimsWithRoles(sub string, roles ...string) *models.JWTClaims {
	claims := &models.JWTClaims{SUB: sub}
	claims.RealmAccess.Roles = roles
	return claims
}

func TestAuthMiddleware_Success(t *testing.T) {
	router := gin.New()
	router.Use(AuthMiddleware())

	var gotUser string
	router.GET("/test", func(c *gin.Context) {
		gotUser, _ = UserID(c)
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	token := createTestJWT(models.JWTClaims{SUB: "user123", ISS: "test-issuer"})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("AuthMiddleware() status = %v, want %v", w.Code, http.StatusOK)
	}
	if gotUser != "user123" {
		t.Errorf("UserID() = %q, want %q", gotUser, "user123")
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"basic scheme", "Basic dXNlcjpwYXNz"},
		{"missing token", "Bearer"},
		{"two segments", "Bearer abc.def"},
		{"bad base64", "Bearer a.!!!.c"},
		{"no subject", "Bearer " + createTestJWT(models.JWTClaims{ISS: "test-issuer"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(AuthMiddleware())
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			req, _ := http.NewRequest("GET", "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("AuthMiddleware() status = %v, want %v", w.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestAuthMiddleware_PreferredUsernameFallback(t *testing.T) {
	router := gin.New()
	router.Use(AuthMiddleware())

	var gotUser string
	router.GET("/test", func(c *gin.Context) {
		gotUser, _ = UserID(c)
		c.Status(http.StatusOK)
	})

	token := createTestJWT(models.JWTClaims{PreferredUsername: "operator"})
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("AuthMiddleware() status = %v, want %v", w.Code, http.StatusOK)
	}
	if gotUser != "operator" {
		t.Errorf("UserID() = %q, want %q", gotUser, "operator")
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name   string
		claims *models.JWTClaims
		want   int
	}{
		{"admin", claimsWithRoles("u1", "contacts:admin"), http.StatusOK},
		{"not admin", claimsWithRoles("u1", "contacts:user"), http.StatusForbidden},
		{"no claims", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tt.claims != nil {
					c.Set(claimsKey, tt.claims)
				}
				c.Next()
			})
			router.Use(RequireAdmin())
			router.GET("/test", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req, _ := http.NewRequest("GET", "/test", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("RequireAdmin() status = %v, want %v", w.Code, tt.want)
			}
		})
	}
}

func TestRequireAdmin_InvalidClaimsType(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(claimsKey, "not-claims")
		c.Next()
	})
	router.Use(RequireAdmin())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("RequireAdmin() status = %v, want %v", w.Code, http.StatusInternalServerError)
	}
}

func TestIsAdmin(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, err := IsAdmin(c); err != ErrClaimsNotFound {
		t.Errorf("IsAdmin() error = %v, want %v", err, ErrClaimsNotFound)
	}

	c.Set(claimsKey, claimsWithRoles("u1", "other", "contacts:admin"))
	isAdmin, err := IsAdmin(c)
	if err != nil || !isAdmin {
		t.Errorf("IsAdmin() = %v, %v; want true, nil", isAdmin, err)
	}

	c.Set(claimsKey, claimsWithRoles("u1"))
	isAdmin, err = IsAdmin(c)
	if err != nil || isAdmin {
		t.Errorf("IsAdmin() = %v, %v; want false, nil", isAdmin, err)
	}
}

func TestExtractClaims(t *testing.T) {
	claims := models.JWTClaims{SUB: "abc", AUD: []string{"contacts", "account"}}
	got, err := extractClaims(createTestJWT(claims)[len("eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9."):])
	if err == nil {
		t.Errorf("extractClaims() on two segments should fail, got %+v", got)
	}

	got, err = extractClaims(createTestJWT(claims))
	if err != nil {
		t.Fatalf("extractClaims() error = %v", err)
	}
	if got.SUB != "abc" {
		t.Errorf("extractClaims() SUB = %q, want %q", got.SUB, "abc")
	}
	if auds := got.GetAudiences(); len(auds) != 2 {
		t.Errorf("GetAudiences() = %v, want 2 entries", auds)
	}
}
