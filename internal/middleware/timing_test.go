package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

func TestRequestTiming_Success(t *testing.T) {
	router := gin.New()
	router.Use(RequestTiming())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("RequestTiming() status = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestRequestTiming_SetsStartTime(t *testing.T) {
	router := gin.New()
	router.Use(RequestTiming())

	var startTime time.Time
	router.GET("/test", func(c *gin.Context) {
		val, exists := c.Get("request_start_time")
		if !exists {
			t.Error("request_start_time not set in context")
		}
		st, ok := val.(time.Time)
		if !ok {
			t.Error("request_start_time is not a time.Time")
		}
		startTime = st
		c.Status(http.StatusOK)
	})

	before := time.Now()
	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if startTime.Before(before) {
		t.Errorf("start time %v is before request %v", startTime, before)
	}
}

func TestRequestTiming_PropagatesSpanContext(t *testing.T) {
	router := gin.New()
	router.Use(RequestTiming())

	var span trace.Span
	router.GET("/test", func(c *gin.Context) {
		span = trace.SpanFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if span == nil {
		t.Fatal("no span in request context")
	}
}

func TestRequestTiming_DifferentStatusCodes(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusInternalServerError} {
		status := status
		router := gin.New()
		router.Use(RequestID(), RequestTiming())
		router.GET("/test", func(c *gin.Context) {
			c.Status(status)
		})

		req, _ := http.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != status {
			t.Errorf("RequestTiming() status = %v, want %v", w.Code, status)
		}
	}
}
