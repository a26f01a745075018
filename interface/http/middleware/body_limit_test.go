package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		limit          int64
		body           string
		expectedStatus int
	}{
		{name: "within limit", limit: 1024, body: strings.Repeat("a", 100), expectedStatus: http.StatusOK},
		{name: "exactly at limit", limit: 100, body: strings.Repeat("a", 100), expectedStatus: http.StatusOK},
		{name: "empty body", limit: 100, body: "", expectedStatus: http.StatusOK},
		{name: "one byte over", limit: 100, body: strings.Repeat("a", 101), expectedStatus: http.StatusRequestEntityTooLarge},
		{name: "far over", limit: 100, body: strings.Repeat("a", 4096), expectedStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			_, router := gin.CreateTestContext(w)

			router.Use(BodyLimit(tt.limit))
			router.POST("/api/v1/messages", func(c *gin.Context) {
				body, err := io.ReadAll(c.Request.Body)
				if err != nil {
					var maxBytesErr *http.MaxBytesError
					assert.True(t, errors.As(err, &maxBytesErr))
					c.String(http.StatusRequestEntityTooLarge, "body too large")
					return
				}
				c.String(http.StatusOK, string(body))
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(tt.body))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestBodyLimitWithoutBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	_, router := gin.CreateTestContext(w)

	router.Use(BodyLimit(10))
	router.GET("/api/v1/deliveries/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})

	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/deliveries/dlv-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dlv-1", w.Body.String())
}
