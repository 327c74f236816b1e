package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), RequestLogger())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	return router
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name       string
		incomingID string
		expectKept bool
	}{
		{name: "Generated when missing", incomingID: ""},
		{name: "Kept when sent by the client", incomingID: "client-id-42", expectKept: true},
		{name: "Kept at the maximum length", incomingID: strings.Repeat("a", 64), expectKept: true},
		{name: "Replaced when too long", incomingID: strings.Repeat("a", 65)},
		{name: "Replaced when containing spaces", incomingID: "id with spaces"},
		{name: "Replaced when containing log injection characters", incomingID: "abc\" level=error msg=forged"},
		{name: "Replaced when containing non ascii letters", incomingID: "idé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.incomingID != "" {
				req.Header.Set(RequestIDHeader, tt.incomingID)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			requestID := w.Header().Get(RequestIDHeader)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, requestID, w.Body.String())

			if tt.expectKept {
				assert.Equal(t, tt.incomingID, requestID)
			} else {
				_, err := uuid.Parse(requestID)
				assert.NoError(t, err)
			}
		})
	}
}
