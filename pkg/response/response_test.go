package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perform(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, Body) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)

	var body Body
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestOK(t *testing.T) {
	rec, body := perform(t, func(c *gin.Context) { OK(c, gin.H{"answer": 42}) })
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Empty(t, body.Error)
}

func TestInternal(t *testing.T) {
	rec, body := perform(t, func(c *gin.Context) { Internal(c, "boom") })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "boom", body.Error)
	assert.Nil(t, body.Data)
}

func TestErrorHelpersSetStatusAndMessage(t *testing.T) {
	tests := []struct {
		name    string
		handler gin.HandlerFunc
		status  int
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "nope") }, http.StatusBadRequest},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "nope") }, http.StatusUnauthorized},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "nope") }, http.StatusForbidden},
		{"not found", func(c *gin.Context) { NotFound(c, "nope") }, http.StatusNotFound},
		{"conflict", func(c *gin.Context) { Conflict(c, "nope") }, http.StatusConflict},
		{"service unavailable", func(c *gin.Context) { ServiceUnavailable(c, "nope") }, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := perform(t, tt.handler)
			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, body.Success)
			assert.Equal(t, "nope", body.Error)
		})
	}
}
