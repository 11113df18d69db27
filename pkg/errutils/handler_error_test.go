package errutils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())
	r.GET("/", handler)
	return r
}

func TestErrorHandlingMiddleware_HandlerError(t *testing.T) {
	cause := errors.New("repo x not found")
	r := newTestRouter(func(c *gin.Context) {
		_ = c.Error(NewHandlerError(cause, http.StatusNotFound, "Repo Not Found"))
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Repo Not Found"}`, w.Body.String())
}

func TestErrorHandlingMiddleware_PlainError(t *testing.T) {
	r := newTestRouter(func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

func TestErrorHandlingMiddleware_NoError(t *testing.T) {
	r := newTestRouter(func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestHandlerError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	err := NewHandlerError(cause, http.StatusBadRequest, "Bad Request")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "cause", err.Error())
}
