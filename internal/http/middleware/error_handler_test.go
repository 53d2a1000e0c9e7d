package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/partyklinest/cleaning-backend/internal/pkg/apperror"
)

func newErrorHandlerRouter(err error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(err)
	})
	return r
}

// Логгер в тестах не инициализирован: обработка ошибки не должна падать.
func TestErrorHandler_WorksWithoutLogger(t *testing.T) {
	r := newErrorHandlerRouter(&apperror.OrderNotFoundError{OrderID: 7})

	req, _ := http.NewRequest("GET", "/boom", nil)
	w := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		r.ServeHTTP(w, req)
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestErrorHandler_MasksInternalErrors(t *testing.T) {
	r := newErrorHandlerRouter(fmt.Errorf("order repository: sql: no rows"))

	req, _ := http.NewRequest("GET", "/boom", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "внутренняя ошибка сервера")
	assert.NotContains(t, w.Body.String(), "sql")
}
