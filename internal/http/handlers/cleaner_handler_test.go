package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/partyklinest/cleaning-backend/internal/http/middleware"
	"github.com/partyklinest/cleaning-backend/internal/models"
)

func authAs(oid, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserOIDKey, oid)
		c.Set(middleware.ContextRoleKey, role)
		c.Next()
	}
}

func TestCleanerHandler_AcceptRejectOrder_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &CleanerHandler{cleaners: nil}
	r.PUT("/orders/:id/assignment", handler.AcceptRejectOrder)

	body := bytes.NewBufferString(`{"status":"in_progress"}`)
	req, _ := http.NewRequest("PUT", "/orders/7/assignment", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCleanerHandler_AcceptRejectOrder_InvalidOrderID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(authAs("cleaner-1", models.RoleCleaner))
	handler := &CleanerHandler{cleaners: nil}
	r.PUT("/orders/:id/assignment", handler.AcceptRejectOrder)

	body := bytes.NewBufferString(`{"status":"in_progress"}`)
	req, _ := http.NewRequest("PUT", "/orders/abc/assignment", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCleanerHandler_AcceptRejectOrder_UnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(authAs("cleaner-1", models.RoleCleaner))
	handler := &CleanerHandler{cleaners: nil}
	r.PUT("/orders/:id/assignment", handler.AcceptRejectOrder)

	body := bytes.NewBufferString(`{"status":"frozen"}`)
	req, _ := http.NewRequest("PUT", "/orders/7/assignment", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCleanerHandler_ConfirmOrderCompleted_InvalidRating(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(authAs("cleaner-1", models.RoleCleaner))
	handler := &CleanerHandler{cleaners: nil}
	r.POST("/orders/:id/opinion", handler.ConfirmOrderCompleted)

	body := bytes.NewBufferString(`{"rating":6}`)
	req, _ := http.NewRequest("POST", "/orders/7/opinion", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCleanerHandler_GetCleaner_ForeignProfileForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(authAs("cleaner-1", models.RoleCleaner))
	handler := &CleanerHandler{cleaners: nil}
	r.GET("/cleaners/:id", handler.GetCleaner)

	req, _ := http.NewRequest("GET", "/cleaners/cleaner-2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCleanerHandler_UpdateCleaner_ForeignProfileForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(authAs("cleaner-1", models.RoleCleaner))
	handler := &CleanerHandler{cleaners: nil}
	r.PUT("/cleaners/:id", handler.UpdateCleaner)

	body := bytes.NewBufferString(`{"order_filter":{"max_mess_level":3,"max_price":1000}}`)
	req, _ := http.NewRequest("PUT", "/cleaners/cleaner-2", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
