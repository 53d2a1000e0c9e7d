package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// OrderIDValidator проверяет, что параметр с указанным именем является
// положительным числовым идентификатором заказа.
// Использование: router.GET("/orders/:id", OrderIDValidator("id"), handler.GetOrder)
func OrderIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		if idStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "параметр " + paramName + " обязателен",
			})
			c.Abort()
			return
		}

		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "параметр " + paramName + " должен быть положительным числом",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// OIDValidator проверяет, что параметр с указанным именем не пуст.
func OIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param(paramName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "параметр " + paramName + " обязателен",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
