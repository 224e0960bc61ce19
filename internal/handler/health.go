package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health — liveness-проба. Отдаёт путь к файлу БД, чтобы оператор видел,
// какое хранилище обслуживает процесс.
func Health(dbPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbPath})
	}
}

func Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
