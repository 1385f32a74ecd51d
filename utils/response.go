package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func ResponseWithJson(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// ResponseWithError writes {"error": message} and aborts the handler chain.
func ResponseWithError(c *gin.Context, status int, message string) {
	if status >= 500 {
		log.Error().
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Msg(message)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
