package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HandleLivenessProbe(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
