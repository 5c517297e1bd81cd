package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/utils"
)

// Authentication checks the configured API key and stores the actor identity
// forwarded by the host application in the request context. The actor display
// name travels with each write so it can be denormalized into the trail.
func Authentication(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Api-Key")
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid api key"})
			return
		}

		creds := models.Credentials{
			ActorIdentity: models.Identity{
				ActorId:   c.GetHeader("X-Actor-Id"),
				ActorName: c.GetHeader("X-Actor-Name"),
			},
		}
		ctx := utils.StoreCredentialsInContext(c.Request.Context(), creds)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
