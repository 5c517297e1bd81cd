package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trailmark/trailmark-backend/dto"
	"github.com/trailmark/trailmark-backend/usecases"
)

func handleRevertToChange(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		changeId, err := uuid.Parse(c.Param("change_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid change id"})
			return
		}

		change, err := uc.NewRevertUsecase().RevertToChange(ctx, changeId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptChange(change))
	}
}

func handleSnapshotAtChange(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		changeId, err := uuid.Parse(c.Param("change_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid change id"})
			return
		}

		snapshot, err := uc.NewRevertUsecase().SnapshotAt(ctx, changeId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"snapshot": snapshot})
	}
}
