package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trailmark/trailmark-backend/dto"
	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/usecases"
)

func handleRecordChange(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateChangeBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		err := uc.NewRecorderUsecase().Record(ctx,
			body.SubjectType, body.SubjectId,
			models.ChangeAction(body.Action),
			models.Attributes(body.Before), models.Attributes(body.After))
		if presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusCreated)
	}
}
