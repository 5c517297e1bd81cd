package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trailmark/trailmark-backend/dto"
	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/pure_utils"
	"github.com/trailmark/trailmark-backend/usecases"
)

func handleListChanges(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var filters dto.ChangeFilters
		if err := c.ShouldBindQuery(&filters); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		changeFilters, pagination := dto.AdaptChangeFilters(filters)

		changes, err := uc.NewChangeReaderUsecase().ListChanges(ctx, changeFilters, pagination)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"changes": pure_utils.Map(changes, dto.AdaptChange),
		})
	}
}

func handleGetChange(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		changeId, err := uuid.Parse(c.Param("change_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid change id"})
			return
		}

		change, err := uc.NewChangeReaderUsecase().GetChange(ctx, changeId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptChange(change))
	}
}

func handleNextChange(uc usecases.Usecases) gin.HandlerFunc {
	return handleAdjacentChange(uc, func(reader usecases.ChangeReaderUsecase) adjacentChangeFn {
		return reader.NextChange
	})
}

func handlePreviousChange(uc usecases.Usecases) gin.HandlerFunc {
	return handleAdjacentChange(uc, func(reader usecases.ChangeReaderUsecase) adjacentChangeFn {
		return reader.PreviousChange
	})
}

type adjacentChangeFn = func(ctx context.Context, id uuid.UUID) (models.Change, error)

func handleAdjacentChange(
	uc usecases.Usecases,
	pick func(reader usecases.ChangeReaderUsecase) adjacentChangeFn,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		changeId, err := uuid.Parse(c.Param("change_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid change id"})
			return
		}

		change, err := pick(uc.NewChangeReaderUsecase())(ctx, changeId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptChange(change))
	}
}

func handleFirstChangeOfSubject(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		change, err := uc.NewChangeReaderUsecase().FirstChange(ctx,
			c.Param("subject_type"), c.Param("subject_id"))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptChange(change))
	}
}

func handleLastChangeOfSubject(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		change, err := uc.NewChangeReaderUsecase().LastChange(ctx,
			c.Param("subject_type"), c.Param("subject_id"))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptChange(change))
	}
}
