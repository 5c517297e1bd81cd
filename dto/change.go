package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/pure_utils"
)

type FieldChange struct {
	Old any `json:"old,omitempty"`
	New any `json:"new,omitempty"`
}

type ChangeActor struct {
	Id   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Change struct {
	Id    uuid.UUID   `json:"id"`
	Actor ChangeActor `json:"actor"`

	SubjectType string                 `json:"subject_type"`
	SubjectId   string                 `json:"subject_id"`
	Action      string                 `json:"action"`
	Diff        map[string]FieldChange `json:"diff"`

	RevertedFromId *uuid.UUID `json:"reverted_from_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func AdaptChange(m models.Change) Change {
	return Change{
		Id: m.Id,
		Actor: ChangeActor{
			Id:   m.ActorId,
			Name: m.ActorName,
		},
		SubjectType: m.SubjectType,
		SubjectId:   m.SubjectId,
		Action:      string(m.Action),
		Diff: pure_utils.MapValues(m.Diff, func(fc models.FieldChange) FieldChange {
			return FieldChange{Old: fc.Old, New: fc.New}
		}),
		RevertedFromId: m.RevertedFromId,
		CreatedAt:      m.CreatedAt,
	}
}

type CreateChangeBody struct {
	SubjectType string         `json:"subject_type" binding:"required"`
	SubjectId   string         `json:"subject_id" binding:"required"`
	Action      string         `json:"action" binding:"required,oneof=create update delete"`
	Before      map[string]any `json:"before"`
	After       map[string]any `json:"after"`
}

type ChangeFilters struct {
	SubjectType string     `form:"subject_type"`
	SubjectId   string     `form:"subject_id"`
	Action      string     `form:"action" binding:"omitempty,oneof=create update delete"`
	ActorId     string     `form:"actor_id"`
	From        *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To          *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit       int        `form:"limit" binding:"omitempty,gte=1,lte=100"`
	After       string     `form:"after" binding:"omitempty,uuid"`
	Order       string     `form:"order" binding:"omitempty,oneof=ASC DESC"`
}

func AdaptChangeFilters(f ChangeFilters) (models.ChangeFilters, models.PaginationAndSorting) {
	filters := models.ChangeFilters{
		SubjectType: f.SubjectType,
		SubjectId:   f.SubjectId,
		Action:      models.ChangeAction(f.Action),
		ActorId:     f.ActorId,
		From:        f.From,
		To:          f.To,
	}
	// Defaulting happens in the repository, which every read path goes through.
	pagination := models.PaginationAndSorting{
		OffsetId: f.After,
		Order:    models.SortingOrder(f.Order),
		Limit:    f.Limit,
	}
	return filters, pagination
}
