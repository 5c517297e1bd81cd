package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/guregu/null/v5"

	"github.com/trailmark/trailmark-backend/models"
)

type DbChange struct {
	Id uuid.UUID `db:"id"`

	SubjectType string          `db:"subject_type"`
	SubjectId   string          `db:"subject_id"`
	Action      string          `db:"action"`
	Diff        json.RawMessage `db:"diff"`

	ActorId   null.String `db:"actor_id"`
	ActorName null.String `db:"actor_name"`

	RevertedFromId *uuid.UUID `db:"reverted_from_id"`

	CreatedAt time.Time `db:"created_at"`
}

const TABLE_CHANGES = "changes"

var SelectChangeColumns = []string{
	"id",
	"subject_type",
	"subject_id",
	"action",
	"diff",
	"actor_id",
	"actor_name",
	"reverted_from_id",
	"created_at",
}

func AdaptChange(db DbChange) (models.Change, error) {
	var diff models.ChangeDiff
	if len(db.Diff) > 0 {
		if err := json.Unmarshal(db.Diff, &diff); err != nil {
			return models.Change{}, errors.Wrap(err, "can't unmarshal change diff")
		}
	}

	return models.Change{
		Id:             db.Id,
		SubjectType:    db.SubjectType,
		SubjectId:      db.SubjectId,
		Action:         models.ChangeAction(db.Action),
		Diff:           diff,
		ActorId:        db.ActorId.ValueOrZero(),
		ActorName:      db.ActorName.ValueOrZero(),
		RevertedFromId: db.RevertedFromId,
		CreatedAt:      db.CreatedAt,
	}, nil
}
