package models

import "time"

type ChangeFilters struct {
	SubjectType string
	SubjectId   string
	Action      ChangeAction
	ActorId     string
	From        *time.Time
	To          *time.Time
}
