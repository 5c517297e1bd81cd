package models

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

type ChangeAction string

const (
	ChangeActionCreate ChangeAction = "create"
	ChangeActionUpdate ChangeAction = "update"
	ChangeActionDelete ChangeAction = "delete"
)

func (a ChangeAction) IsValid() bool {
	switch a {
	case ChangeActionCreate, ChangeActionUpdate, ChangeActionDelete:
		return true
	}
	return false
}

// Attributes is a flat snapshot of a tracked entity's fields, as the host
// application's data layer sees them (column name to value).
type Attributes map[string]any

// FieldChange holds both sides of one attribute change. Old is absent on
// creation, New is absent on deletion.
type FieldChange struct {
	Old any `json:"old,omitempty"`
	New any `json:"new,omitempty"`
}

type ChangeDiff map[string]FieldChange

type Change struct {
	Id uuid.UUID

	SubjectType string
	SubjectId   string
	Action      ChangeAction
	Diff        ChangeDiff

	// Actor identity is denormalized on purpose: the trail must survive the
	// deletion of the actor's account.
	ActorId   string
	ActorName string

	RevertedFromId *uuid.UUID

	CreatedAt time.Time
}

type CreateChangeInput struct {
	Id             uuid.UUID
	SubjectType    string
	SubjectId      string
	Action         ChangeAction
	Diff           ChangeDiff
	ActorId        string
	ActorName      string
	RevertedFromId *uuid.UUID
}

// DiffAttributes computes the attribute-level delta between two snapshots,
// keeping only fields the filter allows. Fields present on a single side are
// reported with the other side absent.
func DiffAttributes(before, after Attributes, filter FieldFilter) ChangeDiff {
	diff := ChangeDiff{}
	for field, oldValue := range before {
		if !filter.Allows(field) {
			continue
		}
		newValue, ok := after[field]
		if !ok {
			diff[field] = FieldChange{Old: oldValue}
			continue
		}
		if !reflect.DeepEqual(oldValue, newValue) {
			diff[field] = FieldChange{Old: oldValue, New: newValue}
		}
	}
	for field, newValue := range after {
		if !filter.Allows(field) {
			continue
		}
		if _, ok := before[field]; !ok {
			diff[field] = FieldChange{New: newValue}
		}
	}
	return diff
}

// NewAttributes builds the diff of a creation: every allowed field appears
// with its new value only.
func NewAttributes(after Attributes, filter FieldFilter) ChangeDiff {
	diff := ChangeDiff{}
	for field, value := range after {
		if filter.Allows(field) {
			diff[field] = FieldChange{New: value}
		}
	}
	return diff
}

// DeletedAttributes builds the diff of a deletion: every allowed field
// appears with its old value only.
func DeletedAttributes(before Attributes, filter FieldFilter) ChangeDiff {
	diff := ChangeDiff{}
	for field, value := range before {
		if filter.Allows(field) {
			diff[field] = FieldChange{Old: value}
		}
	}
	return diff
}

// ApplyTo folds the new side of the diff into a snapshot, returning the
// attribute state after the change. The input snapshot is not modified.
func (d ChangeDiff) ApplyTo(snapshot Attributes) Attributes {
	out := make(Attributes, len(snapshot)+len(d))
	for field, value := range snapshot {
		out[field] = value
	}
	for field, change := range d {
		out[field] = change.New
	}
	return out
}
