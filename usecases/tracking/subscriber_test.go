package tracking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/repositories"
)

type recordedEvent struct {
	action      models.ChangeAction
	subjectType string
	subjectId   string
}

type recorderSpy struct {
	events []recordedEvent
}

func (r *recorderSpy) RecordCreation(ctx context.Context, exec repositories.Executor,
	subjectType, subjectId string, after models.Attributes,
) error {
	r.events = append(r.events, recordedEvent{models.ChangeActionCreate, subjectType, subjectId})
	return nil
}

func (r *recorderSpy) RecordUpdate(ctx context.Context, exec repositories.Executor,
	subjectType, subjectId string, before, after models.Attributes,
) error {
	r.events = append(r.events, recordedEvent{models.ChangeActionUpdate, subjectType, subjectId})
	return nil
}

func (r *recorderSpy) RecordDeletion(ctx context.Context, exec repositories.Executor,
	subjectType, subjectId string, before models.Attributes,
) error {
	r.events = append(r.events, recordedEvent{models.ChangeActionDelete, subjectType, subjectId})
	return nil
}

func TestSubscriber_forwardsTrackedTables(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry()
	assert.NoError(t, registry.Register(EntityConfig{Table: "users"}))

	recorder := &recorderSpy{}
	subscriber := NewSubscriber(registry, recorder)

	assert.NoError(t, subscriber.AfterCreate(ctx, nil, "users", "42",
		models.Attributes{"name": "alice"}))
	assert.NoError(t, subscriber.AfterUpdate(ctx, nil, "users", "42",
		models.Attributes{"name": "alice"}, models.Attributes{"name": "bob"}))
	assert.NoError(t, subscriber.AfterDelete(ctx, nil, "users", "42",
		models.Attributes{"name": "bob"}))

	assert.Equal(t, []recordedEvent{
		{models.ChangeActionCreate, "user", "42"},
		{models.ChangeActionUpdate, "user", "42"},
		{models.ChangeActionDelete, "user", "42"},
	}, recorder.events)
}

func TestSubscriber_dropsUnregisteredTables(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry()
	assert.NoError(t, registry.Register(EntityConfig{Table: "users"}))

	recorder := &recorderSpy{}
	subscriber := NewSubscriber(registry, recorder)

	assert.NoError(t, subscriber.AfterCreate(ctx, nil, "sessions", "s-1",
		models.Attributes{"token": "aaa"}))

	assert.Empty(t, recorder.events)
}
