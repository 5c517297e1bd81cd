package tracking

import (
	"context"

	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/repositories"
)

type Recorder interface {
	RecordCreation(ctx context.Context, exec repositories.Executor,
		subjectType, subjectId string, after models.Attributes) error
	RecordUpdate(ctx context.Context, exec repositories.Executor,
		subjectType, subjectId string, before, after models.Attributes) error
	RecordDeletion(ctx context.Context, exec repositories.Executor,
		subjectType, subjectId string, before models.Attributes) error
}

// Subscriber is the lifecycle hook surface: the host's data layer notifies
// it after each entity mutation, passing the executor of the transaction the
// mutation ran in so the change row joins the same unit of work. Events for
// tables that were not registered are silently dropped.
type Subscriber struct {
	registry *Registry
	recorder Recorder
}

func NewSubscriber(registry *Registry, recorder Recorder) Subscriber {
	return Subscriber{
		registry: registry,
		recorder: recorder,
	}
}

func (s Subscriber) AfterCreate(ctx context.Context, exec repositories.Executor,
	table, entityId string, after models.Attributes,
) error {
	config, ok := s.registry.ConfigForTable(table)
	if !ok {
		return nil
	}
	return s.recorder.RecordCreation(ctx, exec, config.SubjectType, entityId, after)
}

func (s Subscriber) AfterUpdate(ctx context.Context, exec repositories.Executor,
	table, entityId string, before, after models.Attributes,
) error {
	config, ok := s.registry.ConfigForTable(table)
	if !ok {
		return nil
	}
	return s.recorder.RecordUpdate(ctx, exec, config.SubjectType, entityId, before, after)
}

func (s Subscriber) AfterDelete(ctx context.Context, exec repositories.Executor,
	table, entityId string, before models.Attributes,
) error {
	config, ok := s.registry.ConfigForTable(table)
	if !ok {
		return nil
	}
	return s.recorder.RecordDeletion(ctx, exec, config.SubjectType, entityId, before)
}
