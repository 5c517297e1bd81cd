package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/repositories"
	"github.com/trailmark/trailmark-backend/usecases/executor_factory"
	"github.com/trailmark/trailmark-backend/usecases/tracking"
	"github.com/trailmark/trailmark-backend/utils"
)

// RecorderUsecase writes one change row per tracked mutation. It never opens
// its own transaction: the caller passes the executor of the unit of work the
// mutation belongs to, so the trail and the mutation commit or roll back
// together.
type RecorderUsecase struct {
	executorFactory  executor_factory.ExecutorFactory
	registry         *tracking.Registry
	changeRepository repositories.ChangeRepository
}

// Record is the remote entry point, used when the host reports mutations over
// the API instead of in-process. The same-transaction guarantee only holds
// for the in-process path: here the mutation already committed on the host's
// side.
func (uc RecorderUsecase) Record(
	ctx context.Context,
	subjectType, subjectId string,
	action models.ChangeAction,
	before, after models.Attributes,
) error {
	exec := uc.executorFactory.NewExecutor()
	switch action {
	case models.ChangeActionCreate:
		return uc.RecordCreation(ctx, exec, subjectType, subjectId, after)
	case models.ChangeActionUpdate:
		return uc.RecordUpdate(ctx, exec, subjectType, subjectId, before, after)
	case models.ChangeActionDelete:
		return uc.RecordDeletion(ctx, exec, subjectType, subjectId, before)
	default:
		return models.ErrInvalidAction
	}
}

func (uc RecorderUsecase) RecordCreation(
	ctx context.Context,
	exec repositories.Executor,
	subjectType, subjectId string,
	after models.Attributes,
) error {
	config, ok := uc.registry.ConfigFor(subjectType)
	if !ok {
		return models.ErrSubjectNotTracked
	}

	diff := models.NewAttributes(after, config.Filter)
	return uc.insertChange(ctx, exec, subjectType, subjectId, models.ChangeActionCreate, diff)
}

func (uc RecorderUsecase) RecordUpdate(
	ctx context.Context,
	exec repositories.Executor,
	subjectType, subjectId string,
	before, after models.Attributes,
) error {
	config, ok := uc.registry.ConfigFor(subjectType)
	if !ok {
		return models.ErrSubjectNotTracked
	}

	diff := models.DiffAttributes(before, after, config.Filter)
	if len(diff) == 0 {
		// Nothing the filter allows actually changed.
		return nil
	}
	return uc.insertChange(ctx, exec, subjectType, subjectId, models.ChangeActionUpdate, diff)
}

func (uc RecorderUsecase) RecordDeletion(
	ctx context.Context,
	exec repositories.Executor,
	subjectType, subjectId string,
	before models.Attributes,
) error {
	config, ok := uc.registry.ConfigFor(subjectType)
	if !ok {
		return models.ErrSubjectNotTracked
	}

	diff := models.DeletedAttributes(before, config.Filter)
	return uc.insertChange(ctx, exec, subjectType, subjectId, models.ChangeActionDelete, diff)
}

func (uc RecorderUsecase) insertChange(
	ctx context.Context,
	exec repositories.Executor,
	subjectType, subjectId string,
	action models.ChangeAction,
	diff models.ChangeDiff,
) error {
	input := models.CreateChangeInput{
		Id:          uuid.New(),
		SubjectType: subjectType,
		SubjectId:   subjectId,
		Action:      action,
		Diff:        diff,
	}
	if creds, ok := utils.CredentialsFromCtx(ctx); ok {
		input.ActorId = creds.ActorIdentity.ActorId
		input.ActorName = creds.ActorIdentity.ActorName
	}

	return uc.changeRepository.CreateChange(ctx, exec, input)
}
