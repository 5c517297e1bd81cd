package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/pure_utils"
	"github.com/trailmark/trailmark-backend/repositories"
	"github.com/trailmark/trailmark-backend/usecases/executor_factory"
	"github.com/trailmark/trailmark-backend/usecases/tracking"
	"github.com/trailmark/trailmark-backend/utils"
)

type RevertUsecase struct {
	executorFactory  executor_factory.ExecutorFactory
	changeRepository repositories.ChangeRepository
	registry         *tracking.Registry
}

// SnapshotAt reconstructs the subject's attribute state right after the given
// change, by folding the new side of every change from the subject's creation
// up to and including that one.
func (uc RevertUsecase) SnapshotAt(ctx context.Context, changeId uuid.UUID) (models.Attributes, error) {
	exec := uc.executorFactory.NewExecutor()

	target, err := uc.changeRepository.GetChangeById(ctx, exec, changeId)
	if err != nil {
		return nil, err
	}

	history, err := uc.changeRepository.ListChangesUpTo(ctx, exec,
		target.SubjectType, target.SubjectId, target)
	if err != nil {
		return nil, err
	}
	return snapshotFromHistory(history)
}

// RevertToChange applies the subject's state as of the given change, through
// the applier registered for its subject type, and appends a forward-pointing
// change row carrying the reverted change's id. History is never rewritten.
func (uc RevertUsecase) RevertToChange(ctx context.Context, changeId uuid.UUID) (models.Change, error) {
	return executor_factory.TransactionReturnValue(ctx, uc.executorFactory,
		func(tx repositories.Transaction) (models.Change, error) {
			target, err := uc.changeRepository.GetChangeById(ctx, tx, changeId)
			if err != nil {
				return models.Change{}, err
			}

			config, ok := uc.registry.ConfigFor(target.SubjectType)
			if !ok {
				return models.Change{}, models.ErrSubjectNotTracked
			}
			if config.Applier == nil {
				return models.Change{}, models.ErrNoSnapshotApplier
			}

			last, err := uc.changeRepository.LastChangeOfSubject(ctx, tx,
				target.SubjectType, target.SubjectId)
			if err != nil {
				return models.Change{}, err
			}

			fullHistory, err := uc.changeRepository.ListChangesUpTo(ctx, tx,
				target.SubjectType, target.SubjectId, last)
			if err != nil {
				return models.Change{}, err
			}
			current, err := snapshotFromHistory(fullHistory)
			if err != nil {
				return models.Change{}, err
			}

			snapshotIndex, err := historyIndexOf(fullHistory, target.Id)
			if err != nil {
				return models.Change{}, err
			}
			snapshot, err := snapshotFromHistory(fullHistory[:snapshotIndex+1])
			if err != nil {
				return models.Change{}, err
			}

			diff := models.DiffAttributes(current, snapshot, config.Filter)
			if len(diff) == 0 {
				// The subject already matches the requested state.
				return last, nil
			}

			if err := config.Applier.ApplySnapshot(ctx, tx, target.SubjectId, snapshot); err != nil {
				return models.Change{}, err
			}

			input := models.CreateChangeInput{
				Id:             uuid.New(),
				SubjectType:    target.SubjectType,
				SubjectId:      target.SubjectId,
				Action:         models.ChangeActionUpdate,
				Diff:           diff,
				RevertedFromId: pure_utils.Ptr(target.Id),
			}
			if creds, ok := utils.CredentialsFromCtx(ctx); ok {
				input.ActorId = creds.ActorIdentity.ActorId
				input.ActorName = creds.ActorIdentity.ActorName
			}

			if err := uc.changeRepository.CreateChange(ctx, tx, input); err != nil {
				return models.Change{}, err
			}
			return uc.changeRepository.GetChangeById(ctx, tx, input.Id)
		})
}

// snapshotFromHistory folds a chronological slice of changes into the
// attribute state after the last of them. A deletion anywhere in the slice
// makes the state unreachable by revert.
func snapshotFromHistory(history []models.Change) (models.Attributes, error) {
	snapshot := models.Attributes{}
	for _, change := range history {
		if change.Action == models.ChangeActionDelete {
			return nil, models.ErrRevertAcrossDeletion
		}
		snapshot = change.Diff.ApplyTo(snapshot)
	}
	return snapshot, nil
}

func historyIndexOf(history []models.Change, id uuid.UUID) (int, error) {
	for i, change := range history {
		if change.Id == id {
			return i, nil
		}
	}
	return 0, models.NotFoundError
}
