package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/repositories"
	"github.com/trailmark/trailmark-backend/usecases/executor_factory"
)

type ChangeReaderUsecase struct {
	executorFactory  executor_factory.ExecutorFactory
	changeRepository repositories.ChangeRepository
}

func (uc ChangeReaderUsecase) GetChange(ctx context.Context, id uuid.UUID) (models.Change, error) {
	return uc.changeRepository.GetChangeById(ctx, uc.executorFactory.NewExecutor(), id)
}

func (uc ChangeReaderUsecase) ListChanges(
	ctx context.Context,
	filters models.ChangeFilters,
	pagination models.PaginationAndSorting,
) ([]models.Change, error) {
	return uc.changeRepository.ListChanges(ctx, uc.executorFactory.NewExecutor(), filters, pagination)
}

func (uc ChangeReaderUsecase) FirstChange(ctx context.Context, subjectType, subjectId string) (models.Change, error) {
	return uc.changeRepository.FirstChangeOfSubject(ctx, uc.executorFactory.NewExecutor(), subjectType, subjectId)
}

func (uc ChangeReaderUsecase) LastChange(ctx context.Context, subjectType, subjectId string) (models.Change, error) {
	return uc.changeRepository.LastChangeOfSubject(ctx, uc.executorFactory.NewExecutor(), subjectType, subjectId)
}

// NextChange returns the change following the given one on the same subject,
// or a NotFoundError when the given change is the latest.
func (uc ChangeReaderUsecase) NextChange(ctx context.Context, id uuid.UUID) (models.Change, error) {
	exec := uc.executorFactory.NewExecutor()

	change, err := uc.changeRepository.GetChangeById(ctx, exec, id)
	if err != nil {
		return models.Change{}, err
	}

	next, err := uc.changeRepository.NextChange(ctx, exec, change)
	if err != nil {
		return models.Change{}, err
	}
	if next == nil {
		return models.Change{}, models.NotFoundError
	}
	return *next, nil
}

// PreviousChange returns the change preceding the given one on the same
// subject, or a NotFoundError when the given change is the first.
func (uc ChangeReaderUsecase) PreviousChange(ctx context.Context, id uuid.UUID) (models.Change, error) {
	exec := uc.executorFactory.NewExecutor()

	change, err := uc.changeRepository.GetChangeById(ctx, exec, id)
	if err != nil {
		return models.Change{}, err
	}

	previous, err := uc.changeRepository.PreviousChange(ctx, exec, change)
	if err != nil {
		return models.Change{}, err
	}
	if previous == nil {
		return models.Change{}, models.NotFoundError
	}
	return *previous, nil
}
