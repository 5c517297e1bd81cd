package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/repositories"
)

type ChangeRepository struct {
	mock.Mock
}

func (m *ChangeRepository) CreateChange(ctx context.Context, exec repositories.Executor,
	input models.CreateChangeInput,
) error {
	args := m.Called(exec, input)
	return args.Error(0)
}

func (m *ChangeRepository) GetChangeById(ctx context.Context, exec repositories.Executor,
	id uuid.UUID,
) (models.Change, error) {
	args := m.Called(exec, id)
	return args.Get(0).(models.Change), args.Error(1)
}

func (m *ChangeRepository) ListChanges(ctx context.Context, exec repositories.Executor,
	filters models.ChangeFilters, pagination models.PaginationAndSorting,
) ([]models.Change, error) {
	args := m.Called(exec, filters, pagination)
	return args.Get(0).([]models.Change), args.Error(1)
}

func (m *ChangeRepository) FirstChangeOfSubject(ctx context.Context, exec repositories.Executor,
	subjectType, subjectId string,
) (models.Change, error) {
	args := m.Called(exec, subjectType, subjectId)
	return args.Get(0).(models.Change), args.Error(1)
}

func (m *ChangeRepository) LastChangeOfSubject(ctx context.Context, exec repositories.Executor,
	subjectType, subjectId string,
) (models.Change, error) {
	args := m.Called(exec, subjectType, subjectId)
	return args.Get(0).(models.Change), args.Error(1)
}

func (m *ChangeRepository) NextChange(ctx context.Context, exec repositories.Executor,
	change models.Change,
) (*models.Change, error) {
	args := m.Called(exec, change)
	return args.Get(0).(*models.Change), args.Error(1)
}

func (m *ChangeRepository) PreviousChange(ctx context.Context, exec repositories.Executor,
	change models.Change,
) (*models.Change, error) {
	args := m.Called(exec, change)
	return args.Get(0).(*models.Change), args.Error(1)
}

func (m *ChangeRepository) ListChangesUpTo(ctx context.Context, exec repositories.Executor,
	subjectType, subjectId string, upTo models.Change,
) ([]models.Change, error) {
	args := m.Called(exec, subjectType, subjectId, upTo)
	return args.Get(0).([]models.Change), args.Error(1)
}
