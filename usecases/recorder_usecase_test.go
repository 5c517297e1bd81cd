package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/trailmark/trailmark-backend/mocks"
	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/repositories"
	"github.com/trailmark/trailmark-backend/usecases/executor_factory"
	"github.com/trailmark/trailmark-backend/usecases/tracking"
	"github.com/trailmark/trailmark-backend/utils"
)

type RecorderUsecaseTestSuite struct {
	suite.Suite
	executorFactory  executor_factory.ExecutorFactoryStub
	changeRepository *mocks.ChangeRepository
	registry         *tracking.Registry

	ctx  context.Context
	exec repositories.Executor
}

func (suite *RecorderUsecaseTestSuite) SetupTest() {
	suite.executorFactory = executor_factory.NewExecutorFactoryStub()
	suite.changeRepository = new(mocks.ChangeRepository)
	suite.registry = tracking.NewRegistry()
	suite.Require().NoError(suite.registry.Register(tracking.EntityConfig{
		Table:  "users",
		Filter: models.FieldFilter{Excluded: []string{"password_hash"}},
	}))

	suite.ctx = context.Background()
	suite.exec = suite.executorFactory.NewExecutor()
}

func (suite *RecorderUsecaseTestSuite) makeUsecase() RecorderUsecase {
	return RecorderUsecase{
		executorFactory:  suite.executorFactory,
		registry:         suite.registry,
		changeRepository: suite.changeRepository,
	}
}

func (suite *RecorderUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.changeRepository.AssertExpectations(t)
}

func (suite *RecorderUsecaseTestSuite) TestRecordCreation() {
	suite.changeRepository.On("CreateChange", suite.exec,
		mock.MatchedBy(func(input models.CreateChangeInput) bool {
			return input.SubjectType == "user" &&
				input.SubjectId == "42" &&
				input.Action == models.ChangeActionCreate &&
				len(input.Diff) == 1 &&
				input.Diff["name"] == models.FieldChange{New: "alice"}
		})).Return(nil)

	err := suite.makeUsecase().RecordCreation(suite.ctx, suite.exec, "user", "42",
		models.Attributes{"name": "alice", "password_hash": "secret"})

	suite.NoError(err)
	suite.AssertExpectations()
}

func (suite *RecorderUsecaseTestSuite) TestRecordUpdate_storesOnlyChangedFields() {
	suite.changeRepository.On("CreateChange", suite.exec,
		mock.MatchedBy(func(input models.CreateChangeInput) bool {
			return input.Action == models.ChangeActionUpdate &&
				len(input.Diff) == 1 &&
				input.Diff["status"] == models.FieldChange{Old: "active", New: "blocked"}
		})).Return(nil)

	err := suite.makeUsecase().RecordUpdate(suite.ctx, suite.exec, "user", "42",
		models.Attributes{"name": "alice", "status": "active"},
		models.Attributes{"name": "alice", "status": "blocked"})

	suite.NoError(err)
	suite.AssertExpectations()
}

func (suite *RecorderUsecaseTestSuite) TestRecordUpdate_emptyDiffWritesNothing() {
	err := suite.makeUsecase().RecordUpdate(suite.ctx, suite.exec, "user", "42",
		models.Attributes{"name": "alice", "password_hash": "old"},
		models.Attributes{"name": "alice", "password_hash": "new"})

	suite.NoError(err)
	suite.changeRepository.AssertNotCalled(suite.T(), "CreateChange")
}

func (suite *RecorderUsecaseTestSuite) TestRecordDeletion() {
	suite.changeRepository.On("CreateChange", suite.exec,
		mock.MatchedBy(func(input models.CreateChangeInput) bool {
			return input.Action == models.ChangeActionDelete &&
				input.Diff["name"] == models.FieldChange{Old: "alice"}
		})).Return(nil)

	err := suite.makeUsecase().RecordDeletion(suite.ctx, suite.exec, "user", "42",
		models.Attributes{"name": "alice"})

	suite.NoError(err)
	suite.AssertExpectations()
}

func (suite *RecorderUsecaseTestSuite) TestRecord_untrackedSubject() {
	err := suite.makeUsecase().RecordCreation(suite.ctx, suite.exec, "invoice", "42",
		models.Attributes{"amount": 10})

	suite.ErrorIs(err, models.ErrSubjectNotTracked)
	suite.changeRepository.AssertNotCalled(suite.T(), "CreateChange")
}

func (suite *RecorderUsecaseTestSuite) TestRecord_invalidAction() {
	err := suite.makeUsecase().Record(suite.ctx, "user", "42", "merge", nil, nil)

	suite.ErrorIs(err, models.ErrInvalidAction)
}

func (suite *RecorderUsecaseTestSuite) TestRecord_actorFromContext() {
	ctx := utils.StoreCredentialsInContext(suite.ctx, models.Credentials{
		ActorIdentity: models.Identity{ActorId: "actor-1", ActorName: "Alice"},
	})

	suite.changeRepository.On("CreateChange", suite.exec,
		mock.MatchedBy(func(input models.CreateChangeInput) bool {
			return input.ActorId == "actor-1" && input.ActorName == "Alice"
		})).Return(nil)

	err := suite.makeUsecase().RecordCreation(ctx, suite.exec, "user", "42",
		models.Attributes{"name": "alice"})

	suite.NoError(err)
	suite.AssertExpectations()
}

func TestRecorderUsecase(t *testing.T) {
	suite.Run(t, new(RecorderUsecaseTestSuite))
}
