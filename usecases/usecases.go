package usecases

import (
	"github.com/trailmark/trailmark-backend/repositories"
	"github.com/trailmark/trailmark-backend/usecases/executor_factory"
	"github.com/trailmark/trailmark-backend/usecases/tracking"
)

type Usecases struct {
	executorFactory  executor_factory.ExecutorFactory
	changeRepository repositories.ChangeRepository
	registry         *tracking.Registry
}

func NewUsecases(
	executorFactory executor_factory.ExecutorFactory,
	registry *tracking.Registry,
) Usecases {
	return Usecases{
		executorFactory:  executorFactory,
		changeRepository: repositories.ChangeRepositoryPostgresql{},
		registry:         registry,
	}
}

func (u Usecases) NewRecorderUsecase() RecorderUsecase {
	return RecorderUsecase{
		executorFactory:  u.executorFactory,
		registry:         u.registry,
		changeRepository: u.changeRepository,
	}
}

func (u Usecases) NewChangeReaderUsecase() ChangeReaderUsecase {
	return ChangeReaderUsecase{
		executorFactory:  u.executorFactory,
		changeRepository: u.changeRepository,
	}
}

func (u Usecases) NewRevertUsecase() RevertUsecase {
	return RevertUsecase{
		executorFactory:  u.executorFactory,
		changeRepository: u.changeRepository,
		registry:         u.registry,
	}
}

func (u Usecases) NewSubscriber() tracking.Subscriber {
	return tracking.NewSubscriber(u.registry, u.NewRecorderUsecase())
}
