package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/repositories"
)

type SnapshotApplier struct {
	mock.Mock
}

func (m *SnapshotApplier) ApplySnapshot(ctx context.Context, tx repositories.Transaction,
	subjectId string, snapshot models.Attributes,
) error {
	args := m.Called(tx, subjectId, snapshot)
	return args.Error(0)
}
