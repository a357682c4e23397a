package boardsync

import (
	"context"

	"github.com/stretchr/testify/mock"

	"starboard/models"
)

type MockBoardSyncUseCase struct {
	mock.Mock
}

func (m *MockBoardSyncUseCase) ProcessReactionEvent(
	ctx context.Context,
	event models.ReactionEvent,
) (models.SyncAction, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(models.SyncAction), args.Error(1)
}

func (m *MockBoardSyncUseCase) ProcessReactionsCleared(
	ctx context.Context,
	event models.ReactionsClearedEvent,
) ([]models.SyncAction, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SyncAction), args.Error(1)
}
