package boards

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"starboard/models"
)

// MockBoardStore is a mock implementation of services.BoardStore
type MockBoardStore struct {
	mock.Mock
}

func (m *MockBoardStore) FindBoard(
	ctx context.Context,
	guildID string,
	reactionKey models.ReactionKey,
) (mo.Option[*models.Board], error) {
	args := m.Called(ctx, guildID, reactionKey)
	if args.Get(0) == nil {
		return mo.None[*models.Board](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.Board]), args.Error(1)
}

func (m *MockBoardStore) InsertBoard(
	ctx context.Context,
	guildID, channelID string,
	reactionKey models.ReactionKey,
	threshold int,
) (*models.Board, error) {
	args := m.Called(ctx, guildID, channelID, reactionKey, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Board), args.Error(1)
}

func (m *MockBoardStore) FindMapping(
	ctx context.Context,
	sourceMessageID, boardID string,
) (mo.Option[*models.MessageMapping], error) {
	args := m.Called(ctx, sourceMessageID, boardID)
	if args.Get(0) == nil {
		return mo.None[*models.MessageMapping](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.MessageMapping]), args.Error(1)
}

func (m *MockBoardStore) InsertMapping(
	ctx context.Context,
	sourceMessageID, sourceChannelID, boardMessageID, boardID string,
) error {
	args := m.Called(ctx, sourceMessageID, sourceChannelID, boardMessageID, boardID)
	return args.Error(0)
}

func (m *MockBoardStore) DeleteMapping(ctx context.Context, sourceMessageID, boardID string) (bool, error) {
	args := m.Called(ctx, sourceMessageID, boardID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBoardStore) ListMappedBoards(ctx context.Context, sourceMessageID string) ([]*models.Board, error) {
	args := m.Called(ctx, sourceMessageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Board), args.Error(1)
}
