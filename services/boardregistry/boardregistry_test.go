package boardregistry

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starboard/models"
	"starboard/services"
	"starboard/services/boards"
)

var _ services.BoardRegistry = (*BoardRegistry)(nil)
var _ services.BoardRegistry = (*MockBoardRegistry)(nil)

func TestBoardRegistry_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored board", func(t *testing.T) {
		store := new(boards.MockBoardStore)
		board := &models.Board{ID: "brd_1", GuildID: "guild-1", ReactionKey: "⭐", Threshold: 3}
		store.On("FindBoard", ctx, "guild-1", models.ReactionKey("⭐")).Return(mo.Some(board), nil)

		maybeBoard, err := NewBoardRegistry(store).Resolve(ctx, "guild-1", "⭐")

		require.NoError(t, err)
		assert.Equal(t, board, maybeBoard.MustGet())
		store.AssertExpectations(t)
	})

	t.Run("untracked reaction", func(t *testing.T) {
		store := new(boards.MockBoardStore)
		store.On("FindBoard", ctx, "guild-1", models.ReactionKey("😀")).Return(mo.None[*models.Board](), nil)

		maybeBoard, err := NewBoardRegistry(store).Resolve(ctx, "guild-1", "😀")

		require.NoError(t, err)
		assert.False(t, maybeBoard.IsPresent())
	})

	t.Run("custom reactions never reach the store", func(t *testing.T) {
		store := new(boards.MockBoardStore)

		maybeBoard, err := NewBoardRegistry(store).Resolve(ctx, "guild-1", "custom:123")

		require.NoError(t, err)
		assert.False(t, maybeBoard.IsPresent())
		store.AssertNotCalled(t, "FindBoard")
	})

	t.Run("store errors propagate", func(t *testing.T) {
		store := new(boards.MockBoardStore)
		storeErr := errors.New("failed to find board: store unavailable")
		store.On("FindBoard", ctx, "guild-1", models.ReactionKey("⭐")).Return(nil, storeErr)

		_, err := NewBoardRegistry(store).Resolve(ctx, "guild-1", "⭐")

		assert.Equal(t, storeErr, err)
	})
}
