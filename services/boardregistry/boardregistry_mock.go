package boardregistry

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"starboard/models"
)

type MockBoardRegistry struct {
	mock.Mock
}

func (m *MockBoardRegistry) Resolve(
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
