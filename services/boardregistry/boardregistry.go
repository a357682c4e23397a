package boardregistry

import (
	"context"

	"github.com/samber/mo"

	"starboard/models"
	"starboard/services"
)

// BoardRegistry resolves the board tracking a reaction. Only one board can match a
// (guild, reaction) pair today; multi-board policy would live here.
type BoardRegistry struct {
	boardStore services.BoardStore
}

func NewBoardRegistry(boardStore services.BoardStore) *BoardRegistry {
	return &BoardRegistry{boardStore: boardStore}
}

func (r *BoardRegistry) Resolve(
	ctx context.Context,
	guildID string,
	reactionKey models.ReactionKey,
) (mo.Option[*models.Board], error) {
	if reactionKey.IsCustom() {
		return mo.None[*models.Board](), nil
	}
	return r.boardStore.FindBoard(ctx, guildID, reactionKey)
}
