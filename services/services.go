package services

import (
	"context"

	"github.com/samber/mo"

	"starboard/models"
)

// BoardStore defines persistence for board configs and source→board message mappings.
// Uniqueness of boards per (guild, reaction) and of mappings per (source message, board)
// is enforced by the store; violations surface as core.ErrConflict.
type BoardStore interface {
	FindBoard(ctx context.Context, guildID string, reactionKey models.ReactionKey) (mo.Option[*models.Board], error)
	InsertBoard(
		ctx context.Context,
		guildID, channelID string,
		reactionKey models.ReactionKey,
		threshold int,
	) (*models.Board, error)
	FindMapping(ctx context.Context, sourceMessageID, boardID string) (mo.Option[*models.MessageMapping], error)
	InsertMapping(ctx context.Context, sourceMessageID, sourceChannelID, boardMessageID, boardID string) error
	DeleteMapping(ctx context.Context, sourceMessageID, boardID string) (bool, error)
	// ListMappedBoards returns the boards that currently mirror the source message
	ListMappedBoards(ctx context.Context, sourceMessageID string) ([]*models.Board, error)
}

// BoardRegistry resolves which board, if any, tracks a reaction in a guild
type BoardRegistry interface {
	Resolve(ctx context.Context, guildID string, reactionKey models.ReactionKey) (mo.Option[*models.Board], error)
}

// CommandsService handles slash commands that change board configuration
type CommandsService interface {
	CreateBoard(ctx context.Context, request models.CreateBoardRequest) (*models.CommandResult, error)
}
