package commands

import (
	"context"
	"errors"
	"fmt"

	"starboard/core"
	"starboard/core/log"
	"starboard/models"
	"starboard/reactions"
	"starboard/services"
)

const (
	unsupportedReactionMessage = "Sorry, %s can't be used for a board. Only standard unicode emoji are supported, custom (non-unicode) emoji are not."
	invalidThresholdMessage    = "The threshold must be at least 1, got %d."
	boardExistsMessage         = "A board already exists for the %s reaction in this server."
	boardCreatedMessage        = "Created! I will now post messages with at least %d %s reactions to <#%s>."
)

type CommandsService struct {
	boardStore services.BoardStore
}

func NewCommandsService(boardStore services.BoardStore) *CommandsService {
	return &CommandsService{boardStore: boardStore}
}

// CreateBoard validates the request and stores the board. Rejections the user can fix are
// returned as an unsuccessful CommandResult; only infrastructure failures return an error.
func (s *CommandsService) CreateBoard(
	ctx context.Context,
	request models.CreateBoardRequest,
) (*models.CommandResult, error) {
	log.Info("📋 Starting to create board",
		"guild_id", request.GuildID, "channel_id", request.ChannelID, "emoji", request.ReactionRaw, "threshold", request.Threshold)

	reactionKey, err := reactions.FromRaw(request.ReactionRaw)
	if err != nil {
		log.Info("⚠️ Rejected board with unsupported reaction", "emoji", request.ReactionRaw, "reason", err)
		return &models.CommandResult{
			Success: false,
			Message: fmt.Sprintf(unsupportedReactionMessage, request.ReactionRaw),
		}, nil
	}

	if request.Threshold < 1 {
		return &models.CommandResult{
			Success: false,
			Message: fmt.Sprintf(invalidThresholdMessage, request.Threshold),
		}, nil
	}

	board, err := s.boardStore.InsertBoard(ctx, request.GuildID, request.ChannelID, reactionKey, request.Threshold)
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			log.Info("⚠️ Board already exists", "guild_id", request.GuildID, "reaction", reactionKey)
			return &models.CommandResult{
				Success: false,
				Message: fmt.Sprintf(boardExistsMessage, reactionKey),
			}, nil
		}
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	log.Info("📋 Completed successfully - created board", "board_id", board.ID)
	return &models.CommandResult{
		Success: true,
		Message: fmt.Sprintf(boardCreatedMessage, board.Threshold, board.ReactionKey, board.ChannelID),
	}, nil
}
