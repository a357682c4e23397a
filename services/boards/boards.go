package boards

import (
	"context"
	"fmt"

	"github.com/samber/mo"

	"starboard/core"
	"starboard/core/log"
	"starboard/db"
	"starboard/models"
)

// BoardsService is the Postgres backed services.BoardStore
type BoardsService struct {
	boardsRepo   *db.PostgresBoardsRepository
	mappingsRepo *db.PostgresMessageMappingsRepository
}

func NewBoardsService(
	boardsRepo *db.PostgresBoardsRepository,
	mappingsRepo *db.PostgresMessageMappingsRepository,
) *BoardsService {
	return &BoardsService{
		boardsRepo:   boardsRepo,
		mappingsRepo: mappingsRepo,
	}
}

func (s *BoardsService) FindBoard(
	ctx context.Context,
	guildID string,
	reactionKey models.ReactionKey,
) (mo.Option[*models.Board], error) {
	if guildID == "" {
		return mo.None[*models.Board](), fmt.Errorf("guild ID cannot be empty")
	}
	if reactionKey == "" {
		return mo.None[*models.Board](), fmt.Errorf("reaction key cannot be empty")
	}

	maybeBoard, err := s.boardsRepo.GetBoardByGuildAndReaction(ctx, guildID, reactionKey)
	if err != nil {
		return mo.None[*models.Board](), fmt.Errorf("failed to find board: %w", err)
	}

	return maybeBoard, nil
}

func (s *BoardsService) InsertBoard(
	ctx context.Context,
	guildID, channelID string,
	reactionKey models.ReactionKey,
	threshold int,
) (*models.Board, error) {
	log.Info("📋 Starting to insert board", "guild_id", guildID, "channel_id", channelID, "reaction", reactionKey)

	if guildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}
	if channelID == "" {
		return nil, fmt.Errorf("channel ID cannot be empty")
	}
	if reactionKey == "" {
		return nil, fmt.Errorf("reaction key cannot be empty")
	}
	if threshold < 1 {
		return nil, fmt.Errorf("threshold must be at least 1, got %d", threshold)
	}

	board := &models.Board{
		ID:          core.NewID(core.BoardIDPrefix),
		GuildID:     guildID,
		ChannelID:   channelID,
		ReactionKey: reactionKey,
		Threshold:   threshold,
	}
	if err := s.boardsRepo.CreateBoard(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to insert board: %w", err)
	}

	log.Info("📋 Completed successfully - inserted board", "board_id", board.ID)
	return board, nil
}

func (s *BoardsService) FindMapping(
	ctx context.Context,
	sourceMessageID, boardID string,
) (mo.Option[*models.MessageMapping], error) {
	if sourceMessageID == "" {
		return mo.None[*models.MessageMapping](), fmt.Errorf("source message ID cannot be empty")
	}
	if boardID == "" {
		return mo.None[*models.MessageMapping](), fmt.Errorf("board ID cannot be empty")
	}

	maybeMapping, err := s.mappingsRepo.GetMessageMapping(ctx, sourceMessageID, boardID)
	if err != nil {
		return mo.None[*models.MessageMapping](), fmt.Errorf("failed to find message mapping: %w", err)
	}

	return maybeMapping, nil
}

func (s *BoardsService) InsertMapping(
	ctx context.Context,
	sourceMessageID, sourceChannelID, boardMessageID, boardID string,
) error {
	log.Info("📋 Starting to insert message mapping",
		"source_message_id", sourceMessageID, "board_message_id", boardMessageID, "board_id", boardID)

	if sourceMessageID == "" {
		return fmt.Errorf("source message ID cannot be empty")
	}
	if boardMessageID == "" {
		return fmt.Errorf("board message ID cannot be empty")
	}
	if boardID == "" {
		return fmt.Errorf("board ID cannot be empty")
	}

	mapping := &models.MessageMapping{
		ID:              core.NewID(core.MappingIDPrefix),
		SourceMessageID: sourceMessageID,
		SourceChannelID: sourceChannelID,
		BoardMessageID:  boardMessageID,
		BoardID:         boardID,
	}
	if err := s.mappingsRepo.CreateMessageMapping(ctx, mapping); err != nil {
		return fmt.Errorf("failed to insert message mapping: %w", err)
	}

	log.Info("📋 Completed successfully - inserted message mapping", "mapping_id", mapping.ID)
	return nil
}

func (s *BoardsService) DeleteMapping(ctx context.Context, sourceMessageID, boardID string) (bool, error) {
	log.Info("📋 Starting to delete message mapping", "source_message_id", sourceMessageID, "board_id", boardID)

	if sourceMessageID == "" {
		return false, fmt.Errorf("source message ID cannot be empty")
	}
	if boardID == "" {
		return false, fmt.Errorf("board ID cannot be empty")
	}

	deleted, err := s.mappingsRepo.DeleteMessageMapping(ctx, sourceMessageID, boardID)
	if err != nil {
		return false, fmt.Errorf("failed to delete message mapping: %w", err)
	}

	log.Info("📋 Completed successfully - deleted message mapping", "deleted", deleted)
	return deleted, nil
}

func (s *BoardsService) ListMappedBoards(ctx context.Context, sourceMessageID string) ([]*models.Board, error) {
	if sourceMessageID == "" {
		return nil, fmt.Errorf("source message ID cannot be empty")
	}

	mappedBoards, err := s.boardsRepo.ListBoardsByMappedSource(ctx, sourceMessageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mapped boards: %w", err)
	}

	return mappedBoards, nil
}
