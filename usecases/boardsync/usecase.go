package boardsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"starboard/clients"
	"starboard/core"
	"starboard/core/log"
	"starboard/models"
	"starboard/services"
)

const (
	// cleanupTimeout bounds compensating deletes, which run even if the event context expired
	cleanupTimeout = 5 * time.Second

	messageLinkFormat = "https://discord.com/channels/%s/%s/%s"

	// maxMessageLength is the platform limit on message content, in characters
	maxMessageLength = 2000
	truncationMarker = "…"
	footerSeparator  = "\n\n"
)

// BoardSyncUseCase keeps board messages in sync with reaction counts on source messages.
// It holds no per-message state: every event re-reads the platform counts and the store.
type BoardSyncUseCase struct {
	boardRegistry services.BoardRegistry
	boardStore    services.BoardStore
	discordClient clients.DiscordClient
}

// NewBoardSyncUseCase creates a new instance of BoardSyncUseCase
func NewBoardSyncUseCase(
	boardRegistry services.BoardRegistry,
	boardStore services.BoardStore,
	discordClient clients.DiscordClient,
) *BoardSyncUseCase {
	return &BoardSyncUseCase{
		boardRegistry: boardRegistry,
		boardStore:    boardStore,
		discordClient: discordClient,
	}
}

func (u *BoardSyncUseCase) ProcessReactionEvent(
	ctx context.Context,
	event models.ReactionEvent,
) (models.SyncAction, error) {
	log.Info("📋 Starting to process reaction event",
		"guild_id", event.GuildID,
		"channel_id", event.SourceChannelID,
		"message_id", event.SourceMessageID,
		"reaction", event.ReactionKey,
		"user_id", event.UserID,
		"removal", event.IsRemoval)

	// Step 1: Resolve the board tracking this reaction
	maybeBoard, err := u.boardRegistry.Resolve(ctx, event.GuildID, event.ReactionKey)
	if err != nil {
		log.Error("❌ Failed to resolve board", "guild_id", event.GuildID, "error", err)
		return models.SyncActionNone, fmt.Errorf("failed to resolve board: %w", err)
	}
	board, ok := maybeBoard.Get()
	if !ok {
		log.Debug("🔍 No board tracks this reaction - ignoring event", "reaction", event.ReactionKey)
		return models.SyncActionNone, nil
	}
	if event.SourceChannelID == board.ChannelID {
		log.Debug("🔍 Reaction is inside the board channel - ignoring event", "board_id", board.ID)
		return models.SyncActionNone, nil
	}

	// Step 2: Read the aggregate count from the platform
	message, err := u.discordClient.GetMessage(ctx, event.SourceChannelID, event.SourceMessageID)
	if err != nil {
		if core.IsNotFoundError(err) {
			log.Info("🔍 Source message no longer exists - ignoring event", "message_id", event.SourceMessageID)
			return models.SyncActionNone, nil
		}
		log.Error("❌ Failed to fetch source message", "message_id", event.SourceMessageID, "error", err)
		return models.SyncActionNone, fmt.Errorf("failed to fetch source message: %w", err)
	}

	// Step 3: Compare against the board threshold
	count := message.CountFor(board.ReactionKey)
	qualifies := count >= board.Threshold

	maybeMapping, err := u.boardStore.FindMapping(ctx, event.SourceMessageID, board.ID)
	if err != nil {
		log.Error("❌ Failed to look up board message mapping", "message_id", event.SourceMessageID, "error", err)
		return models.SyncActionNone, fmt.Errorf("failed to look up board message mapping: %w", err)
	}
	mapping, mapped := maybeMapping.Get()

	log.Debug("📊 Evaluated reaction count",
		"board_id", board.ID, "count", count, "threshold", board.Threshold, "mapped", mapped)

	switch {
	case qualifies && !mapped:
		return u.postToBoard(ctx, board, event, message)
	case !qualifies && event.IsRemoval && mapped:
		return u.removeFromBoard(ctx, board, mapping)
	default:
		log.Info("📋 Completed successfully - board already in sync", "board_id", board.ID, "count", count)
		return models.SyncActionNone, nil
	}
}

// ProcessReactionsCleared handles every reaction on a message being cleared at once. No
// per-user removals follow such a clear, so each board mirroring the message is
// re-evaluated as a removal of its reaction.
func (u *BoardSyncUseCase) ProcessReactionsCleared(
	ctx context.Context,
	event models.ReactionsClearedEvent,
) ([]models.SyncAction, error) {
	log.Info("📋 Starting to process cleared reactions",
		"guild_id", event.GuildID, "channel_id", event.SourceChannelID, "message_id", event.SourceMessageID)

	mappedBoards, err := u.boardStore.ListMappedBoards(ctx, event.SourceMessageID)
	if err != nil {
		log.Error("❌ Failed to list boards mirroring message", "message_id", event.SourceMessageID, "error", err)
		return nil, fmt.Errorf("failed to list boards mirroring message: %w", err)
	}

	actions := make([]models.SyncAction, 0, len(mappedBoards))
	var errs []error
	for _, board := range mappedBoards {
		action, err := u.ProcessReactionEvent(ctx, models.ReactionEvent{
			GuildID:         event.GuildID,
			SourceMessageID: event.SourceMessageID,
			SourceChannelID: event.SourceChannelID,
			ReactionKey:     board.ReactionKey,
			IsRemoval:       true,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("board %s: %w", board.ID, err))
			continue
		}
		actions = append(actions, action)
	}
	if err := errors.Join(errs...); err != nil {
		return actions, fmt.Errorf("failed to process cleared reactions: %w", err)
	}

	log.Info("📋 Completed successfully - processed cleared reactions",
		"message_id", event.SourceMessageID, "boards", len(mappedBoards))
	return actions, nil
}

// postToBoard sends the board message and records it. If recording fails, including
// losing a race to a concurrent event, the sent message is removed again.
func (u *BoardSyncUseCase) postToBoard(
	ctx context.Context,
	board *models.Board,
	event models.ReactionEvent,
	message *models.MessageSnapshot,
) (models.SyncAction, error) {
	body := u.buildBoardMessageBody(ctx, event, message)

	handle, err := u.discordClient.SendMessage(ctx, board.ChannelID, body)
	if err != nil {
		log.Error("❌ Failed to send board message", "board_id", board.ID, "channel_id", board.ChannelID, "error", err)
		return models.SyncActionNone, fmt.Errorf("failed to send board message: %w", err)
	}

	err = u.boardStore.InsertMapping(ctx, event.SourceMessageID, event.SourceChannelID, handle.MessageID, board.ID)
	if err != nil {
		if core.IsConflictError(err) {
			log.Info("⚠️ Source message was posted by a concurrent event - removing duplicate",
				"message_id", event.SourceMessageID, "board_message_id", handle.MessageID)
		} else {
			log.Error("❌ Failed to record board message mapping", "message_id", event.SourceMessageID, "error", err)
		}
		u.deleteSentMessage(ctx, handle)
		return models.SyncActionNone, fmt.Errorf("failed to record board message mapping: %w", err)
	}

	log.Info("📋 Completed successfully - posted to board",
		"board_id", board.ID, "message_id", event.SourceMessageID, "board_message_id", handle.MessageID)
	return models.SyncActionPosted, nil
}

func (u *BoardSyncUseCase) deleteSentMessage(ctx context.Context, handle *models.MessageHandle) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := u.discordClient.DeleteMessage(cleanupCtx, handle.ChannelID, handle.MessageID); err != nil {
		log.Error("❌ Failed to delete unrecorded board message",
			"channel_id", handle.ChannelID, "board_message_id", handle.MessageID, "error", err)
	}
}

func (u *BoardSyncUseCase) removeFromBoard(
	ctx context.Context,
	board *models.Board,
	mapping *models.MessageMapping,
) (models.SyncAction, error) {
	err := u.discordClient.DeleteMessage(ctx, board.ChannelID, mapping.BoardMessageID)
	switch {
	case core.IsNotFoundError(err):
		log.Warn("⚠️ Board message was already deleted", "board_message_id", mapping.BoardMessageID)
	case err != nil:
		log.Error("❌ Failed to delete board message", "board_message_id", mapping.BoardMessageID, "error", err)
		return models.SyncActionNone, fmt.Errorf("failed to delete board message: %w", err)
	}

	deleted, err := u.boardStore.DeleteMapping(ctx, mapping.SourceMessageID, board.ID)
	if err != nil {
		// The board message is gone but the mapping remains. A later qualifying event
		// will find the mapping and not repost until it is cleaned up.
		log.Error("❌ Stale board message mapping left behind",
			"mapping_id", mapping.ID, "board_message_id", mapping.BoardMessageID, "error", err)
		return models.SyncActionUnposted, nil
	}
	if !deleted {
		log.Info("⚠️ Board message mapping was already removed", "mapping_id", mapping.ID)
	}

	log.Info("📋 Completed successfully - removed from board",
		"board_id", board.ID, "message_id", mapping.SourceMessageID, "board_message_id", mapping.BoardMessageID)
	return models.SyncActionUnposted, nil
}

// buildBoardMessageBody renders the mirrored copy: original content, attachments,
// then an attribution footer with a jump link back to the source message.
// The footer and attachment links are kept whole; the content is shortened to fit.
func (u *BoardSyncUseCase) buildBoardMessageBody(
	ctx context.Context,
	event models.ReactionEvent,
	message *models.MessageSnapshot,
) models.BoardMessageBody {
	attribution := fmt.Sprintf("Posted by **%s** in <#%s>",
		u.authorName(ctx, event.GuildID, message.Author), event.SourceChannelID)
	footer := attribution + "\n" + fmt.Sprintf(messageLinkFormat, event.GuildID, event.SourceChannelID, event.SourceMessageID)
	available := maxMessageLength - utf8.RuneCountInString(footer) - len(footerSeparator)

	var attachments []string
	used := 0
	for _, url := range message.AttachmentURLs {
		cost := utf8.RuneCountInString(url)
		if len(attachments) > 0 {
			cost++
		}
		if used+cost > available {
			break
		}
		attachments = append(attachments, url)
		used += cost
	}

	var lines []string
	if content := strings.TrimSpace(message.Content); content != "" {
		room := available - used
		if len(attachments) > 0 {
			room--
		}
		if content = truncateRunes(content, room); content != "" {
			lines = append(lines, content)
		}
	}
	lines = append(lines, attachments...)

	if len(lines) == 0 {
		return models.BoardMessageBody{Content: footer}
	}
	return models.BoardMessageBody{Content: strings.Join(lines, "\n") + footerSeparator + footer}
}

// truncateRunes shortens s to at most limit runes, ending it with truncationMarker when cut
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	markerLength := utf8.RuneCountInString(truncationMarker)
	if limit <= markerLength {
		return ""
	}
	runes := []rune(s)
	return strings.TrimRightFunc(string(runes[:limit-markerLength]), unicode.IsSpace) + truncationMarker
}

// authorName prefers the guild nickname and falls back to the account tag
func (u *BoardSyncUseCase) authorName(ctx context.Context, guildID string, author models.MessageAuthor) string {
	if author.ID == "" {
		return author.Tag
	}

	maybeNickname, err := u.discordClient.ResolveNickname(ctx, guildID, author.ID)
	if err != nil {
		log.Warn("⚠️ Failed to resolve author nickname, using account tag", "user_id", author.ID, "error", err)
		return author.Tag
	}
	return maybeNickname.OrElse(author.Tag)
}
