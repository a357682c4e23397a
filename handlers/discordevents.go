package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gammazero/workerpool"

	"starboard/core"
	"starboard/core/log"
	"starboard/middleware"
	"starboard/models"
	"starboard/reactions"
	"starboard/services"
	"starboard/usecases"
)

const (
	genericCommandFailure = "Something went wrong while creating the board, please try again later."

	// reactionEmojiRemovedEvent is dispatched when every reaction of one emoji is removed
	// from a message. discordgo has no typed handler for it.
	reactionEmojiRemovedEvent = "MESSAGE_REACTION_REMOVE_EMOJI"
)

type DiscordEventsHandler struct {
	session          *discordgo.Session
	boardSyncUseCase usecases.BoardSyncUseCaseInterface
	commandsService  services.CommandsService
	alerts           *middleware.ErrorAlertMiddleware
	commandGuildID   string
	eventTimeout     time.Duration

	// reactionPool processes reaction events concurrently; commandPool keeps slash commands
	// responsive while reactions are queued behind a burst.
	reactionPool *workerpool.WorkerPool
	commandPool  *workerpool.WorkerPool
}

// NewDiscordEventsHandler registers the gateway handlers on session. Handlers run on the
// gateway goroutine and only hand events off to the worker pools.
func NewDiscordEventsHandler(
	session *discordgo.Session,
	boardSyncUseCase usecases.BoardSyncUseCaseInterface,
	commandsService services.CommandsService,
	alerts *middleware.ErrorAlertMiddleware,
	commandGuildID string,
	eventTimeout time.Duration,
	eventWorkers int,
) *DiscordEventsHandler {
	handler := &DiscordEventsHandler{
		session:          session,
		boardSyncUseCase: boardSyncUseCase,
		commandsService:  commandsService,
		alerts:           alerts,
		commandGuildID:   commandGuildID,
		eventTimeout:     eventTimeout,
		reactionPool:     workerpool.New(eventWorkers),
		commandPool:      workerpool.New(1),
	}

	session.AddHandler(handler.handleReady)
	session.AddHandler(handler.handleReactionAddedEvent)
	session.AddHandler(handler.handleReactionRemovedEvent)
	session.AddHandler(handler.handleReactionsClearedEvent)
	session.AddHandler(handler.handleRawEvent)
	session.AddHandler(handler.handleInteractionCreatedEvent)

	session.SyncEvents = true
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessageReactions

	return handler
}

// StartBot opens the Discord connection and starts listening for events
func (h *DiscordEventsHandler) StartBot() error {
	if err := h.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Info("🤖 Discord bot is now running and listening for events")
	return nil
}

// StopBot closes the Discord connection and waits for queued events to finish
func (h *DiscordEventsHandler) StopBot() {
	if err := h.session.Close(); err != nil {
		log.Warn("⚠️ Failed to close Discord session cleanly", "error", err)
	}

	log.Info("🛑 Waiting for queued events to finish", "reactions", h.reactionPool.WaitingQueueSize())
	h.reactionPool.StopWait()
	h.commandPool.StopWait()
}

func (h *DiscordEventsHandler) runEvent(eventName string, handler func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), h.eventTimeout)
	defer cancel()

	h.alerts.WrapEventHandler(eventName, handler)(ctx)
}

func (h *DiscordEventsHandler) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info("🤖 Discord bot connected", "user", r.User.Username, "guilds", len(r.Guilds))

	appID := applicationID(r)
	h.commandPool.Submit(func() {
		h.runEvent("ready", func(ctx context.Context) error {
			return h.registerCommands(ctx, s, appID)
		})
	})
}

func (h *DiscordEventsHandler) registerCommands(ctx context.Context, s *discordgo.Session, appID string) error {
	scope := "global"
	if h.commandGuildID != "" {
		scope = "guild " + h.commandGuildID
	}
	log.Info("📋 Starting to register slash commands", "scope", scope)

	commands := []*discordgo.ApplicationCommand{createBoardCommand()}
	if _, err := s.ApplicationCommandBulkOverwrite(appID, h.commandGuildID, commands, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to register slash commands: %w", err)
	}

	log.Info("📋 Completed successfully - registered slash commands", "count", len(commands), "scope", scope)
	return nil
}

func applicationID(r *discordgo.Ready) string {
	if r.Application != nil && r.Application.ID != "" {
		return r.Application.ID
	}
	return r.User.ID
}

func (h *DiscordEventsHandler) handleReactionAddedEvent(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
	h.processReaction("reaction add", r.MessageReaction, false)
}

func (h *DiscordEventsHandler) handleReactionRemovedEvent(_ *discordgo.Session, r *discordgo.MessageReactionRemove) {
	h.processReaction("reaction remove", r.MessageReaction, true)
}

// handleReactionsClearedEvent covers a moderator removing all reactions from a message,
// which arrives as a single event instead of per-user removals
func (h *DiscordEventsHandler) handleReactionsClearedEvent(_ *discordgo.Session, r *discordgo.MessageReactionRemoveAll) {
	if r.MessageReaction == nil || r.GuildID == "" {
		return
	}

	event := models.ReactionsClearedEvent{
		GuildID:         r.GuildID,
		SourceMessageID: r.MessageID,
		SourceChannelID: r.ChannelID,
	}
	h.reactionPool.Submit(func() {
		h.runEvent("reactions cleared", func(ctx context.Context) error {
			return h.processReactionsCleared(ctx, event)
		})
	})
}

func (h *DiscordEventsHandler) handleRawEvent(_ *discordgo.Session, e *discordgo.Event) {
	if e.Type != reactionEmojiRemovedEvent {
		return
	}

	var reaction discordgo.MessageReaction
	if err := json.Unmarshal(e.RawData, &reaction); err != nil {
		log.Warn("⚠️ Failed to decode gateway event", "type", e.Type, "error", err)
		return
	}
	h.processReaction("reaction emoji remove", &reaction, true)
}

func (h *DiscordEventsHandler) processReaction(eventName string, reaction *discordgo.MessageReaction, isRemoval bool) {
	if reaction == nil || reaction.GuildID == "" {
		return
	}

	event := toReactionEvent(reaction, isRemoval)
	h.reactionPool.Submit(func() {
		h.runEvent(eventName, func(ctx context.Context) error {
			return h.processReactionEvent(ctx, event)
		})
	})
}

func (h *DiscordEventsHandler) processReactionEvent(ctx context.Context, event models.ReactionEvent) error {
	action, err := h.boardSyncUseCase.ProcessReactionEvent(ctx, event)
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			log.Info("⚠️ Reaction event lost a race to a concurrent event", "message_id", event.SourceMessageID)
			return nil
		}
		return err
	}

	if action != models.SyncActionNone {
		log.Info("📊 Board updated", "action", action, "message_id", event.SourceMessageID)
	}
	return nil
}

func (h *DiscordEventsHandler) processReactionsCleared(ctx context.Context, event models.ReactionsClearedEvent) error {
	actions, err := h.boardSyncUseCase.ProcessReactionsCleared(ctx, event)
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			log.Info("⚠️ Cleared reactions lost a race to a concurrent event", "message_id", event.SourceMessageID)
			return nil
		}
		return err
	}

	if len(actions) > 0 {
		log.Info("📊 Boards updated after reactions were cleared", "actions", actions, "message_id", event.SourceMessageID)
	}
	return nil
}

// toReactionEvent maps a Discord SDK reaction event to our domain model
func toReactionEvent(reaction *discordgo.MessageReaction, isRemoval bool) models.ReactionEvent {
	return models.ReactionEvent{
		GuildID:         reaction.GuildID,
		SourceMessageID: reaction.MessageID,
		SourceChannelID: reaction.ChannelID,
		ReactionKey:     reactions.FromEmoji(reaction.Emoji.Name, reaction.Emoji.ID),
		UserID:          reaction.UserID,
		IsRemoval:       isRemoval,
	}
}

func (h *DiscordEventsHandler) handleInteractionCreatedEvent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != createBoardCommandName {
		return
	}

	h.commandPool.Submit(func() {
		h.runEvent("createboard command", func(ctx context.Context) error {
			return h.respondToCreateBoard(ctx, s, i.Interaction, data.Options)
		})
	})
}

func (h *DiscordEventsHandler) respondToCreateBoard(
	ctx context.Context,
	s *discordgo.Session,
	interaction *discordgo.Interaction,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) error {
	reply, handleErr := h.handleCreateBoardCommand(ctx, interaction.GuildID, options)

	err := s.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: reply,
			AllowedMentions: &discordgo.MessageAllowedMentions{
				Parse: []discordgo.AllowedMentionType{},
			},
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return errors.Join(handleErr, fmt.Errorf("failed to respond to interaction: %w", err))
	}
	return handleErr
}

// handleCreateBoardCommand returns the reply text. The error is set only for failures
// that are not the user's fault; the reply is still sent in that case.
func (h *DiscordEventsHandler) handleCreateBoardCommand(
	ctx context.Context,
	guildID string,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) (string, error) {
	request, err := parseCreateBoardRequest(guildID, options)
	if err != nil {
		log.Info("⚠️ Rejected invalid createboard command", "guild_id", guildID, "error", err)
		return fmt.Sprintf("Invalid command: %v", err), nil
	}

	result, err := h.commandsService.CreateBoard(ctx, request)
	if err != nil {
		return genericCommandFailure, fmt.Errorf("failed to create board: %w", err)
	}
	return result.Message, nil
}
