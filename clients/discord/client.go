package discord

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"starboard/clients"
	"starboard/core"
	"starboard/models"
	"starboard/reactions"
)

// DiscordClient implements the clients.DiscordClient interface on top of a discordgo session
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient wraps an existing session. The session is shared with the gateway
// handlers so REST calls reuse its rate limiter.
func NewDiscordClient(session *discordgo.Session) clients.DiscordClient {
	return &DiscordClient{session: session}
}

// SendMessage posts a board message with every mention type suppressed
func (c *DiscordClient) SendMessage(
	ctx context.Context,
	channelID string,
	body models.BoardMessageBody,
) (*models.MessageHandle, error) {
	message, err := c.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: body.Content,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}

	return &models.MessageHandle{
		ChannelID: message.ChannelID,
		MessageID: message.ID,
	}, nil
}

// GetMessage fetches a message together with its aggregate reaction counts
func (c *DiscordClient) GetMessage(ctx context.Context, channelID, messageID string) (*models.MessageSnapshot, error) {
	message, err := c.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message %s: %w", messageID,
			mapRESTError(err, discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownChannel))
	}

	return toMessageSnapshot(message), nil
}

// DeleteMessage treats only an unknown message as not found. A missing channel is
// surfaced as a plain failure so mappings pointing into it are kept.
func (c *DiscordClient) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	if err := c.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete message %s: %w", messageID, mapRESTError(err, discordgo.ErrCodeUnknownMessage))
	}
	return nil
}

// ResolveNickname returns the member's guild nickname. Members without a nickname,
// or who have left the guild, resolve to None.
func (c *DiscordClient) ResolveNickname(ctx context.Context, guildID, userID string) (mo.Option[string], error) {
	member, err := c.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		mapped := mapRESTError(err, discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownUser)
		if core.IsNotFoundError(mapped) {
			return mo.None[string](), nil
		}
		return mo.None[string](), fmt.Errorf("failed to fetch guild member %s: %w", userID, mapped)
	}
	if member == nil || member.Nick == "" {
		return mo.None[string](), nil
	}
	return mo.Some(member.Nick), nil
}

func toMessageSnapshot(message *discordgo.Message) *models.MessageSnapshot {
	snapshot := &models.MessageSnapshot{
		Content: message.Content,
	}

	if message.Author != nil {
		snapshot.Author = models.MessageAuthor{
			ID:  message.Author.ID,
			Tag: userTag(message.Author),
		}
	}

	for _, attachment := range message.Attachments {
		if attachment == nil || attachment.URL == "" {
			continue
		}
		snapshot.AttachmentURLs = append(snapshot.AttachmentURLs, attachment.URL)
	}

	for _, reaction := range message.Reactions {
		if reaction == nil || reaction.Emoji == nil {
			continue
		}
		snapshot.Reactions = append(snapshot.Reactions, models.MessageReactionCount{
			ReactionKey: reactions.FromEmoji(reaction.Emoji.Name, reaction.Emoji.ID),
			Count:       reaction.Count,
		})
	}

	return snapshot
}

// userTag renders name#discriminator for legacy accounts and the bare username for
// accounts migrated to unique usernames.
func userTag(user *discordgo.User) string {
	if user.Discriminator == "" || user.Discriminator == "0" {
		return user.Username
	}
	return user.Username + "#" + user.Discriminator
}

// mapRESTError marks the listed Discord error codes as core.ErrNotFound and returns
// every other failure unchanged
func mapRESTError(err error, notFoundCodes ...int) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return err
	}

	if slices.Contains(notFoundCodes, restErr.Message.Code) {
		return fmt.Errorf("%w: %w", core.ErrNotFound, err)
	}
	return err
}
