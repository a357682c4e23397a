package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"starboard/models"
)

const (
	createBoardCommandName = "createboard"

	channelOptionName   = "channel"
	emojiOptionName     = "emoji"
	thresholdOptionName = "threshold"
)

var errNotInGuild = errors.New("this command can only be used inside a server")

func createBoardCommand() *discordgo.ApplicationCommand {
	minThreshold := float64(1)
	manageChannels := int64(discordgo.PermissionManageChannels)

	return &discordgo.ApplicationCommand{
		Name:                     createBoardCommandName,
		Description:              "Creates a board (like Starboard)",
		DefaultMemberPermissions: &manageChannels,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionChannel,
				Name:         channelOptionName,
				Description:  "The channel to post messages to",
				Required:     true,
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        emojiOptionName,
				Description: "The emoji that people react with to get it on the board",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        thresholdOptionName,
				Description: "The number of reactions required to make it onto the board",
				Required:    true,
				MinValue:    &minThreshold,
			},
		},
	}
}

// parseCreateBoardRequest destructures the createboard options into a typed request.
// Option values arrive JSON-decoded, so integers are float64.
func parseCreateBoardRequest(
	guildID string,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) (models.CreateBoardRequest, error) {
	if guildID == "" {
		return models.CreateBoardRequest{}, errNotInGuild
	}

	request := models.CreateBoardRequest{GuildID: guildID}
	var hasChannel, hasEmoji, hasThreshold bool

	for _, option := range options {
		if option == nil {
			continue
		}
		switch option.Name {
		case channelOptionName:
			channelID, ok := option.Value.(string)
			if !ok || channelID == "" {
				return models.CreateBoardRequest{}, fmt.Errorf("option %q must be a channel", channelOptionName)
			}
			request.ChannelID = channelID
			hasChannel = true
		case emojiOptionName:
			emoji, ok := option.Value.(string)
			if !ok || strings.TrimSpace(emoji) == "" {
				return models.CreateBoardRequest{}, fmt.Errorf("option %q must be an emoji", emojiOptionName)
			}
			request.ReactionRaw = strings.TrimSpace(emoji)
			hasEmoji = true
		case thresholdOptionName:
			threshold, err := integerOptionValue(option.Value)
			if err != nil {
				return models.CreateBoardRequest{}, fmt.Errorf("option %q %w", thresholdOptionName, err)
			}
			request.Threshold = threshold
			hasThreshold = true
		}
	}

	switch {
	case !hasChannel:
		return models.CreateBoardRequest{}, fmt.Errorf("missing required option %q", channelOptionName)
	case !hasEmoji:
		return models.CreateBoardRequest{}, fmt.Errorf("missing required option %q", emojiOptionName)
	case !hasThreshold:
		return models.CreateBoardRequest{}, fmt.Errorf("missing required option %q", thresholdOptionName)
	}

	return request, nil
}

func integerOptionValue(value any) (int, error) {
	switch v := value.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("must be a whole number, got %v", v)
		}
		return int(v), nil
	case int64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("must be a number, got %T", value)
	}
}
