package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"starboard/models"
	"starboard/services/commands"
)

func commandOptions(channel, emoji any, threshold any) []*discordgo.ApplicationCommandInteractionDataOption {
	return []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: channelOptionName, Type: discordgo.ApplicationCommandOptionChannel, Value: channel},
		{Name: emojiOptionName, Type: discordgo.ApplicationCommandOptionString, Value: emoji},
		{Name: thresholdOptionName, Type: discordgo.ApplicationCommandOptionInteger, Value: threshold},
	}
}

func TestParseCreateBoardRequest(t *testing.T) {
	t.Run("valid options", func(t *testing.T) {
		request, err := parseCreateBoardRequest("guild-1", commandOptions("channel-1", " ⭐ ", float64(3)))

		require.NoError(t, err)
		assert.Equal(t, models.CreateBoardRequest{
			GuildID:     "guild-1",
			ChannelID:   "channel-1",
			ReactionRaw: "⭐",
			Threshold:   3,
		}, request)
	})

	t.Run("threshold below one is left to the command service", func(t *testing.T) {
		request, err := parseCreateBoardRequest("guild-1", commandOptions("channel-1", "⭐", float64(0)))

		require.NoError(t, err)
		assert.Equal(t, 0, request.Threshold)
	})

	tests := []struct {
		name     string
		guildID  string
		options  []*discordgo.ApplicationCommandInteractionDataOption
		contains string
	}{
		{
			name:     "outside a guild",
			guildID:  "",
			options:  commandOptions("channel-1", "⭐", float64(3)),
			contains: "inside a server",
		},
		{
			name:     "missing channel",
			guildID:  "guild-1",
			options:  commandOptions("channel-1", "⭐", float64(3))[1:],
			contains: `missing required option "channel"`,
		},
		{
			name:     "missing threshold",
			guildID:  "guild-1",
			options:  commandOptions("channel-1", "⭐", float64(3))[:2],
			contains: `missing required option "threshold"`,
		},
		{
			name:     "blank emoji",
			guildID:  "guild-1",
			options:  commandOptions("channel-1", "   ", float64(3)),
			contains: `option "emoji"`,
		},
		{
			name:     "fractional threshold",
			guildID:  "guild-1",
			options:  commandOptions("channel-1", "⭐", 2.5),
			contains: "whole number",
		},
		{
			name:     "threshold of wrong type",
			guildID:  "guild-1",
			options:  commandOptions("channel-1", "⭐", "three"),
			contains: "must be a number",
		},
		{
			name:     "channel of wrong type",
			guildID:  "guild-1",
			options:  commandOptions(42, "⭐", float64(3)),
			contains: `option "channel"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCreateBoardRequest(tt.guildID, tt.options)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestCreateBoardCommandDefinition(t *testing.T) {
	command := createBoardCommand()

	assert.Equal(t, "createboard", command.Name)
	require.Len(t, command.Options, 3)
	for _, option := range command.Options {
		assert.True(t, option.Required, option.Name)
	}
	assert.Equal(t, []discordgo.ChannelType{discordgo.ChannelTypeGuildText}, command.Options[0].ChannelTypes)
	require.NotNil(t, command.Options[2].MinValue)
	assert.Equal(t, float64(1), *command.Options[2].MinValue)
}

func TestHandleCreateBoardCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("replies with the service message", func(t *testing.T) {
		commandsService := new(commands.MockCommandsService)
		handler := &DiscordEventsHandler{commandsService: commandsService}
		commandsService.On("CreateBoard", ctx, models.CreateBoardRequest{
			GuildID: "guild-1", ChannelID: "channel-1", ReactionRaw: "⭐", Threshold: 3,
		}).Return(&models.CommandResult{Success: true, Message: "Created!"}, nil)

		reply, err := handler.handleCreateBoardCommand(ctx, "guild-1", commandOptions("channel-1", "⭐", float64(3)))

		require.NoError(t, err)
		assert.Equal(t, "Created!", reply)
		commandsService.AssertExpectations(t)
	})

	t.Run("invalid options never reach the service", func(t *testing.T) {
		commandsService := new(commands.MockCommandsService)
		handler := &DiscordEventsHandler{commandsService: commandsService}

		reply, err := handler.handleCreateBoardCommand(ctx, "guild-1", commandOptions("channel-1", "⭐", nil))

		require.NoError(t, err)
		assert.Contains(t, reply, "Invalid command")
		commandsService.AssertNotCalled(t, "CreateBoard", mock.Anything, mock.Anything)
	})

	t.Run("service failure gets a generic reply", func(t *testing.T) {
		commandsService := new(commands.MockCommandsService)
		handler := &DiscordEventsHandler{commandsService: commandsService}
		commandsService.On("CreateBoard", ctx, mock.Anything).Return(nil, errors.New("store unavailable"))

		reply, err := handler.handleCreateBoardCommand(ctx, "guild-1", commandOptions("channel-1", "⭐", float64(3)))

		require.Error(t, err)
		assert.Equal(t, genericCommandFailure, reply)
	})
}
