package discord

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"starboard/models"
)

// MockDiscordClient implements the clients.DiscordClient interface for testing
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) SendMessage(
	ctx context.Context,
	channelID string,
	body models.BoardMessageBody,
) (*models.MessageHandle, error) {
	args := m.Called(ctx, channelID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageHandle), args.Error(1)
}

func (m *MockDiscordClient) GetMessage(
	ctx context.Context,
	channelID, messageID string,
) (*models.MessageSnapshot, error) {
	args := m.Called(ctx, channelID, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageSnapshot), args.Error(1)
}

func (m *MockDiscordClient) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	args := m.Called(ctx, channelID, messageID)
	return args.Error(0)
}

func (m *MockDiscordClient) ResolveNickname(ctx context.Context, guildID, userID string) (mo.Option[string], error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return mo.None[string](), args.Error(1)
	}
	return args.Get(0).(mo.Option[string]), args.Error(1)
}
