package clients

import (
	"context"

	"github.com/samber/mo"

	"starboard/models"
)

// DiscordClient is the outbound side of the chat platform used by the board sync engine.
// Messages or channels the platform no longer knows about are reported as core.ErrNotFound.
type DiscordClient interface {
	SendMessage(ctx context.Context, channelID string, body models.BoardMessageBody) (*models.MessageHandle, error)
	GetMessage(ctx context.Context, channelID, messageID string) (*models.MessageSnapshot, error)
	DeleteMessage(ctx context.Context, channelID, messageID string) error
	ResolveNickname(ctx context.Context, guildID, userID string) (mo.Option[string], error)
}
