package models

import (
	"time"
)

// Board is a per-guild configuration mirroring messages that reach Threshold
// reactions of ReactionKey into ChannelID.
type Board struct {
	ID          string      `db:"id"           json:"id"`
	GuildID     string      `db:"guild_id"     json:"guild_id"`
	ChannelID   string      `db:"channel_id"   json:"channel_id"`
	ReactionKey ReactionKey `db:"reaction_key" json:"reaction_key"`
	Threshold   int         `db:"threshold"    json:"threshold"`
	CreatedAt   time.Time   `db:"created_at"   json:"created_at"`
}

// MessageMapping links a source message to its board message for one board.
// Its presence is the "board message exists" state.
type MessageMapping struct {
	ID              string    `db:"id"                json:"id"`
	SourceMessageID string    `db:"source_message_id" json:"source_message_id"`
	SourceChannelID string    `db:"source_channel_id" json:"source_channel_id"`
	BoardMessageID  string    `db:"board_message_id"  json:"board_message_id"`
	BoardID         string    `db:"board_id"          json:"board_id"`
	CreatedAt       time.Time `db:"created_at"        json:"created_at"`
}
