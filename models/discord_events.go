package models

// ReactionEvent is a reaction add or remove observed on a guild message
type ReactionEvent struct {
	GuildID         string
	SourceMessageID string
	SourceChannelID string
	ReactionKey     ReactionKey
	// UserID of the reacting user, used for logging only
	UserID    string
	IsRemoval bool
}

// ReactionsClearedEvent is a moderator clearing every reaction on a guild message at once
type ReactionsClearedEvent struct {
	GuildID         string
	SourceMessageID string
	SourceChannelID string
}

// SyncAction is the transition the board sync engine performed for an event
type SyncAction string

const (
	SyncActionNone     SyncAction = "none"
	SyncActionPosted   SyncAction = "posted"
	SyncActionUnposted SyncAction = "unposted"
)
