package models

// MessageAuthor identifies who wrote a source message
type MessageAuthor struct {
	ID string
	// Tag is the account tag, "name" or legacy "name#1234"
	Tag string
}

// MessageReactionCount is the platform-reported aggregate for one reaction kind
type MessageReactionCount struct {
	ReactionKey ReactionKey
	Count       int
}

// MessageSnapshot is a message as fetched from the platform
type MessageSnapshot struct {
	Content        string
	Author         MessageAuthor
	AttachmentURLs []string
	Reactions      []MessageReactionCount
}

// CountFor returns the aggregate count of the given reaction kind, 0 when absent
func (m *MessageSnapshot) CountFor(key ReactionKey) int {
	for _, reaction := range m.Reactions {
		if reaction.ReactionKey.Equals(key) {
			return reaction.Count
		}
	}
	return 0
}

// BoardMessageBody is the rendered content of a board message
type BoardMessageBody struct {
	Content string
}

// MessageHandle references a message the bot sent
type MessageHandle struct {
	ChannelID string
	MessageID string
}
