package models

// CommandResult represents the result of processing a command
type CommandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateBoardRequest is the parsed createboard command. ReactionRaw is
// validated by the command handler, not by the parser.
type CreateBoardRequest struct {
	GuildID     string
	ChannelID   string
	ReactionRaw string
	Threshold   int
}
