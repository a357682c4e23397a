package models

import "strings"

// CustomReactionPrefix marks keys of non-unicode (guild custom) reactions
const CustomReactionPrefix = "custom:"

// ReactionKey is the normalized identity of a reaction. Unicode reactions are
// keyed by their catalog code point sequence; custom reactions by their ID.
type ReactionKey string

func (k ReactionKey) Equals(other ReactionKey) bool {
	return k == other
}

func (k ReactionKey) IsCustom() bool {
	return strings.HasPrefix(string(k), CustomReactionPrefix)
}

func (k ReactionKey) String() string {
	return string(k)
}
