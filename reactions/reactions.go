// Package reactions normalizes reaction identities into models.ReactionKey.
//
// Board configuration goes through FromRaw, which only accepts unicode emoji
// known to the catalog. Reactions reported by the platform go through
// FromEmoji, which never fails so that any reaction can be compared against
// configured boards.
package reactions

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/yuin/goldmark-emoji/definition"

	"starboard/core"
	"starboard/models"
)

const variationSelector16 = "\ufe0f"

var (
	// <:name:id>, <a:name:id> and the bare name:id form Discord accepts in reaction endpoints
	customEmojiPattern = regexp.MustCompile(`^(<a?:[\w~]+:\d+>|[\w~]+:\d+)$`)
	shortcodePattern   = regexp.MustCompile(`^:([\w+\-]+):$`)

	shortcodes = definition.Github()
)

// FromRaw validates user supplied emoji input and returns its canonical key.
// Accepts a single unicode emoji or a :shortcode: naming one.
func FromRaw(raw string) (models.ReactionKey, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("%w: emoji cannot be empty", core.ErrUnsupportedReaction)
	}

	if customEmojiPattern.MatchString(value) {
		return "", fmt.Errorf("%w: %s is a custom emoji, only unicode emoji are supported",
			core.ErrUnsupportedReaction, value)
	}

	if match := shortcodePattern.FindStringSubmatch(value); match != nil {
		emoji, ok := shortcodes.Get(strings.ToLower(match[1]))
		if !ok || len(emoji.Unicode) == 0 {
			return "", fmt.Errorf("%w: unknown emoji shortcode %s", core.ErrUnsupportedReaction, value)
		}
		value = string(emoji.Unicode)
	}

	key, ok := canonicalKey(value)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a supported unicode emoji", core.ErrUnsupportedReaction, value)
	}
	return key, nil
}

// FromEmoji normalizes a reaction reported by the platform. Custom reactions
// (non-empty id) get a key that can never equal a board key.
func FromEmoji(name, id string) models.ReactionKey {
	if id != "" {
		return models.ReactionKey(models.CustomReactionPrefix + id)
	}
	if key, ok := canonicalKey(name); ok {
		return key
	}
	return models.ReactionKey(stripVariationSelector(name))
}

// canonicalKey checks the emoji against the catalog and keys it without the emoji
// presentation selector. Clients disagree on sending the selector and the catalog
// lists some emoji both with and without it, so both forms must share one key.
func canonicalKey(value string) (models.ReactionKey, bool) {
	bare := stripVariationSelector(value)
	for _, candidate := range []string{value, bare, bare + variationSelector16} {
		if _, err := gomoji.GetInfo(candidate); err == nil {
			return models.ReactionKey(bare), true
		}
	}
	return "", false
}

func stripVariationSelector(value string) string {
	return strings.ReplaceAll(value, variationSelector16, "")
}
