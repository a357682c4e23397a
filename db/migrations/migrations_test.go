package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(FS, ".")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestMigrationsDeclareUniqueness(t *testing.T) {
	boards, err := fs.ReadFile(FS, "000001_create_boards.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(boards), "UNIQUE (guild_id, reaction_key)")

	mappings, err := fs.ReadFile(FS, "000002_create_message_mappings.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(mappings), "UNIQUE (source_message_id, board_id)")
}
