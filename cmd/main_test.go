package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	rootCmd := newRootCommand()

	serveCmd, _, err := rootCmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serveCmd.Name())

	migrateCmd, _, err := rootCmd.Find([]string{"migrate"})
	require.NoError(t, err)
	assert.Equal(t, "migrate", migrateCmd.Name())
}

func TestRootCommand_FailsWithoutRequiredConfig(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")
	t.Setenv("DB_URL", "")

	rootCmd := newRootCommand()
	rootCmd.SetArgs([]string{"migrate"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}
