package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemindRejectsBadDate(t *testing.T) {
	remind := RemindCmd()
	remind.SetArgs([]string{"--at", "next tuesday"})

	err := remind.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --at date")
}

func TestCommandTree(t *testing.T) {
	migrate := MigrateCmd()
	names := []string{}
	for _, sub := range migrate.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"up", "down", "status"}, names)

	user := UserCmd()
	add, _, err := user.Find([]string{"add"})
	require.NoError(t, err)
	assert.NotNil(t, add.Flags().Lookup("admin"))

	assert.Error(t, TokenCmd().Args(TokenCmd(), nil))
}
