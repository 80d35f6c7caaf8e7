package util

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	// Cannot run in parallel - Register modifies global command state

	rootCmd := &cobra.Command{Use: "test"}
	require.NotPanics(t, func() {
		Register(rootCmd)
	})

	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["history"], "Should have 'history' command")
	assert.True(t, names["version"], "Should have 'version' command")

	for _, cmd := range rootCmd.Commands() {
		assert.NotEmpty(t, cmd.Short, "%s should have a short description", cmd.Name())
	}
}
