package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/itemdeck/cli/internal/cmd"
)

func TestRunTUIWithoutTerminalReturnsError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := runTUI(&cmd.Env{})
	assert.ErrorIs(t, err, errNoTerminal)
}

func TestMainHelpFlagDoesNotExit(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"itemdeck", "--help"}
	defer func() { os.Args = oldArgs }()

	// main() should return normally for help (no os.Exit).
	main()
}

func TestRootRegistersSubcommands(t *testing.T) {
	root := newRootCmd(&cmd.Env{})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "init")
	assert.Contains(t, out.String(), "items")
	assert.Contains(t, out.String(), "--debug")
}

func TestDebugFlagDefaultsFromEnv(t *testing.T) {
	t.Setenv("ITEMDECK_DEBUG", "1")
	env := &cmd.Env{}
	newRootCmd(env)
	assert.True(t, env.Debug)
}
