package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commandNames() []string {
	var names []string
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}
	return names
}

func TestRootRegistersAllCommands(t *testing.T) {
	names := commandNames()
	for _, want := range []string{"init", "extract", "status", "fetch", "analyze", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootHelpExecutes(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "watermap")
	assert.Contains(t, buf.String(), "extract")
}

func TestAnalyzeCmd_Flags(t *testing.T) {
	for _, name := range []string{"out", "scale", "watch", "plain", "boundary"} {
		assert.NotNil(t, analyzeCmd.Flags().Lookup(name), name)
	}
}
