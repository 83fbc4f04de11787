package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	prev := version
	t.Cleanup(func() { version = prev })
	version = "1.2.3"

	var out bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "mcp-todo-server version 1.2.3\n", out.String())
}

func TestRootCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "version", "generate-docs"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestNewMCPServer(t *testing.T) {
	backend, err := newBackend(serveConfig{Backend: "memory"}, nil, nil)
	require.NoError(t, err)

	sc := newTestServerContext(t, backend)
	mcpSrv, err := newMCPServer(sc)
	require.NoError(t, err)
	assert.Len(t, mcpSrv.ListTools(), 5)
}
