package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessenger_PlainOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	m := NewMessenger(&out, &errOut, true)

	m.Success("Switching to daemon west.")
	m.Info("no daemons registered")
	m.Error("Error while switching to daemon north: no such daemon.")

	assert.Equal(t, "Switching to daemon west.\nno daemons registered\n", out.String())
	assert.Equal(t, "Error while switching to daemon north: no such daemon.\n", errOut.String())
}

func TestMessenger_NonTerminalHasNoEscapes(t *testing.T) {
	var out, errOut bytes.Buffer
	m := NewMessenger(&out, &errOut, false)

	m.Success("Added daemon west at ip 127.0.0.1 and port 9000.")
	assert.NotContains(t, out.String(), "\x1b[", "ANSI escapes written to a non-terminal writer")
	assert.Contains(t, out.String(), "Added daemon west")
}
