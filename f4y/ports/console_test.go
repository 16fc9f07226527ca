package ports

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolePrompt(t *testing.T) {
	t.Run("ReadsLine", func(t *testing.T) {
		var out bytes.Buffer
		c := NewConsoleWith(strings.NewReader("Gaming\n"), &out, &out)

		answer, err := c.Prompt("Category", "fallback")
		require.NoError(t, err)
		assert.Equal(t, "Gaming", answer)
		assert.Contains(t, out.String(), "Category")
	})

	t.Run("EmptyLineYieldsDefault", func(t *testing.T) {
		var out bytes.Buffer
		c := NewConsoleWith(strings.NewReader("\n"), &out, &out)

		answer, err := c.Prompt("Category", "fallback")
		require.NoError(t, err)
		assert.Equal(t, "fallback", answer)
	})

	t.Run("EOFYieldsDefault", func(t *testing.T) {
		var out bytes.Buffer
		c := NewConsoleWith(strings.NewReader(""), &out, &out)

		answer, err := c.Prompt("Category", "fallback")
		require.NoError(t, err)
		assert.Equal(t, "fallback", answer)
	})

	t.Run("WhitespaceTrimmed", func(t *testing.T) {
		var out bytes.Buffer
		c := NewConsoleWith(strings.NewReader("  spaced  \n"), &out, &out)

		answer, err := c.Prompt("Category", "")
		require.NoError(t, err)
		assert.Equal(t, "spaced", answer)
	})
}

func TestConsoleMessages(t *testing.T) {
	var out, errOut bytes.Buffer
	c := NewConsoleWith(strings.NewReader(""), &out, &errOut)

	c.Output("all good")
	c.Warning("heads up")
	c.Error("broke", errors.New("cause"))
	c.Error("broke again", nil)

	assert.Contains(t, out.String(), "all good")
	assert.Contains(t, errOut.String(), "warning: heads up")
	assert.Contains(t, errOut.String(), "error: broke: cause")
	assert.Contains(t, errOut.String(), "error: broke again")
}
