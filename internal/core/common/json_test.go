package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reply struct {
	TargetA string `json:"target_a"`
}

func TestParseJSONStripsMarkdownFence(t *testing.T) {
	response := "Sure, here is the translation:\n```json\n{\"target_a\": \"Helo\"}\n```\nLet me know!"
	parsed, err := ParseJSON[reply](response)
	require.NoError(t, err)
	assert.Equal(t, "Helo", parsed.TargetA)
}

func TestParseJSONPlainObject(t *testing.T) {
	parsed, err := ParseJSON[reply](`{"target_a": "Hai"}`)
	require.NoError(t, err)
	assert.Equal(t, "Hai", parsed.TargetA)
}

func TestParseJSONNoObject(t *testing.T) {
	_, err := ParseJSON[reply]("I cannot do that")
	assert.Error(t, err)
}
