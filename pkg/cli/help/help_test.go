package help

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTopic(t *testing.T) {
	for _, topic := range AvailableTopics {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			require.NoError(t, err)
			assert.NotEmpty(t, content)
			assert.Contains(t, ListTopics(), topic)
		})
	}

	content, err := GetTopic("  Variables ")
	require.NoError(t, err)
	assert.Contains(t, content, "$guid")

	_, err = GetTopic("nope")
	assert.ErrorContains(t, err, "unknown help topic: nope")
}
