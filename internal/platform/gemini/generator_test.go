package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardloop/cardloop-api/internal/generation"
)

func TestParseDrafts(t *testing.T) {
	t.Parallel()

	t.Run("plain JSON array", func(t *testing.T) {
		drafts, err := parseDrafts(`[{"front":"What is Go?","back":"A programming language"}]`)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "What is Go?", drafts[0].Front)
	})

	t.Run("markdown fenced response", func(t *testing.T) {
		drafts, err := parseDrafts("```json\n[{\"front\":\"Q\",\"back\":\"A\"}]\n```")
		require.NoError(t, err)
		assert.Len(t, drafts, 1)
	})

	t.Run("blank cards are dropped", func(t *testing.T) {
		drafts, err := parseDrafts(`[{"front":"Q","back":"A"},{"front":"","back":"x"}]`)
		require.NoError(t, err)
		assert.Len(t, drafts, 1)
	})

	t.Run("all-blank response is an error", func(t *testing.T) {
		_, err := parseDrafts(`[{"front":"","back":""}]`)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("non-JSON response is an error", func(t *testing.T) {
		_, err := parseDrafts("Sure! Here are your flashcards:")
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})
}

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	t.Parallel()
	_, err := NewGenerator(context.Background(), "", "", nil)
	assert.Error(t, err)
}
