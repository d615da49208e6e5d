package service

import (
	"Microblog/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateReactions(t *testing.T) {
	reactions := []*model.Reaction{
		{ID: "r1", Emoji: "👍"},
		{ID: "r2", Emoji: "❤️"},
		{ID: "r3", Emoji: "👍"},
		{ID: "r4", Emoji: "🎉"},
		{ID: "r5", Emoji: "❤️"},
	}

	got := AggregateReactions(reactions)
	require.Len(t, got, 3)

	assert.Equal(t, "👍", got[0].Emoji)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, []string{"r1", "r3"}, got[0].IDs)

	assert.Equal(t, "❤️", got[1].Emoji)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, []string{"r2", "r5"}, got[1].IDs)

	assert.Equal(t, "🎉", got[2].Emoji)
	assert.Equal(t, 1, got[2].Count)
	assert.Equal(t, []string{"r4"}, got[2].IDs)
}

func TestAggregateReactions_Empty(t *testing.T) {
	got := AggregateReactions(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
