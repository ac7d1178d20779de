package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/newsdigest/internal/client/card"
	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderBars_ScalesToLargest(t *testing.T) {
	got := renderBars("Topics read", []bar{{"AI", 10}, {"Web", 5}, {"Go", 0}})

	lines := strings.Split(got, "\n")
	assert.Equal(t, "Topics read", lines[0])
	assert.Equal(t, "  AI  "+strings.Repeat("█", barWidth)+" 10", lines[1])
	assert.Equal(t, "  Web "+strings.Repeat("█", barWidth/2)+" 5", lines[2])
	assert.Equal(t, "  Go   0", lines[3])
}

func TestRenderBars_SmallValuesStayVisible(t *testing.T) {
	got := renderBars("Daily reads", []bar{{"mon", 100}, {"tue", 1}})
	assert.Contains(t, got, "  tue █ 1")
}

func TestRenderBars_Empty(t *testing.T) {
	assert.Equal(t, "Daily reads\n  (no data yet)", renderBars("Daily reads", nil))
}

func TestRenderCard_Variants(t *testing.T) {
	s := models.Summary{
		ID:        "1",
		Topic:     "AI",
		Title:     "Title",
		Text:      "Body text",
		Sources:   []string{"https://example.com"},
		Timestamp: "2024-05-01T10:00:00Z",
	}
	ctx := context.Background()

	classic := card.New(s, card.Classic(), card.Deps{})
	t.Cleanup(classic.Close)
	got := renderCard(1, classic.View(ctx))
	assert.Contains(t, got, "[1]  Title")
	assert.Contains(t, got, "AI · May 1, 2024 10:00")
	assert.Contains(t, got, "Body text")
	assert.NotContains(t, got, "Sources:")

	flip := card.New(s, card.Flippable(), card.Deps{})
	t.Cleanup(flip.Close)
	got = renderCard(2, flip.View(ctx))
	assert.Contains(t, got, "(flip 2 to read the summary)")
	assert.NotContains(t, got, "Body text")

	s.IsRead = true
	read := card.New(s, card.NewVariant("plain").WithoutTopic().Build(), card.Deps{})
	t.Cleanup(read.Close)
	got = renderCard(3, read.View(ctx))
	assert.Contains(t, got, "[3]✓ Title")
	assert.NotContains(t, got, "AI ·")
}

func TestRenderDetail_ShowsSources(t *testing.T) {
	c := card.New(models.Summary{ID: "1", Title: "T", Text: "full", Sources: []string{"a", "b"}}, card.Compact(), card.Deps{})
	t.Cleanup(c.Close)

	got := renderDetail(4, c.View(context.Background()))
	assert.Contains(t, got, "    Sources:\n      - a\n      - b")
	assert.Contains(t, got, "(read 4 to mark as read)")
}
