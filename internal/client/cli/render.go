package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/newsdigest/internal/client/card"
	"github.com/dmitrijs2005/newsdigest/internal/client/models"
)

const barWidth = 30

func renderCard(n int, v card.View) string {
	var b strings.Builder
	mark := " "
	if v.Read {
		mark = "✓"
	}
	fmt.Fprintf(&b, "[%d]%s %s\n", n, mark, v.Summary.Title)
	writeMeta(&b, v)

	switch {
	case v.Variant.Flip && !v.Flipped:
		fmt.Fprintf(&b, "    (flip %d to read the summary)\n", n)
	default:
		b.WriteString(indent(v.Body))
		if v.Variant.ShowSources && (v.Flipped || v.Expanded || v.Variant.Name == "modal") {
			writeSources(&b, v.Summary.Sources)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderDetail(n int, v card.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s\n", n, v.Summary.Title)
	writeMeta(&b, v)
	b.WriteString(indent(v.Summary.Text))
	writeSources(&b, v.Summary.Sources)
	if v.Read {
		b.WriteString("    Read ✓\n")
	} else {
		fmt.Fprintf(&b, "    (read %d to mark as read)\n", n)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeMeta(b *strings.Builder, v card.View) {
	var meta []string
	if v.Variant.ShowTopic && v.Summary.Topic != "" {
		meta = append(meta, v.Summary.Topic)
	}
	if v.Published != "" {
		meta = append(meta, v.Published)
	}
	if len(meta) > 0 {
		fmt.Fprintf(b, "    %s\n", strings.Join(meta, " · "))
	}
}

func writeSources(b *strings.Builder, sources []string) {
	if len(sources) == 0 {
		return
	}
	b.WriteString("    Sources:\n")
	for _, s := range sources {
		fmt.Fprintf(b, "      - %s\n", s)
	}
}

func indent(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

type bar struct {
	label string
	value int
}

// renderBars draws a horizontal bar chart scaled to the largest value.
func renderBars(title string, bars []bar) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	if len(bars) == 0 {
		b.WriteString("  (no data yet)")
		return b.String()
	}

	labelWidth, top := 0, 0
	for _, r := range bars {
		labelWidth = max(labelWidth, len([]rune(r.label)))
		top = max(top, r.value)
	}
	for _, r := range bars {
		n := 0
		if top > 0 {
			n = r.value * barWidth / top
		}
		if r.value > 0 && n == 0 {
			n = 1
		}
		fmt.Fprintf(&b, "  %-*s %s %d\n", labelWidth, r.label, strings.Repeat("█", n), r.value)
	}
	return strings.TrimRight(b.String(), "\n")
}

func topicBars(topics []models.TopicCount) []bar {
	bars := make([]bar, 0, len(topics))
	for _, t := range topics {
		bars = append(bars, bar{label: t.Topic, value: t.Count})
	}
	return bars
}

func dailyBars(days []models.DailyCount) []bar {
	bars := make([]bar, 0, len(days))
	for _, d := range days {
		bars = append(bars, bar{label: d.Date, value: d.Count})
	}
	return bars
}
