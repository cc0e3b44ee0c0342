package view

import (
	"fmt"
	"strings"

	"github.com/glabrego/wikiscroll/internal/content"
	"github.com/glabrego/wikiscroll/internal/render/extract"
	tuitheme "github.com/glabrego/wikiscroll/internal/tui/theme"
)

const (
	minCardWidth = 24
	// border plus horizontal padding
	cardChrome = 4
	// title, meta line, blank separator
	cardHeader = 3
)

// Card renders one item as a bordered card at most height rows tall. A
// non-empty preview is placed between the header and the body.
func Card(item content.Item, width, height int, preview string, th tuitheme.Theme) string {
	if width < minCardWidth {
		width = minCardWidth
	}
	inner := width - cardChrome

	lines := []string{
		th.Title.Render(truncate(item.Title, inner)),
		metaLine(item, th),
		"",
	}

	budget := height - 2 - cardHeader
	if preview = strings.TrimRight(preview, "\n"); preview != "" {
		previewLines := strings.Split(preview, "\n")
		lines = append(lines, previewLines...)
		lines = append(lines, "")
		budget -= len(previewLines) + 1
	}

	body := extract.Wrap(extract.Text(item.Body), inner)
	if !item.BodyAvailable() {
		body = []string{th.MetaLabel.Render("No summary for this article.")}
	}
	if budget > 1 {
		body = extract.Clip(body, budget-1)
		for _, line := range body {
			lines = append(lines, th.Body.Render(line))
		}
	}
	if budget > 0 && item.CanonicalURL != "" {
		lines = append(lines, th.Link.Render(truncate(item.CanonicalURL, inner)))
	}

	return th.Card.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func metaLine(item content.Item, th tuitheme.Theme) string {
	parts := []string{th.StyleLikes(item.LikeCount)}
	if item.HasMedia() {
		label := "image"
		if item.Media.Width > 0 && item.Media.Height > 0 {
			label = fmt.Sprintf("image %d×%d", item.Media.Width, item.Media.Height)
		}
		parts = append(parts, th.MetaLabel.Render(label+" (i)"))
	}
	return strings.Join(parts, "  ")
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if width < 2 || len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
