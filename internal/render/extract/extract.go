package extract

import (
	"html"
	"strings"
	"unicode/utf8"

	nethtml "golang.org/x/net/html"
)

// Text converts an extract to plain text. Markup is flattened into
// paragraphs; plain text passes through with entities unescaped.
func Text(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	if !strings.Contains(body, "<") {
		return normalizeParagraphs(html.UnescapeString(body))
	}
	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + body + "</body></html>"))
	if err != nil {
		return normalizeParagraphs(html.UnescapeString(body))
	}
	root := findBodyNode(doc)
	if root == nil {
		return normalizeParagraphs(html.UnescapeString(body))
	}
	var b strings.Builder
	collectText(root, &b)
	return normalizeParagraphs(b.String())
}

// Wrap breaks text into lines no wider than width runes. Paragraph breaks
// are kept as empty lines.
func Wrap(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for utf8.RuneCountInString(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				runes := []rune(word)
				out = append(out, string(runes[:width]))
				word = string(runes[width:])
			}

			if line == "" {
				line = word
				continue
			}
			if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width {
				line += " " + word
				continue
			}
			out = append(out, line)
			line = word
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Clip keeps at most n lines. When lines are dropped the last kept line is
// replaced with an ellipsis.
func Clip(lines []string, n int) []string {
	if n < 1 {
		return nil
	}
	if len(lines) <= n {
		return lines
	}
	out := make([]string, n)
	copy(out, lines[:n-1])
	out[n-1] = "…"
	return out
}

func collectText(node *nethtml.Node, b *strings.Builder) {
	switch node.Type {
	case nethtml.TextNode:
		b.WriteString(node.Data)
		return
	case nethtml.ElementNode:
		switch strings.ToLower(node.Data) {
		case "script", "style", "noscript":
			return
		case "br":
			b.WriteString("\n")
			return
		}
	}
	block := node.Type == nethtml.ElementNode && isBlockElement(node.Data)
	if block {
		b.WriteString("\n")
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, b)
	}
	if block {
		b.WriteString("\n")
	}
}

func isBlockElement(tag string) bool {
	switch strings.ToLower(tag) {
	case "p", "div", "section", "article", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "blockquote", "pre", "table", "tr", "figure", "figcaption":
		return true
	default:
		return false
	}
}

// normalizeParagraphs collapses whitespace inside paragraphs and keeps one
// blank line between them.
func normalizeParagraphs(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	rawLines := strings.Split(s, "\n")
	out := make([]string, 0, len(rawLines))
	prevBlank := true
	for _, line := range rawLines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !prevBlank {
				out = append(out, "")
			}
			prevBlank = true
			continue
		}
		out = append(out, line)
		prevBlank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func findBodyNode(node *nethtml.Node) *nethtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, "body") {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findBodyNode(child); found != nil {
			return found
		}
	}
	return nil
}
