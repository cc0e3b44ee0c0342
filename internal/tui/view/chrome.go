package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/wikiscroll/internal/tui/theme"
)

func Toolbar() string {
	return "j/k or wheel/drag: next/prev | l like | o open | y copy | i image | ? help | q quit"
}

func HelpLines() []string {
	return []string{
		"Navigation:",
		"  j/down next card, k/up previous card",
		"  mouse wheel scrolls one card per notch",
		"  drag up or down with the left button to swipe",
		"  input during a card transition is ignored",
		"Actions:",
		"  l like, o open in browser, y copy URL, i image preview",
		"Other:",
		"  r retry after a failed load, ? close help, q quit",
	}
}

// Footer shows the position in the feed and the navigation state.
func Footer(position, total int, state string, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("card") + " " + th.MetaValue.Render(fmt.Sprintf("%d/%d", position, total)),
		th.MetaLabel.Render("nav") + " " + th.MetaValue.Render(state),
	}
	return strings.Join(parts, " • ")
}

func Message(loading bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if warning != "" {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if warning != "" {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}

// ErrorPanel replaces the feed when nothing could be loaded.
func ErrorPanel(message string, width int, th tuitheme.Theme) string {
	if message == "" {
		message = "Could not load articles"
	}
	body := message + "\n\nr retry | q quit"
	if width > 8 {
		return th.ErrorBox.Width(width - 4).Render(body)
	}
	return th.ErrorBox.Render(body)
}
