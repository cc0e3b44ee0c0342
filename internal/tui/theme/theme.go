package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Title     lipgloss.Style
	ModePill  lipgloss.Style
	Body      lipgloss.Style
	Card      lipgloss.Style
	MetaLabel lipgloss.Style
	MetaValue lipgloss.Style
	Link      lipgloss.Style
	Likes     lipgloss.Style
	LikesZero lipgloss.Style
	StateIdle lipgloss.Style
	StateWarn lipgloss.Style
	StateLoad lipgloss.Style
	ErrorBox  lipgloss.Style
}

// Default is the Catppuccin Mocha palette.
func Default() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpBlue := lipgloss.Color("#89b4fa")
	cpLavender := lipgloss.Color("#b4befe")
	cpPink := lipgloss.Color("#f5c2e7")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")
	cpSurface2 := lipgloss.Color("#585b70")

	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:  lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Body:      lipgloss.NewStyle().Foreground(cpText),
		Card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(cpSurface2).Padding(0, 1),
		MetaLabel: lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue: lipgloss.NewStyle().Foreground(cpSubtext1),
		Link:      lipgloss.NewStyle().Foreground(cpBlue).Faint(true),
		Likes:     lipgloss.NewStyle().Bold(true).Foreground(cpPink),
		LikesZero: lipgloss.NewStyle().Foreground(cpOverlay1),
		StateIdle: lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn: lipgloss.NewStyle().Foreground(cpRed),
		StateLoad: lipgloss.NewStyle().Foreground(cpPeach),
		ErrorBox:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(cpRed).Foreground(cpRed).Padding(1, 2),
	}
}

func (t Theme) StyleLikes(count int) string {
	label := fmt.Sprintf("♥ %d", count)
	if count == 0 {
		return t.LikesZero.Render(label)
	}
	return t.Likes.Render(label)
}
