package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestStyleLikes_ByCount(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := Default()

	zero := th.StyleLikes(0)
	if !strings.Contains(zero, "♥ 0") || !strings.Contains(zero, "\x1b[") {
		t.Fatalf("expected styled zero count, got %q", zero)
	}

	liked := th.StyleLikes(12)
	if !strings.Contains(liked, "♥ 12") || !strings.Contains(liked, "\x1b[") {
		t.Fatalf("expected styled count, got %q", liked)
	}
	if liked == th.LikesZero.Render("♥ 12") {
		t.Fatal("liked items should not use the zero style")
	}
}
