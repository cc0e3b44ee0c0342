package view

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/glabrego/wikiscroll/internal/content"
)

const (
	minPreviewRows = 6
	maxPreviewRows = 18
)

var previewHTTPClient = &http.Client{Timeout: 8 * time.Second}

// PreviewRows picks a row count that keeps the image's aspect ratio, given
// that a terminal cell is roughly twice as tall as it is wide.
func PreviewRows(media content.Media, width int) int {
	if media.Width <= 0 || media.Height <= 0 || width <= 0 {
		return maxPreviewRows
	}
	rows := width * media.Height / media.Width / 2
	if rows < minPreviewRows {
		return minPreviewRows
	}
	if rows > maxPreviewRows {
		return maxPreviewRows
	}
	return rows
}

// RenderImagePreview downloads the item's image and renders it with chafa.
func RenderImagePreview(ctx context.Context, media content.Media, width int) (string, error) {
	if width < 30 {
		width = 40
	}

	chafaPath, err := exec.LookPath("chafa")
	if err != nil {
		return "", fmt.Errorf("chafa is not installed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, media.URL, nil)
	if err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	resp, err := previewHTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	kitty := SupportsKittyGraphics()
	cmd := exec.CommandContext(ctx, chafaPath, chafaArgs(width, PreviewRows(media, width), kitty)...)
	cmd.Stdin = bytes.NewReader(imageData)
	output, err := cmd.CombinedOutput()
	raw := string(output)
	trimmed := strings.TrimSpace(raw)

	if err != nil {
		return "", fmt.Errorf("render image via chafa: %w: %s", err, trimmed)
	}
	if kitty && ContainsKittyGraphicsEscape(raw) {
		return strings.TrimRight(raw, "\r\n"), nil
	}
	if trimmed == "" {
		return "", fmt.Errorf("empty output")
	}
	return trimmed, nil
}

func chafaArgs(width, rows int, kitty bool) []string {
	size := fmt.Sprintf("%dx%d", width, rows)
	args := []string{"--size", size, "--view-size", size, "--align", "top,center"}
	if kitty {
		args = append(args, "--format", "kitty", "--passthrough", KittyPassthroughMode(), "--relative", "on")
	} else {
		args = append(args, "--format", "symbols")
	}
	return append(args, "-")
}

func SupportsKittyGraphics() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	termProgram := strings.ToLower(strings.TrimSpace(os.Getenv("TERM_PROGRAM")))
	if strings.Contains(termProgram, "ghostty") || strings.Contains(termProgram, "kitty") {
		return true
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	return strings.Contains(term, "xterm-kitty") || strings.Contains(term, "ghostty")
}

func ContainsKittyGraphicsEscape(s string) bool {
	return strings.Contains(s, "\x1b_G")
}

// ClearKittyGraphicsSequence deletes every placed image, so a preview does not
// linger once the card it belongs to slides away.
func ClearKittyGraphicsSequence() string {
	base := "\x1b_Ga=d,d=A\x1b\\"
	if os.Getenv("TMUX") == "" {
		return base
	}
	escaped := strings.ReplaceAll(base, "\x1b", "\x1b\x1b")
	return "\x1bPtmux;\x1b" + escaped + "\x1b\\"
}

func KittyPassthroughMode() string {
	if os.Getenv("TMUX") != "" {
		return "screen"
	}
	return "none"
}
