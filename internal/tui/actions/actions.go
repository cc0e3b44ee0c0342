package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/wikiscroll/internal/app"
	"github.com/glabrego/wikiscroll/internal/content"
)

const (
	acquireTimeout = 60 * time.Second
	likeTimeout    = 10 * time.Second
	previewTimeout = 15 * time.Second
)

// Source supplies items to the feed. Both the in-process service and the
// remote client satisfy it.
type Source interface {
	Batch(ctx context.Context, size int) content.Result
	Like(ctx context.Context, id int64) (app.LikeResponse, error)
}

type InitialLoadMsg struct {
	Result   content.Result
	Duration time.Duration
}

type TopUpMsg struct {
	Requested int
	Result    content.Result
	Duration  time.Duration
}

type LikeSuccessMsg struct {
	ID        int64
	LikeCount int
}

type LikeErrorMsg struct {
	ID  int64
	Err error
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

type ImagePreviewSuccessMsg struct {
	ID      int64
	Preview string
}

type ImagePreviewErrorMsg struct {
	ID  int64
	Err error
}

func LoadInitialCmd(source Source, size int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), acquireTimeout)
		defer cancel()
		start := time.Now()

		res := source.Batch(ctx, size)
		return InitialLoadMsg{Result: res, Duration: time.Since(start)}
	}
}

// TopUpCmd fetches more items in the background. Its result never blocks
// navigation; the model appends whatever arrives.
func TopUpCmd(source Source, size int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), acquireTimeout)
		defer cancel()
		start := time.Now()

		res := source.Batch(ctx, size)
		return TopUpMsg{Requested: size, Result: res, Duration: time.Since(start)}
	}
}

func LikeCmd(source Source, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), likeTimeout)
		defer cancel()

		resp, err := source.Like(ctx, id)
		if err != nil {
			return LikeErrorMsg{ID: id, Err: err}
		}
		return LikeSuccessMsg{ID: resp.ID, LikeCount: resp.LikeCount}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened article in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, URL copied to clipboard", Opened: false}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}

func ImagePreviewCmd(id int64, media content.Media, width int, renderFn func(context.Context, content.Media, int) (string, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), previewTimeout)
		defer cancel()

		preview, err := renderFn(ctx, media, width)
		if err != nil {
			return ImagePreviewErrorMsg{ID: id, Err: err}
		}
		return ImagePreviewSuccessMsg{ID: id, Preview: preview}
	}
}
