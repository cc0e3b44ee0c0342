package actions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glabrego/wikiscroll/internal/app"
	"github.com/glabrego/wikiscroll/internal/content"
)

type fakeSource struct {
	batch   content.Result
	likeErr error
	likes   int

	lastBatchDeadline time.Time
	lastLikeDeadline  time.Time
	lastSize          int
	lastLikeID        int64
}

func (f *fakeSource) Batch(ctx context.Context, size int) content.Result {
	if dl, ok := ctx.Deadline(); ok {
		f.lastBatchDeadline = dl
	}
	f.lastSize = size
	return f.batch
}

func (f *fakeSource) Like(ctx context.Context, id int64) (app.LikeResponse, error) {
	if dl, ok := ctx.Deadline(); ok {
		f.lastLikeDeadline = dl
	}
	f.lastLikeID = id
	if f.likeErr != nil {
		return app.LikeResponse{}, f.likeErr
	}
	f.likes++
	return app.LikeResponse{ID: id, LikeCount: f.likes}, nil
}

func TestLoadInitialCmd(t *testing.T) {
	src := &fakeSource{batch: content.OK([]content.Item{{ID: 1}})}
	msg := LoadInitialCmd(src, 5)()
	loaded, ok := msg.(InitialLoadMsg)
	if !ok {
		t.Fatalf("expected InitialLoadMsg, got %T", msg)
	}
	if loaded.Result.Kind != content.KindOK || len(loaded.Result.Items) != 1 {
		t.Fatalf("unexpected payload: %+v", loaded)
	}
	if src.lastSize != 5 {
		t.Fatalf("expected size 5, got %d", src.lastSize)
	}
	if src.lastBatchDeadline.IsZero() {
		t.Fatal("expected batch context deadline to be set")
	}
}

func TestTopUpCmd_CarriesFailure(t *testing.T) {
	src := &fakeSource{batch: content.Failed("upstream down")}
	msg := TopUpCmd(src, 3)()
	topUp, ok := msg.(TopUpMsg)
	if !ok {
		t.Fatalf("expected TopUpMsg, got %T", msg)
	}
	if topUp.Requested != 3 || !topUp.Result.Failed() {
		t.Fatalf("unexpected payload: %+v", topUp)
	}
}

func TestLikeCmd(t *testing.T) {
	src := &fakeSource{}
	msg := LikeCmd(src, 42)()
	liked, ok := msg.(LikeSuccessMsg)
	if !ok {
		t.Fatalf("expected LikeSuccessMsg, got %T", msg)
	}
	if liked.ID != 42 || liked.LikeCount != 1 {
		t.Fatalf("unexpected payload: %+v", liked)
	}
	if src.lastLikeDeadline.IsZero() {
		t.Fatal("expected like context deadline to be set")
	}

	src.likeErr = content.ErrNotFound
	msg = LikeCmd(src, 43)()
	failed, ok := msg.(LikeErrorMsg)
	if !ok || failed.ID != 43 || !errors.Is(failed.Err, content.ErrNotFound) {
		t.Fatalf("expected LikeErrorMsg, got %T %+v", msg, msg)
	}
}

func TestOpenURLCmd_Fallbacks(t *testing.T) {
	msg := OpenURLCmd("https://example.com",
		func(string) error { return nil },
		func(string) error { return nil },
	)()
	success, ok := msg.(OpenURLSuccessMsg)
	if !ok || !success.Opened {
		t.Fatalf("expected opened success, got %T %+v", msg, success)
	}

	msg = OpenURLCmd("https://example.com",
		func(string) error { return errors.New("open failed") },
		func(string) error { return nil },
	)()
	success, ok = msg.(OpenURLSuccessMsg)
	if !ok || success.Opened {
		t.Fatalf("expected copy fallback success, got %T %+v", msg, success)
	}

	msg = OpenURLCmd("https://example.com",
		func(string) error { return errors.New("open failed") },
		func(string) error { return errors.New("copy failed") },
	)()
	if _, ok := msg.(OpenURLErrorMsg); !ok {
		t.Fatalf("expected OpenURLErrorMsg, got %T", msg)
	}
}

func TestCopyURLCmd(t *testing.T) {
	msg := CopyURLCmd("https://example.com", func(string) error { return nil })()
	if _, ok := msg.(OpenURLSuccessMsg); !ok {
		t.Fatalf("expected OpenURLSuccessMsg, got %T", msg)
	}
	msg = CopyURLCmd("https://example.com", func(string) error { return errors.New("copy failed") })()
	if _, ok := msg.(OpenURLErrorMsg); !ok {
		t.Fatalf("expected OpenURLErrorMsg, got %T", msg)
	}
}

func TestImagePreviewCmd(t *testing.T) {
	media := content.Media{URL: "https://upload.example/a.jpg", Width: 800, Height: 600}
	msg := ImagePreviewCmd(7, media, 60, func(ctx context.Context, m content.Media, width int) (string, error) {
		if _, ok := ctx.Deadline(); !ok {
			t.Fatal("expected preview deadline")
		}
		if m.URL != media.URL || width != 60 {
			t.Fatalf("unexpected args: %+v %d", m, width)
		}
		return "####", nil
	})()
	preview, ok := msg.(ImagePreviewSuccessMsg)
	if !ok || preview.ID != 7 || preview.Preview != "####" {
		t.Fatalf("unexpected msg: %T %+v", msg, msg)
	}

	msg = ImagePreviewCmd(7, media, 60, func(context.Context, content.Media, int) (string, error) {
		return "", errors.New("chafa is not installed")
	})()
	if _, ok := msg.(ImagePreviewErrorMsg); !ok {
		t.Fatalf("expected ImagePreviewErrorMsg, got %T", msg)
	}
}
