package feed

import (
	"testing"
	"time"

	"github.com/glabrego/wikiscroll/internal/content"
)

func itemsN(n int) []content.Item {
	out := make([]content.Item, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, content.Item{ID: int64(i + 1), Title: "Item"})
	}
	return out
}

func newTestController(n int) *Controller {
	return NewController(NewBuffer(itemsN(n)...), Config{Settle: 300 * time.Millisecond})
}

func TestController_ForwardEntersTransitioning(t *testing.T) {
	c := newTestController(5)

	step := c.Handle(KeyInput{Key: "down"})
	if !step.Moved || step.From != 0 || step.To != 1 {
		t.Fatalf("unexpected step: %+v", step)
	}
	if c.Buffer().Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", c.Buffer().Cursor())
	}
	if c.State() != StateTransitioning {
		t.Fatalf("expected transitioning, got %s", c.State())
	}
	if step.Settle != 300*time.Millisecond {
		t.Fatalf("expected settle duration to be scheduled, got %s", step.Settle)
	}
}

func TestController_InputDuringTransitionIsDiscarded(t *testing.T) {
	c := newTestController(5)
	first := c.Handle(KeyInput{Key: "down"})

	second := c.Handle(KeyInput{Key: "down"})
	if !second.Discarded || second.Moved {
		t.Fatalf("expected discarded step, got %+v", second)
	}
	if c.Buffer().Cursor() != 1 {
		t.Fatalf("expected cursor to stay at 1, got %d", c.Buffer().Cursor())
	}

	// Discarded input is not queued: settling does not replay it.
	if !c.Settle(first.Seq) {
		t.Fatal("expected settle to release the lock")
	}
	if c.State() != StateIdle || c.Buffer().Cursor() != 1 {
		t.Fatalf("expected idle at 1, got %s at %d", c.State(), c.Buffer().Cursor())
	}
}

func TestController_AllModalitiesShareTheLock(t *testing.T) {
	c := newTestController(5)
	c.Handle(WheelInput{DeltaY: 3})

	inputs := []Input{
		KeyInput{Key: "j"},
		WheelInput{DeltaY: 120},
		TouchStartInput{Y: 400},
		TouchEndInput{Y: 100},
	}
	for _, in := range inputs {
		c.Handle(in)
	}
	if c.Buffer().Cursor() != 1 {
		t.Fatalf("expected a single move, cursor at %d", c.Buffer().Cursor())
	}
}

func TestController_BackwardAndBounds(t *testing.T) {
	c := newTestController(2)

	step := c.Handle(KeyInput{Key: "up"})
	if !step.Rejected || step.Moved {
		t.Fatalf("expected backward at head to be rejected, got %+v", step)
	}
	if c.State() != StateIdle {
		t.Fatalf("rejected input must not take the lock, got %s", c.State())
	}

	step = c.Handle(KeyInput{Key: "down"})
	c.Settle(step.Seq)

	step = c.Handle(KeyInput{Key: "down"})
	if !step.Rejected || c.Buffer().Cursor() != 1 {
		t.Fatalf("expected forward past tail to be rejected, got %+v cursor=%d", step, c.Buffer().Cursor())
	}

	step = c.Handle(KeyInput{Key: "k"})
	if !step.Moved || c.Buffer().Cursor() != 0 || step.TopUp != 0 {
		t.Fatalf("unexpected backward step: %+v", step)
	}
}

func TestController_EmptyBufferRejectsEverything(t *testing.T) {
	c := NewController(nil, Config{})
	for _, in := range []Input{KeyInput{Key: "down"}, KeyInput{Key: "up"}, WheelInput{DeltaY: 1}} {
		if step := c.Handle(in); step.Moved {
			t.Fatalf("unexpected move on empty buffer: %+v", step)
		}
	}
	if c.Buffer().Cursor() != 0 {
		t.Fatalf("cursor moved on empty buffer: %d", c.Buffer().Cursor())
	}
}

func TestController_TopUpNearTail(t *testing.T) {
	tests := []struct {
		name      string
		target    int
		wantTopUp []int
	}{
		{name: "to cursor 2", target: 2, wantTopUp: []int{0, 0}},
		{name: "to cursor 3", target: 3, wantTopUp: []int{0, 0, TopUpSize}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(NewBuffer(), Config{})
			c.Append(itemsN(5)...)

			topUps := 0
			for i := 0; i < tt.target; i++ {
				step := c.Handle(KeyInput{Key: "down"})
				if step.TopUp != tt.wantTopUp[i] {
					t.Fatalf("move %d: expected top-up %d, got %d", i+1, tt.wantTopUp[i], step.TopUp)
				}
				if step.TopUp > 0 {
					topUps++
				}
				c.Settle(step.Seq)
			}
			if c.Buffer().Cursor() != tt.target {
				t.Fatalf("expected cursor %d, got %d", tt.target, c.Buffer().Cursor())
			}
			want := 0
			if tt.target == 3 {
				want = 1
			}
			if topUps != want {
				t.Fatalf("expected %d top-up requests, got %d", want, topUps)
			}
		})
	}
}

func TestController_AppendDuringTransition(t *testing.T) {
	c := newTestController(3)
	step := c.Handle(KeyInput{Key: "down"})
	if step.TopUp != TopUpSize {
		t.Fatalf("expected top-up near tail, got %+v", step)
	}

	c.Append(itemsN(3)...)
	if c.State() != StateTransitioning {
		t.Fatal("append must not release the lock")
	}
	c.Settle(step.Seq)

	for i := 0; i < 4; i++ {
		s := c.Handle(KeyInput{Key: "down"})
		if !s.Moved {
			t.Fatalf("move %d should have succeeded: %+v", i, s)
		}
		c.Settle(s.Seq)
	}
	if c.Buffer().Cursor() != 5 {
		t.Fatalf("expected to walk into appended duplicates, cursor=%d", c.Buffer().Cursor())
	}
}

func TestController_StaleSettleIgnored(t *testing.T) {
	c := newTestController(5)
	first := c.Handle(KeyInput{Key: "down"})
	c.Settle(first.Seq)
	second := c.Handle(KeyInput{Key: "down"})

	if c.Settle(first.Seq) {
		t.Fatal("stale settle must not release the current transition")
	}
	if c.State() != StateTransitioning {
		t.Fatalf("expected still transitioning, got %s", c.State())
	}
	if !c.Settle(second.Seq) {
		t.Fatal("expected current settle to succeed")
	}
	if c.Settle(second.Seq) {
		t.Fatal("repeated settle must be a no-op")
	}
}

func TestController_UnknownKeysPassThrough(t *testing.T) {
	c := newTestController(5)
	step := c.Handle(KeyInput{Key: "x"})
	if step.Consumed || step.Moved || step.Discarded {
		t.Fatalf("unexpected step for unbound key: %+v", step)
	}
	if step := c.Handle(KeyInput{Key: "down"}); !step.Consumed {
		t.Fatal("expected designated key to be consumed")
	}
}

func TestController_CustomKeys(t *testing.T) {
	c := NewController(NewBuffer(itemsN(3)...), Config{Keys: KeyMap{Next: []string{"pgdown"}, Previous: []string{"pgup"}}})
	if step := c.Handle(KeyInput{Key: "down"}); step.Moved {
		t.Fatal("default keys must not apply when a key map is set")
	}
	if step := c.Handle(KeyInput{Key: "pgdown"}); !step.Moved {
		t.Fatal("expected custom next key to move")
	}
}
