package feed

import (
	"time"

	"github.com/glabrego/wikiscroll/internal/content"
)

const (
	DefaultSettle = 300 * time.Millisecond
	// TopUpDistance is how close to the tail a forward move must land to
	// request more items.
	TopUpDistance = 2
	TopUpSize     = 3
)

// State is the transition lock. At most one cursor move is in flight.
type State int

const (
	StateIdle State = iota
	StateTransitioning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTransitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

type Config struct {
	Settle time.Duration
	Keys   KeyMap
}

// Step describes what one input did and what the host must schedule.
// Discarded marks a step asked for during a transition, Rejected one that
// would leave the buffer, and Consumed tells the host to suppress its own
// handling of the input. When Moved is set the host calls Settle(Seq) once
// Settle has elapsed, and acquires TopUp more items when TopUp > 0.
type Step struct {
	Direction Direction
	Moved     bool
	Discarded bool
	Rejected  bool
	Consumed  bool
	From, To  int
	Settle    time.Duration
	Seq       uint64
	TopUp     int
}

// Controller is a cooperative state machine; it must only be driven from a
// single event loop. It never blocks and never waits on acquisitions.
type Controller struct {
	buf      *Buffer
	gestures gestures
	state    State
	settle   time.Duration
	seq      uint64
}

func NewController(buf *Buffer, cfg Config) *Controller {
	if buf == nil {
		buf = NewBuffer()
	}
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultSettle
	}
	if len(cfg.Keys.Next) == 0 && len(cfg.Keys.Previous) == 0 {
		cfg.Keys = DefaultKeyMap()
	}
	return &Controller{
		buf:      buf,
		gestures: gestures{keys: cfg.Keys},
		settle:   cfg.Settle,
	}
}

func (c *Controller) Buffer() *Buffer {
	return c.buf
}

func (c *Controller) State() State {
	return c.state
}

// Append adds acquired items to the tail. It does not touch the lock.
func (c *Controller) Append(items ...content.Item) {
	c.buf.Append(items...)
}

func (c *Controller) Handle(in Input) Step {
	dir, consumed := c.gestures.interpret(in)
	step := Step{Direction: dir, Consumed: consumed, From: c.buf.Cursor(), To: c.buf.Cursor()}
	if dir == DirNone {
		return step
	}
	if c.state == StateTransitioning {
		step.Discarded = true
		return step
	}

	switch dir {
	case DirForward:
		if !c.buf.CanAdvance() {
			step.Rejected = true
			return step
		}
		c.buf.moveTo(c.buf.Cursor() + 1)
		if c.buf.NearTail(TopUpDistance) {
			step.TopUp = TopUpSize
		}
	case DirBackward:
		if !c.buf.CanRetreat() {
			step.Rejected = true
			return step
		}
		c.buf.moveTo(c.buf.Cursor() - 1)
	}

	c.seq++
	c.state = StateTransitioning
	step.Moved = true
	step.To = c.buf.Cursor()
	step.Settle = c.settle
	step.Seq = c.seq
	return step
}

// Settle releases the lock taken by the transition with the given sequence
// number. Stale or repeated calls are ignored.
func (c *Controller) Settle(seq uint64) bool {
	if c.state != StateTransitioning || seq != c.seq {
		return false
	}
	c.state = StateIdle
	return true
}
