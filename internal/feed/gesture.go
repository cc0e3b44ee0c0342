package feed

// SwipeThreshold is the vertical travel, in device-independent pixels, a
// touch must exceed to count as a swipe. Anything shorter is a tap.
const SwipeThreshold = 50.0

type Direction int

const (
	DirNone Direction = iota
	DirForward
	DirBackward
)

func (d Direction) String() string {
	switch d {
	case DirForward:
		return "forward"
	case DirBackward:
		return "backward"
	default:
		return "none"
	}
}

// Input is one raw event from the keyboard, a wheel or a touch surface.
type Input interface {
	input()
}

type KeyInput struct {
	Key string
}

// WheelInput is one wheel notch. Only the sign of DeltaY matters.
type WheelInput struct {
	DeltaY float64
}

type TouchStartInput struct {
	Y float64
}

type TouchEndInput struct {
	Y float64
}

func (KeyInput) input()        {}
func (WheelInput) input()      {}
func (TouchStartInput) input() {}
func (TouchEndInput) input()   {}

type KeyMap struct {
	Next     []string
	Previous []string
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:     []string{"down", "j"},
		Previous: []string{"up", "k"},
	}
}

// gestures turns raw input into at most one step. It only tracks where the
// current touch started; it knows nothing about the buffer.
type gestures struct {
	keys        KeyMap
	touching    bool
	touchStartY float64
}

// interpret returns the direction an input asks for and whether the input
// belongs to the feed, so the host should suppress its default handling.
func (g *gestures) interpret(in Input) (Direction, bool) {
	switch in := in.(type) {
	case KeyInput:
		if contains(g.keys.Next, in.Key) {
			return DirForward, true
		}
		if contains(g.keys.Previous, in.Key) {
			return DirBackward, true
		}
		return DirNone, false
	case WheelInput:
		switch {
		case in.DeltaY > 0:
			return DirForward, true
		case in.DeltaY < 0:
			return DirBackward, true
		default:
			return DirNone, true
		}
	case TouchStartInput:
		g.touching = true
		g.touchStartY = in.Y
		return DirNone, false
	case TouchEndInput:
		if !g.touching {
			return DirNone, false
		}
		g.touching = false
		diff := g.touchStartY - in.Y
		switch {
		case diff > SwipeThreshold:
			return DirForward, false
		case diff < -SwipeThreshold:
			return DirBackward, false
		default:
			return DirNone, false
		}
	default:
		return DirNone, false
	}
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
