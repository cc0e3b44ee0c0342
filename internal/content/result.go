package content

// Kind tags an acquisition outcome.
type Kind int

const (
	// KindOK carries every requested item.
	KindOK Kind = iota
	// KindPartial carries whatever was collected, possibly nothing, plus a
	// warning. It is never fatal.
	KindPartial
	// KindFailed carries no items and the reason nothing could be acquired.
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindPartial:
		return "partial"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of an acquisition. Build it with OK, Partial or
// Failed so that Kind always agrees with Items and Message.
type Result struct {
	Kind    Kind
	Items   []Item
	Message string
}

func OK(items []Item) Result {
	return Result{Kind: KindOK, Items: items}
}

// Partial keeps its kind even when items is empty.
func Partial(items []Item, warning string) Result {
	if items == nil {
		items = []Item{}
	}
	return Result{Kind: KindPartial, Items: items, Message: warning}
}

func Failed(reason string) Result {
	return Result{Kind: KindFailed, Items: []Item{}, Message: reason}
}

func (r Result) Failed() bool {
	return r.Kind == KindFailed
}

// Warning returns the soft-failure message, or "" unless Kind is KindPartial.
func (r Result) Warning() string {
	if r.Kind != KindPartial {
		return ""
	}
	return r.Message
}

// Response is the wire shape shared by the acquisition endpoints.
type Response struct {
	Items []Item `json:"items"`
	Error string `json:"error,omitempty"`
}

func (r Result) Response() Response {
	items := r.Items
	if items == nil {
		items = []Item{}
	}
	return Response{Items: items, Error: r.Message}
}

// ResultFromResponse rebuilds the tagged outcome from the wire shape of a
// successful (2xx) response.
func ResultFromResponse(resp Response) Result {
	switch {
	case resp.Error == "":
		return OK(resp.Items)
	default:
		return Partial(resp.Items, resp.Error)
	}
}
