// Package content holds the normalized item shape shared by the upstream
// adapter, the acquisition loop, the like counter and the feed.
package content

// BodyUnavailable replaces a body the upstream did not provide.
const BodyUnavailable = "No extract available"

// Media is an optional image attached to an item.
type Media struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Item is one feed card.
type Item struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Body         string `json:"body"`
	Media        *Media `json:"media,omitempty"`
	CanonicalURL string `json:"canonicalUrl"`
	LikeCount    int    `json:"likeCount"`
}

func (i Item) HasMedia() bool {
	return i.Media != nil
}

func (i Item) BodyAvailable() bool {
	return i.Body != "" && i.Body != BodyUnavailable
}

// IDs returns the identifiers of items in order, duplicates included.
func IDs(items []Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
