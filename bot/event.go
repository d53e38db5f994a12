package bot

import "github.com/wortwert/wortwert/mastodon"

// Source says which stream an event came from. It selects the dedupe
// watermark and the processing rules that apply.
type Source int

const (
	SourceMention Source = iota
	SourceMonitoredPost
)

func (s Source) String() string {
	switch s {
	case SourceMention:
		return "mention"
	case SourceMonitoredPost:
		return "monitored_post"
	default:
		return "unknown"
	}
}

// Event is one status to consider scoring.
type Event struct {
	Source Source
	Status *mastodon.Status
}
