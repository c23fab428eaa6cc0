package reconcile

import "github.com/civitas/civitas-reader/internal/model"

// Kind is what a screen shows
type Kind int

const (
	KindSpinner Kind = iota
	KindContent
	KindEmpty
	KindError
	KindOffline
)

// String returns the kind name used in logs
func (k Kind) String() string {
	switch k {
	case KindSpinner:
		return "spinner"
	case KindContent:
		return "content"
	case KindEmpty:
		return "empty"
	case KindError:
		return "error"
	case KindOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Presentation is the renderable view of a State
type Presentation[T any] struct {
	Kind       Kind
	State      State[T]
	Online     bool
	MessageKey string // localization key for Empty, Error and Offline
}

// Refreshing reports whether a settled result is shown while a newer request runs
func (p Presentation[T]) Refreshing() bool {
	return p.State.Status == model.FetchStatusRefreshing && (p.Kind == KindContent || p.Kind == KindEmpty)
}

func present[T any](s State[T], online bool, isEmpty func(T) bool) Presentation[T] {
	p := Presentation[T]{State: s, Online: online}

	if !online {
		p.Kind = KindOffline
		p.MessageKey = model.MessageNoInternet
		return p
	}

	switch s.Status {
	case model.FetchStatusReady, model.FetchStatusRefreshing:
		switch {
		case !s.HasResult:
			p.Kind = KindSpinner
		case isEmpty != nil && isEmpty(s.Result):
			p.Kind = KindEmpty
			p.MessageKey = model.MessageNoItems
		default:
			p.Kind = KindContent
		}
	case model.FetchStatusFailed:
		p.MessageKey = s.Err.UserMessageKey()
		if s.Err == model.ErrorKindNetworkUnavailable {
			p.Kind = KindOffline
		} else {
			p.Kind = KindError
		}
	default:
		p.Kind = KindSpinner
	}
	return p
}
