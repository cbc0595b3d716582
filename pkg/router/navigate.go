package router

// NavigateOptions configures navigation behavior.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// ScrollTop scrolls the viewport to the origin after navigation.
	// Defaults to true.
	ScrollTop bool
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithoutScrollTop keeps the scroll position after navigation.
func WithoutScrollTop() NavigateOption {
	return func(o *NavigateOptions) {
		o.ScrollTop = false
	}
}

// WithOptions applies a complete NavigateOptions value.
func WithOptions(opts NavigateOptions) NavigateOption {
	return func(o *NavigateOptions) {
		*o = opts
	}
}

func defaultNavigateOptions() NavigateOptions {
	return NavigateOptions{ScrollTop: true}
}

// Cause describes what changed the current path.
type Cause int

const (
	// CauseNavigate is a Navigate call that pushed an entry.
	CauseNavigate Cause = iota

	// CauseReplace is a Navigate call that replaced the current entry.
	CauseReplace

	// CausePopState is back/forward traversal of the history.
	CausePopState
)

// String returns the cause name.
func (c Cause) String() string {
	switch c {
	case CauseNavigate:
		return "push"
	case CauseReplace:
		return "replace"
	case CausePopState:
		return "popstate"
	default:
		return "unknown"
	}
}

// Change is delivered to subscribers after the current path changes.
type Change struct {
	From  string
	To    string
	Cause Cause
}
