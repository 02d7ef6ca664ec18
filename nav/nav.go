// Package nav defines the navigation collaborator contract shared by the
// session manager and the route guards. The SDK never performs navigation
// itself; it asks a Navigator supplied by the embedding UI.
package nav

// Location identifies a navigable view. From carries the location the user
// originally requested when a guard redirected them, so a later navigation
// can return there.
type Location struct {
	Path  string
	Query string
	From  *Location
}

// Options control how a redirect is performed.
type Options struct {
	// Replace indicates the current history entry should be replaced
	// rather than pushed.
	Replace bool
	// From is attached to the target location's navigation state.
	From *Location
}

// Navigator performs a redirect on behalf of the SDK.
type Navigator interface {
	Redirect(path string, opts Options)
}

// Func adapts a plain function to the Navigator interface.
type Func func(path string, opts Options)

func (f Func) Redirect(path string, opts Options) {
	f(path, opts)
}
