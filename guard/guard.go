// Package guard decides whether a route renders or redirects based on
// session state. Guards never perform navigation themselves; they return
// a Decision the embedding UI executes, and they never error on a missing
// session — unauthenticated is a normal state.
package guard

import (
	"github.com/shopfront/go-client/nav"
	"github.com/shopfront/go-client/session"
)

// Action is what the caller should do with the requested route.
type Action int

const (
	// ActionPending means the session state is still resolving: render a
	// neutral pending view — no gated content and no redirect, for
	// either guard variant.
	ActionPending Action = iota
	// ActionRender means the requested view may be shown.
	ActionRender
	// ActionRedirect means navigate to Decision.Path instead.
	ActionRedirect
)

// Decision is the outcome of evaluating a guard for one navigation.
type Decision struct {
	Action Action
	// Path and Opts describe the redirect when Action is ActionRedirect.
	Path string
	Opts nav.Options
}

// Guard evaluates a session state and the requested location. Protected
// and Public are the two variants.
type Guard func(st session.State, loc nav.Location) Decision

// DefaultPath is where Public sends an authenticated user with no
// captured origin.
const DefaultPath = "/"

// Protected gates views that require a session. While the state is
// resolving it stays pending; once resolved, an authenticated user gets
// the view and anyone else is redirected to the login entry point with
// the requested location captured for the return trip.
func Protected(st session.State, loc nav.Location) Decision {
	switch st.Phase {
	case session.PhaseUnknown:
		return Decision{Action: ActionPending}
	case session.PhaseAuthenticated:
		return Decision{Action: ActionRender}
	default:
		from := loc
		return Decision{
			Action: ActionRedirect,
			Path:   session.LoginPath,
			Opts:   nav.Options{Replace: true, From: &from},
		}
	}
}

// Public gates entry views (login, signup). While the state is resolving
// it stays pending; once resolved, an authenticated user is sent back to
// the location a Protected guard captured, or to the default landing
// view, and an unauthenticated user gets the view.
func Public(st session.State, loc nav.Location) Decision {
	switch st.Phase {
	case session.PhaseUnknown:
		return Decision{Action: ActionPending}
	case session.PhaseAuthenticated:
		path := DefaultPath
		if loc.From != nil {
			path = loc.From.Path
			if loc.From.Query != "" {
				path += "?" + loc.From.Query
			}
		}
		return Decision{
			Action: ActionRedirect,
			Path:   path,
			Opts:   nav.Options{Replace: true},
		}
	default:
		return Decision{Action: ActionRender}
	}
}

// Apply executes a redirect decision against a navigator. Pending and
// render decisions are no-ops. It reports whether the route may render.
func Apply(d Decision, navigator nav.Navigator) bool {
	if d.Action == ActionRedirect {
		navigator.Redirect(d.Path, d.Opts)
	}
	return d.Action == ActionRender
}
