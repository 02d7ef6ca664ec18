package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfront/go-client/nav"
	"github.com/shopfront/go-client/session"
)

func TestProtected(t *testing.T) {
	loc := nav.Location{Path: "/products/5"}

	t.Run("pending while resolving", func(t *testing.T) {
		d := Protected(session.Unknown(), loc)
		assert.Equal(t, ActionPending, d.Action)
	})

	t.Run("renders for authenticated", func(t *testing.T) {
		st := session.Authenticated(&session.User{ID: 1, Username: "alice"})
		d := Protected(st, loc)
		assert.Equal(t, ActionRender, d.Action)
	})

	t.Run("redirects unauthenticated to login with origin", func(t *testing.T) {
		d := Protected(session.Unauthenticated(), loc)
		assert.Equal(t, ActionRedirect, d.Action)
		assert.Equal(t, session.LoginPath, d.Path)
		assert.True(t, d.Opts.Replace)
		require.NotNil(t, d.Opts.From)
		assert.Equal(t, "/products/5", d.Opts.From.Path)
	})
}

func TestPublic(t *testing.T) {
	loc := nav.Location{Path: session.LoginPath}

	t.Run("pending while resolving", func(t *testing.T) {
		d := Public(session.Unknown(), loc)
		assert.Equal(t, ActionPending, d.Action)
	})

	t.Run("renders for unauthenticated", func(t *testing.T) {
		d := Public(session.Unauthenticated(), loc)
		assert.Equal(t, ActionRender, d.Action)
	})

	t.Run("redirects authenticated to captured origin", func(t *testing.T) {
		st := session.Authenticated(&session.User{ID: 1, Username: "alice"})
		withFrom := loc
		withFrom.From = &nav.Location{Path: "/products/5"}
		d := Public(st, withFrom)
		assert.Equal(t, ActionRedirect, d.Action)
		assert.Equal(t, "/products/5", d.Path)
		assert.True(t, d.Opts.Replace)
	})

	t.Run("redirect keeps the captured query", func(t *testing.T) {
		st := session.Authenticated(&session.User{ID: 1, Username: "alice"})
		withFrom := loc
		withFrom.From = &nav.Location{Path: "/products", Query: "page=2"}
		d := Public(st, withFrom)
		assert.Equal(t, ActionRedirect, d.Action)
		assert.Equal(t, "/products?page=2", d.Path)
	})

	t.Run("redirects authenticated to default landing without origin", func(t *testing.T) {
		st := session.Authenticated(&session.User{ID: 1, Username: "alice"})
		d := Public(st, loc)
		assert.Equal(t, ActionRedirect, d.Action)
		assert.Equal(t, DefaultPath, d.Path)
	})
}

// A user bounced off a filtered view by Protected must land back on the
// same path and query after logging in.
func TestRedirectRoundTripPreservesQuery(t *testing.T) {
	requested := nav.Location{Path: "/products", Query: "page=2"}

	bounce := Protected(session.Unauthenticated(), requested)
	require.Equal(t, ActionRedirect, bounce.Action)
	require.NotNil(t, bounce.Opts.From)

	loginLoc := nav.Location{Path: bounce.Path, From: bounce.Opts.From}
	back := Public(session.Authenticated(&session.User{ID: 1, Username: "alice"}), loginLoc)
	assert.Equal(t, ActionRedirect, back.Action)
	assert.Equal(t, "/products?page=2", back.Path)
}

// While the session state is unknown, neither guard renders gated content
// or issues a redirect, regardless of what a stale user value says.
func TestNoDecisionWhileLoading(t *testing.T) {
	loading := session.State{Phase: session.PhaseUnknown, User: &session.User{ID: 1, Username: "alice"}}
	loc := nav.Location{Path: "/products"}

	for name, g := range map[string]Guard{"protected": Protected, "public": Public} {
		t.Run(name, func(t *testing.T) {
			d := g(loading, loc)
			assert.Equal(t, ActionPending, d.Action)
			assert.Empty(t, d.Path)
		})
	}
}

type recordingNav struct {
	paths []string
	opts  []nav.Options
}

func (r *recordingNav) Redirect(path string, opts nav.Options) {
	r.paths = append(r.paths, path)
	r.opts = append(r.opts, opts)
}

func TestApply(t *testing.T) {
	navigator := &recordingNav{}

	assert.False(t, Apply(Decision{Action: ActionPending}, navigator))
	assert.True(t, Apply(Decision{Action: ActionRender}, navigator))
	assert.Empty(t, navigator.paths)

	d := Protected(session.Unauthenticated(), nav.Location{Path: "/products"})
	assert.False(t, Apply(d, navigator))
	require.Len(t, navigator.paths, 1)
	assert.Equal(t, session.LoginPath, navigator.paths[0])
	assert.True(t, navigator.opts[0].Replace)
}
