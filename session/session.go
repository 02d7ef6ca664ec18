// Package session tracks the client's authenticated session: durable
// storage of the credential pair, an in-memory mirror of the current user,
// and the manager that keeps the two consistent across login, signup and
// logout.
package session

// User is the remote user record. Fields other than Roles may be empty
// until a session exists.
type User struct {
	ID       int64    `json:"id,omitempty"`
	Username string   `json:"username,omitempty"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles"`
}

// Session is the credential pair plus the associated user record, created
// by a successful login and destroyed by logout.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// Credentials are the login inputs.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration are the signup inputs. Signing up does not authenticate the
// new account.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Phase is the session validity as observed by consumers.
type Phase int

const (
	// PhaseUnknown is the transient state before local storage has been
	// consulted. Guards must not render or redirect while in it.
	PhaseUnknown Phase = iota
	PhaseAuthenticated
	PhaseUnauthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseUnknown:
		return "unknown"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseUnauthenticated:
		return "unauthenticated"
	default:
		return "invalid"
	}
}

// State is the tagged session state consumed by guards and views. User is
// non-nil exactly when Phase is PhaseAuthenticated.
type State struct {
	Phase Phase
	User  *User
}

// Unknown returns the transient loading state.
func Unknown() State {
	return State{Phase: PhaseUnknown}
}

// Authenticated returns the state for a resolved session.
func Authenticated(u *User) State {
	return State{Phase: PhaseAuthenticated, User: u}
}

// Unauthenticated returns the resolved no-session state.
func Unauthenticated() State {
	return State{Phase: PhaseUnauthenticated}
}

// IsLoading reports whether the state is still resolving.
func (s State) IsLoading() bool {
	return s.Phase == PhaseUnknown
}
