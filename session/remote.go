package session

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/shopfront/go-client/api"
)

// Auth endpoints.
const (
	signInPath = "/api/auth/signin"
	signUpPath = "/api/auth/signup"
)

// remoteAuth implements AuthAPI over the envelope HTTP client.
type remoteAuth struct {
	client *api.Client
}

// NewRemoteAuth returns an AuthAPI backed by the given client.
func NewRemoteAuth(client *api.Client) AuthAPI {
	return &remoteAuth{client: client}
}

func (r *remoteAuth) SignIn(ctx context.Context, creds Credentials) (*Session, error) {
	sess, err := api.Post[*Session](ctx, r.client, signInPath, creds)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.AccessToken == "" {
		return nil, errors.Mark(errors.New("signin response missing session"), api.ErrNetwork)
	}
	return sess, nil
}

func (r *remoteAuth) SignUp(ctx context.Context, reg Registration) error {
	_, err := api.Post[struct{}](ctx, r.client, signUpPath, reg)
	return err
}
