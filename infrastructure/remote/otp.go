package remote

import (
	"context"
	"errors"
	"sync"
)

// ErrNoSession is returned when identity is requested before a phone number
// has been verified.
var ErrNoSession = errors.New("remote: no active session")

// session is the provider response to a confirmed OTP.
type session struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

// Auth verifies phone numbers through the row API's OTP functions and holds
// the resulting session. It doubles as the client's TokenSource once a
// session exists.
type Auth struct {
	client *Client

	mu      sync.RWMutex
	current *session
}

// NewAuth creates the OTP verifier backed by the row API.
func NewAuth(c *Client) *Auth {
	return &Auth{client: c}
}

// SendCode asks the provider to deliver an OTP to the phone number.
func (a *Auth) SendCode(ctx context.Context, phone string) error {
	args := map[string]string{"phone": phone}
	return a.client.RPC(ctx, "send_phone_otp", args, nil)
}

// Confirm checks the OTP with the provider and reports through done. The
// provider call runs in its own goroutine so callers can race it against a
// deadline.
func (a *Auth) Confirm(ctx context.Context, phone, code string, done func(error)) {
	go func() {
		args := map[string]string{"phone": phone, "token": code}

		var sess session
		if err := a.client.RPC(ctx, "verify_phone_otp", args, &sess); err != nil {
			done(err)
			return
		}

		a.mu.Lock()
		a.current = &sess
		a.mu.Unlock()
		done(nil)
	}()
}

// CurrentUserID returns the verified user's id.
func (a *Auth) CurrentUserID(ctx context.Context) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.current == nil {
		return "", ErrNoSession
	}
	return a.current.UserID, nil
}

// AccessToken returns the session bearer token. Without a session it returns
// an empty token so requests fall back to anonymous access.
func (a *Auth) AccessToken(ctx context.Context) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.current == nil {
		return "", nil
	}
	return a.current.AccessToken, nil
}
