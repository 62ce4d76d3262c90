// Package request assembles fully-parameterized, signed requests for the
// monitoring service.
package request

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/arnoutzw/Anenji-smartess/internal/session"
	"github.com/arnoutzw/Anenji-smartess/internal/signing"
)

// Fixed client-identity fields sent with every request. These mirror
// the vendor's Android app and are part of the wire contract.
const (
	DefaultSource = "android"
	AppClient     = "android"
	AppID         = "com.eybond.smartclient.ess"
	AppVersion    = "3.43.0.1"
	CompanyKey    = "bnrl_frRFjEz8Mkn"
)

var (
	// ErrNotAuthenticated is returned when a session-requiring action is
	// built with no session present.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrEmptyAction is returned when the action name is missing.
	ErrEmptyAction = errors.New("action is required")

	// ErrReservedParam is returned when a caller-supplied parameter
	// collides with a signing or identity field.
	ErrReservedParam = errors.New("reserved parameter")
)

// reservedKeys may never be overridden by caller params; the signature
// binds salt and token, so a collision would forge or break it.
var reservedKeys = map[string]bool{
	"action": true,
	"sign":   true,
	"salt":   true,
	"token":  true,
}

// SignedRequest is an immutable, fully-resolved set of parameters for
// one outbound call. The signature is never reused across calls.
type SignedRequest struct {
	Action string
	Salt   string
	params url.Values
}

// Values returns a copy of the request parameters as url.Values.
func (r *SignedRequest) Values() url.Values {
	out := make(url.Values, len(r.params))
	for k, v := range r.params {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Mutating reports whether this request changes remote state.
func (r *SignedRequest) Mutating() bool {
	return Mutating(r.Action)
}

// Sessions provides the current session snapshot. Implemented by
// *session.Store.
type Sessions interface {
	Current() *session.Session
}

// Builder produces SignedRequests from the current session credentials.
// Safe for concurrent use; every Build reads a fresh session snapshot
// and draws a fresh salt.
type Builder struct {
	sessions Sessions
	salts    *signing.SaltSource
	lang     string
}

// NewBuilder creates a Builder reading credentials from sessions.
// lang is the language code sent as the i18n/lang identity fields.
func NewBuilder(sessions Sessions, lang string) *Builder {
	if lang == "" {
		lang = "en"
	}
	return &Builder{
		sessions: sessions,
		salts:    &signing.SaltSource{},
		lang:     lang,
	}
}

// Build assembles a signed request for action. Caller params are merged
// last but may not name a reserved key. Session-requiring actions fail
// with ErrNotAuthenticated when no session is present.
func (b *Builder) Build(action string, params map[string]string) (*SignedRequest, error) {
	if action == "" {
		return nil, ErrEmptyAction
	}

	for key := range params {
		if reservedKeys[key] {
			return nil, fmt.Errorf("%w: %q", ErrReservedParam, key)
		}
	}

	values := b.identityValues()
	values.Set("action", action)

	if RequiresSession(action) {
		sess := b.sessions.Current()
		if !sess.Valid() {
			return nil, ErrNotAuthenticated
		}

		salt := b.salts.Next()
		values.Set("token", sess.Token)
		values.Set("salt", salt)
		values.Set("sign", signing.Sign(salt, sess.Token, sess.Secret))

		for key, value := range params {
			values.Set(key, value)
		}

		return &SignedRequest{Action: action, Salt: salt, params: values}, nil
	}

	// Public actions are unsigned; only some of them carry the company
	// key on the wire.
	if NeedsCompanyKey(action) {
		values.Set("company-key", CompanyKey)
	}
	for key, value := range params {
		values.Set(key, value)
	}

	return &SignedRequest{Action: action, params: values}, nil
}

// LoginForm builds the unsigned POST body for the login action. Login
// is authenticated by credentials, not by signature, and must never be
// sent signed.
func (b *Builder) LoginForm(email, password string) url.Values {
	values := b.identityValues()
	values.Set("action", ActionLogin)
	values.Set("usr", email)
	values.Set("pwd", password)
	values.Set("company-key", CompanyKey)
	return values
}

func (b *Builder) identityValues() url.Values {
	values := url.Values{}
	values.Set("i18n", b.lang)
	values.Set("lang", b.lang)
	values.Set("source", DefaultSource)
	values.Set("_app_client_", AppClient)
	values.Set("_app_id_", AppID)
	values.Set("_app_version_", AppVersion)
	return values
}
