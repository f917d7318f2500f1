// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
)

// ErrUnauthenticated is returned when an operation needs a signed in user.
var ErrUnauthenticated = errors.New("auth: no user is signed in")

// Identity is the signed in user of a request.
type Identity struct {
	// UID is the Firebase user ID, the root of all of the user's data.
	UID string

	// Email is the email address of the user, if known.
	Email string

	// Provider is the sign in provider, e.g. "google.com" or "password".
	Provider string
}

type identityContextKey struct{}

var identityContextKeyInstance = identityContextKey{}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKeyInstance, id)
}

// WithUserID returns a context signed in as uid.
func WithUserID(ctx context.Context, uid string) context.Context {
	return WithIdentity(ctx, Identity{UID: uid})
}

// IdentityFromContext returns the signed in identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKeyInstance).(Identity)
	if !ok || id.UID == "" {
		return Identity{}, false
	}
	return id, true
}

// UserID returns the UID of the signed in user or ErrUnauthenticated.
func UserID(ctx context.Context) (string, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return "", ErrUnauthenticated
	}
	return id.UID, nil
}

// Middleware copies the verified Firebase ID token into the request identity.
// It must run after the firebaseauth middleware.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := firebaseauth.TokenFromContext(r.Context())
			if tok == nil || tok.UID == "" {
				next.ServeHTTP(w, r)
				return
			}
			id := Identity{
				UID:      tok.UID,
				Provider: tok.Firebase.SignInProvider,
			}
			if email, ok := tok.Claims["email"].(string); ok {
				id.Email = email
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
