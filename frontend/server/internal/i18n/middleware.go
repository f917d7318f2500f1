// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package i18n

import (
	"context"
	"net/http"
	"strings"
)

type userLanguageContextKey struct{}

var userLanguageContextKeyInstance = userLanguageContextKey{}

// Middleware stores the preferred language of the caller, the first entry of
// Accept-Language, in the request context.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if lng := preferredLanguage(r.Header.Get("Accept-Language")); lng != "" {
				r = r.WithContext(WithUserLanguage(r.Context(), lng))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func preferredLanguage(header string) string {
	lng, _, _ := strings.Cut(header, ",")
	lng, _, _ = strings.Cut(lng, ";")
	return strings.TrimSpace(lng)
}

// WithUserLanguage returns a context with the preferred language set.
func WithUserLanguage(ctx context.Context, lng string) context.Context {
	return context.WithValue(ctx, userLanguageContextKeyInstance, lng)
}

// UserLanguage returns the preferred language of the caller, or "" if unknown.
func UserLanguage(ctx context.Context) string {
	if lng, ok := ctx.Value(userLanguageContextKeyInstance).(string); ok {
		return lng
	}
	return ""
}
