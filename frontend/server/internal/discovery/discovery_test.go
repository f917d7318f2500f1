// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package discovery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/curioswitch/larder/frontend/server/internal/i18n"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "id-token"}))
}

func TestRandomRecipes(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/discovery/random", r.URL.Path)
		assert.Equal(t, "Bearer id-token", r.Header.Get("Authorization"))
		assert.Equal(t, "ja", r.Header.Get("Accept-Language"))
		_, _ = w.Write([]byte(`{"message":"ok","count":1,"recipes":[{"recipeId":"d1","title":"Ramen","servings":2}]}`))
	})

	res, err := c.RandomRecipes(i18n.WithUserLanguage(t.Context(), "ja"))
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	require.Equal(t, "Ramen", res.Recipes[0].Title)
}

func TestSearchRecipes(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/discovery/search", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "curry", body["query"])
		_, _ = w.Write([]byte(`{"message":"ok","count":0,"recipes":[]}`))
	})

	res, err := c.SearchRecipes(t.Context(), "curry")
	require.NoError(t, err)
	require.Empty(t, res.Recipes)
}

func TestGetRecipe(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/discovery/recipes/a b", r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"ok","recipe":{"recipeId":"a b","title":"Pho","servings":1}}`))
	})

	res, err := c.GetRecipe(t.Context(), "a b")
	require.NoError(t, err)
	require.Equal(t, "Pho", res.Recipe.Title)
}

func TestEmptyBody(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := c.RandomRecipes(t.Context())
	require.EqualError(t, err, "Empty response body")
	var derr *Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, KindEmptyBody, derr.Kind)
}

func TestHTTPError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message":"maintenance"}`))
	})

	_, err := c.SearchRecipes(t.Context(), "x")
	require.EqualError(t, err, "HTTP 503: maintenance")
}
