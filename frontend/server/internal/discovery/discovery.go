// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package discovery is a client for the recipe discovery API, a third-party
// source of recipes the user can browse and save.
package discovery

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/curioswitch/larder/common/larderdb"
	"github.com/curioswitch/larder/frontend/server/internal/apiclient"
	"github.com/curioswitch/larder/frontend/server/internal/i18n"
)

// DefaultTimeout bounds each discovery request.
const DefaultTimeout = 30 * time.Second

// Error is returned for every failed discovery call.
type Error = apiclient.Error

const (
	KindNetwork   = apiclient.KindNetwork
	KindHTTP      = apiclient.KindHTTP
	KindEmptyBody = apiclient.KindEmptyBody
	KindDecode    = apiclient.KindDecode
)

// RecipesResponse is the response of the listing endpoints.
type RecipesResponse struct {
	Message string            `json:"message"`
	Count   int               `json:"count"`
	Recipes []larderdb.Recipe `json:"recipes"`
}

// RecipeResponse is the response of the single recipe endpoint.
type RecipeResponse struct {
	Message string           `json:"message"`
	Recipe  *larderdb.Recipe `json:"recipe"`
}

type searchRequest struct {
	Query string `json:"query"`
}

// Client calls the discovery API. Every request carries a bearer token from
// the token source.
type Client struct {
	api apiclient.Client
}

// New returns a client for the API at baseURL authorized by tokens.
func New(baseURL string, tokens oauth2.TokenSource) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{
		Timeout: DefaultTimeout,
		Transport: &oauth2.Transport{
			Source: tokens,
			Base:   http.DefaultTransport,
		},
	})
}

// NewWithHTTPClient returns a client using httpClient as is.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		api: apiclient.Client{
			BaseURL:     baseURL,
			HTTPClient:  httpClient,
			EditRequest: forwardLanguage,
		},
	}
}

func forwardLanguage(req *http.Request) {
	if lng := i18n.UserLanguage(req.Context()); lng != "" {
		req.Header.Set("Accept-Language", lng)
	}
}

// RandomRecipes returns a random selection of recipes.
func (c *Client) RandomRecipes(ctx context.Context) (*RecipesResponse, error) {
	var res RecipesResponse
	if err := c.api.Do(ctx, http.MethodGet, "/api/discovery/random", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SearchRecipes returns the recipes matching query.
func (c *Client) SearchRecipes(ctx context.Context, query string) (*RecipesResponse, error) {
	var res RecipesResponse
	if err := c.api.Do(ctx, http.MethodPost, "/api/discovery/search", searchRequest{Query: query}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetRecipe returns a single recipe. The Recipe of the response is nil when
// the API does not know the ID.
func (c *Client) GetRecipe(ctx context.Context, id string) (*RecipeResponse, error) {
	var res RecipeResponse
	if err := c.api.Do(ctx, http.MethodGet, "/api/discovery/recipes/"+url.PathEscape(id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
