// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package pantryapi is a client for the remote pantry and shopping list REST
// API. The server keeps pantry and shopping state in memory and does not sync
// with it, the client exists for tools that migrate or inspect remote data.
package pantryapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/curioswitch/larder/common/larderdb"
	"github.com/curioswitch/larder/frontend/server/internal/apiclient"
)

const defaultTimeout = 30 * time.Second

// PantryResponse is the response of the pantry listing.
type PantryResponse struct {
	Message string                `json:"message"`
	Count   int                   `json:"count"`
	Items   []larderdb.PantryItem `json:"items"`
}

// PantryItemResponse is the response of pantry writes.
type PantryItemResponse struct {
	Message string               `json:"message"`
	Item    *larderdb.PantryItem `json:"item"`
}

// ShoppingListsResponse is the response of the shopping list listing.
type ShoppingListsResponse struct {
	Message string                  `json:"message"`
	Count   int                     `json:"count"`
	Lists   []larderdb.ShoppingList `json:"lists"`
}

// ShoppingListResponse is the response of shopping list writes.
type ShoppingListResponse struct {
	Message string                 `json:"message"`
	List    *larderdb.ShoppingList `json:"list"`
}

// GenerateRequest asks the server to build a list from recipes.
type GenerateRequest struct {
	ListName  string   `json:"listName"`
	RecipeIDs []string `json:"recipeIds"`
}

// Client calls the pantry and shopping list API.
type Client struct {
	api apiclient.Client
}

// New returns a client for the API at baseURL authorized by tokens.
func New(baseURL string, tokens oauth2.TokenSource) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{
		Timeout: defaultTimeout,
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
			BaseURL:    baseURL,
			HTTPClient: httpClient,
		},
	}
}

func (c *Client) ListPantry(ctx context.Context) (*PantryResponse, error) {
	var res PantryResponse
	if err := c.api.Do(ctx, http.MethodGet, "/api/pantry", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreatePantryItem(ctx context.Context, item larderdb.PantryItem) (*PantryItemResponse, error) {
	var res PantryItemResponse
	if err := c.api.Do(ctx, http.MethodPost, "/api/pantry", item, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) UpdatePantryItem(ctx context.Context, item larderdb.PantryItem) (*PantryItemResponse, error) {
	var res PantryItemResponse
	if err := c.api.Do(ctx, http.MethodPut, "/api/pantry/"+url.PathEscape(item.ID), item, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeletePantryItem(ctx context.Context, id string) error {
	return c.api.Do(ctx, http.MethodDelete, "/api/pantry/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListShoppingLists(ctx context.Context) (*ShoppingListsResponse, error) {
	var res ShoppingListsResponse
	if err := c.api.Do(ctx, http.MethodGet, "/api/shopping-list", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateShoppingList(ctx context.Context, list larderdb.ShoppingList) (*ShoppingListResponse, error) {
	var res ShoppingListResponse
	if err := c.api.Do(ctx, http.MethodPost, "/api/shopping-list", list, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) UpdateShoppingList(ctx context.Context, list larderdb.ShoppingList) (*ShoppingListResponse, error) {
	var res ShoppingListResponse
	if err := c.api.Do(ctx, http.MethodPut, "/api/shopping-list/"+url.PathEscape(list.ListID), list, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteShoppingList(ctx context.Context, id string) error {
	return c.api.Do(ctx, http.MethodDelete, "/api/shopping-list/"+url.PathEscape(id), nil, nil)
}

func (c *Client) GenerateShoppingList(ctx context.Context, req GenerateRequest) (*ShoppingListResponse, error) {
	var res ShoppingListResponse
	if err := c.api.Do(ctx, http.MethodPost, "/api/shopping-list/generate", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
