// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package pantryapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/curioswitch/larder/common/larderdb"
	"github.com/curioswitch/larder/frontend/server/internal/apiclient"
)

// fakeAPI is an in-memory implementation of the remote API.
type fakeAPI struct {
	mu    sync.Mutex
	items map[string]larderdb.PantryItem
	lists map[string]larderdb.ShoppingList
}

func newFakeAPI(t *testing.T) *Client {
	t.Helper()
	api := &fakeAPI{
		items: map[string]larderdb.PantryItem{},
		lists: map[string]larderdb.ShoppingList{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pantry", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		api.mu.Lock()
		defer api.mu.Unlock()
		res := PantryResponse{Message: "ok", Items: []larderdb.PantryItem{}}
		for _, item := range api.items {
			res.Items = append(res.Items, item)
		}
		res.Count = len(res.Items)
		writeJSON(w, res)
	})
	mux.HandleFunc("POST /api/pantry", func(w http.ResponseWriter, r *http.Request) {
		var item larderdb.PantryItem
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&item))
		api.mu.Lock()
		api.items[item.ID] = item
		api.mu.Unlock()
		writeJSON(w, PantryItemResponse{Message: "created", Item: &item})
	})
	mux.HandleFunc("PUT /api/pantry/{id}", func(w http.ResponseWriter, r *http.Request) {
		var item larderdb.PantryItem
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&item))
		api.mu.Lock()
		defer api.mu.Unlock()
		if _, ok := api.items[r.PathValue("id")]; !ok {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]string{"message": "item not found"})
			return
		}
		api.items[item.ID] = item
		writeJSON(w, PantryItemResponse{Message: "updated", Item: &item})
	})
	mux.HandleFunc("DELETE /api/pantry/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		delete(api.items, r.PathValue("id"))
		api.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/shopping-list", func(w http.ResponseWriter, _ *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		res := ShoppingListsResponse{Message: "ok", Lists: []larderdb.ShoppingList{}}
		for _, list := range api.lists {
			res.Lists = append(res.Lists, list)
		}
		res.Count = len(res.Lists)
		writeJSON(w, res)
	})
	mux.HandleFunc("POST /api/shopping-list", func(w http.ResponseWriter, r *http.Request) {
		var list larderdb.ShoppingList
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&list))
		api.mu.Lock()
		api.lists[list.ListID] = list
		api.mu.Unlock()
		writeJSON(w, ShoppingListResponse{Message: "created", List: &list})
	})
	mux.HandleFunc("PUT /api/shopping-list/{id}", func(w http.ResponseWriter, r *http.Request) {
		var list larderdb.ShoppingList
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&list))
		api.mu.Lock()
		api.lists[r.PathValue("id")] = list
		api.mu.Unlock()
		writeJSON(w, ShoppingListResponse{Message: "updated", List: &list})
	})
	mux.HandleFunc("DELETE /api/shopping-list/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		delete(api.lists, r.PathValue("id"))
		api.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /api/shopping-list/generate", func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		list := larderdb.ShoppingList{ListID: "gen", ListName: req.ListName}
		for _, id := range req.RecipeIDs {
			list.Items = append(list.Items, larderdb.ShoppingItem{ItemID: id, Name: "from " + id, Quantity: 1})
		}
		list.Recount()
		writeJSON(w, ShoppingListResponse{Message: "generated", List: &list})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"}))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestPantry(t *testing.T) {
	c := newFakeAPI(t)
	ctx := t.Context()

	created, err := c.CreatePantryItem(ctx, larderdb.PantryItem{ID: "p1", Title: "Rice", Quantity: 1, Location: larderdb.LocationPantry})
	require.NoError(t, err)
	require.Equal(t, "Rice", created.Item.Title)

	item := *created.Item
	item.Quantity = 2
	updated, err := c.UpdatePantryItem(ctx, item)
	require.NoError(t, err)
	require.Equal(t, 2, updated.Item.Quantity)

	_, err = c.UpdatePantryItem(ctx, larderdb.PantryItem{ID: "missing"})
	var apiErr *apiclient.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, apiclient.KindHTTP, apiErr.Kind)
	require.EqualError(t, err, "HTTP 404: item not found")

	list, err := c.ListPantry(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)

	require.NoError(t, c.DeletePantryItem(ctx, "p1"))
	list, err = c.ListPantry(ctx)
	require.NoError(t, err)
	require.Empty(t, list.Items)
}

func TestShoppingLists(t *testing.T) {
	c := newFakeAPI(t)
	ctx := t.Context()

	created, err := c.CreateShoppingList(ctx, larderdb.ShoppingList{ListID: "l1", ListName: "Weekly"})
	require.NoError(t, err)
	require.Equal(t, "Weekly", created.List.ListName)

	list := *created.List
	list.ListName = "Monthly"
	updated, err := c.UpdateShoppingList(ctx, list)
	require.NoError(t, err)
	require.Equal(t, "Monthly", updated.List.ListName)

	all, err := c.ListShoppingLists(ctx)
	require.NoError(t, err)
	require.Len(t, all.Lists, 1)

	generated, err := c.GenerateShoppingList(ctx, GenerateRequest{ListName: "Party", RecipeIDs: []string{"r1", "r2"}})
	require.NoError(t, err)
	require.Equal(t, 2, generated.List.TotalItems)

	require.NoError(t, c.DeleteShoppingList(ctx, "l1"))
	all, err = c.ListShoppingLists(ctx)
	require.NoError(t, err)
	require.Empty(t, all.Lists)
}
