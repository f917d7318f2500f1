// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/curioswitch/larder/common/larderdb"
	frontendapi "github.com/curioswitch/larder/frontend/api/go"
	"github.com/curioswitch/larder/frontend/server/internal/auth"
	"github.com/curioswitch/larder/frontend/server/internal/discovery"
	"github.com/curioswitch/larder/frontend/server/internal/store"
)

// RecipeSourceDiscovery marks recipes saved from discovery without a source of
// their own.
const RecipeSourceDiscovery = "discovery"

type Client interface {
	RandomRecipes(ctx context.Context) (*discovery.RecipesResponse, error)
	SearchRecipes(ctx context.Context, query string) (*discovery.RecipesResponse, error)
	GetRecipe(ctx context.Context, id string) (*discovery.RecipeResponse, error)
}

type RecipeStore interface {
	Create(ctx context.Context, uid string, categoryName string, recipe *larderdb.Recipe) (string, error)
}

func NewHandler(client Client, recipes RecipeStore) *Handler {
	return &Handler{
		client:  client,
		recipes: recipes,
	}
}

type Handler struct {
	client  Client
	recipes RecipeStore
}

func (h *Handler) GetRandomRecipes(ctx context.Context, _ *frontendapi.GetRandomRecipesRequest) (*frontendapi.GetRandomRecipesResponse, error) {
	res, err := h.client.RandomRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovery: random recipes: %w", err)
	}
	return &frontendapi.GetRandomRecipesResponse{
		Recipes: nonNil(res.Recipes),
	}, nil
}

func (h *Handler) SearchRecipes(ctx context.Context, req *frontendapi.SearchRecipesRequest) (*frontendapi.SearchRecipesResponse, error) {
	res, err := h.client.SearchRecipes(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("discovery: searching recipes: %w", err)
	}
	return &frontendapi.SearchRecipesResponse{
		Recipes: nonNil(res.Recipes),
	}, nil
}

func (h *Handler) GetDiscoveredRecipe(ctx context.Context, req *frontendapi.GetDiscoveredRecipeRequest) (*frontendapi.GetDiscoveredRecipeResponse, error) {
	recipe, err := h.get(ctx, req.RecipeID)
	if err != nil {
		return nil, err
	}
	return &frontendapi.GetDiscoveredRecipeResponse{
		Recipe: recipe,
	}, nil
}

// SaveDiscoveredRecipe copies a discovered recipe into one of the user's
// categories as a new recipe.
func (h *Handler) SaveDiscoveredRecipe(ctx context.Context, req *frontendapi.SaveDiscoveredRecipeRequest) (*frontendapi.SaveDiscoveredRecipeResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	found, err := h.get(ctx, req.RecipeID)
	if err != nil {
		return nil, err
	}

	recipe := *found
	recipe.RecipeID = ""
	recipe.CreatedAt = time.Time{}
	if recipe.Source == "" || recipe.Source == larderdb.RecipeSourceUser {
		recipe.Source = RecipeSourceDiscovery
	}
	id, err := h.recipes.Create(ctx, uid, req.CategoryName, &recipe)
	if err != nil {
		return nil, fmt.Errorf("discovery: saving recipe: %w", err)
	}
	return &frontendapi.SaveDiscoveredRecipeResponse{
		RecipeID: id,
	}, nil
}

func (h *Handler) get(ctx context.Context, id string) (*larderdb.Recipe, error) {
	res, err := h.client.GetRecipe(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("discovery: getting recipe: %w", err)
	}
	if res.Recipe == nil {
		return nil, store.ErrRecipeNotFound
	}
	return res.Recipe, nil
}

func nonNil(recipes []larderdb.Recipe) []larderdb.Recipe {
	if recipes == nil {
		return []larderdb.Recipe{}
	}
	return recipes
}
