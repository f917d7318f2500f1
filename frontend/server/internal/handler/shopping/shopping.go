// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package shopping

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/curioswitch/larder/common/larderdb"
	frontendapi "github.com/curioswitch/larder/frontend/api/go"
	"github.com/curioswitch/larder/frontend/server/internal/auth"
	pantrystate "github.com/curioswitch/larder/frontend/server/internal/pantry"
	shoppingstate "github.com/curioswitch/larder/frontend/server/internal/shopping"
	"github.com/curioswitch/larder/frontend/server/internal/store"
)

// recipeFetchParallelism bounds the concurrent recipe reads of a generate.
const recipeFetchParallelism = 4

type RecipeStore interface {
	Get(ctx context.Context, uid string, categoryName string, recipeID string) (*larderdb.Recipe, error)
}

func NewHandler(lists *shoppingstate.Registry, pantries *pantrystate.Registry, recipes RecipeStore) *Handler {
	return &Handler{
		lists:    lists,
		pantries: pantries,
		recipes:  recipes,
		now:      time.Now,
	}
}

type Handler struct {
	lists    *shoppingstate.Registry
	pantries *pantrystate.Registry
	recipes  RecipeStore
	now      func() time.Time
}

func (h *Handler) userLists(ctx context.Context) (*shoppingstate.Lists, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	return h.lists.For(uid), nil
}

func (h *Handler) CreateShoppingList(ctx context.Context, req *frontendapi.CreateShoppingListRequest) (*frontendapi.CreateShoppingListResponse, error) {
	lists, err := h.userLists(ctx)
	if err != nil {
		return nil, err
	}
	list, err := lists.Create(req.ListName, h.now())
	if err != nil {
		return nil, err
	}
	return &frontendapi.CreateShoppingListResponse{
		List: list,
	}, nil
}

func (h *Handler) ListShoppingLists(ctx context.Context, _ *frontendapi.ListShoppingListsRequest) (*frontendapi.ListShoppingListsResponse, error) {
	lists, err := h.userLists(ctx)
	if err != nil {
		return nil, err
	}
	return &frontendapi.ListShoppingListsResponse{
		Lists: lists.All(),
	}, nil
}

func (h *Handler) AddShoppingItem(ctx context.Context, req *frontendapi.AddShoppingItemRequest) (*frontendapi.AddShoppingItemResponse, error) {
	lists, err := h.userLists(ctx)
	if err != nil {
		return nil, err
	}
	list, err := lists.AddItem(req.ListID, larderdb.ShoppingItem{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	})
	if err != nil {
		return nil, err
	}
	return &frontendapi.AddShoppingItemResponse{
		List: list,
	}, nil
}

func (h *Handler) RemoveShoppingItem(ctx context.Context, req *frontendapi.RemoveShoppingItemRequest) (*frontendapi.RemoveShoppingItemResponse, error) {
	lists, err := h.userLists(ctx)
	if err != nil {
		return nil, err
	}
	list, err := lists.RemoveItem(req.ListID, req.ItemID)
	if err != nil {
		return nil, err
	}
	return &frontendapi.RemoveShoppingItemResponse{
		List: list,
	}, nil
}

func (h *Handler) ToggleShoppingItem(ctx context.Context, req *frontendapi.ToggleShoppingItemRequest) (*frontendapi.ToggleShoppingItemResponse, error) {
	lists, err := h.userLists(ctx)
	if err != nil {
		return nil, err
	}
	list, err := lists.ToggleItemChecked(req.ListID, req.ItemID, h.now())
	if err != nil {
		return nil, err
	}
	return &frontendapi.ToggleShoppingItemResponse{
		List: list,
	}, nil
}

func (h *Handler) DeleteShoppingList(ctx context.Context, req *frontendapi.DeleteShoppingListRequest) (*frontendapi.DeleteShoppingListResponse, error) {
	lists, err := h.userLists(ctx)
	if err != nil {
		return nil, err
	}
	if err := lists.Delete(req.ListID); err != nil {
		return nil, err
	}
	return &frontendapi.DeleteShoppingListResponse{}, nil
}

// GenerateShoppingList reads the requested recipes and stores a new list of
// their ingredients minus what the pantry already has.
func (h *Handler) GenerateShoppingList(ctx context.Context, req *frontendapi.GenerateShoppingListRequest) (*frontendapi.GenerateShoppingListResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if req.ListName == "" {
		return nil, shoppingstate.ErrEmptyName
	}

	recipes := make([]larderdb.Recipe, len(req.Recipes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recipeFetchParallelism)
	for i, ref := range req.Recipes {
		g.Go(func() error {
			recipe, err := h.recipes.Get(gctx, uid, ref.CategoryName, ref.RecipeID)
			if err != nil {
				return fmt.Errorf("shopping: getting recipe %q: %w", ref.RecipeID, err)
			}
			if recipe == nil {
				return fmt.Errorf("shopping: recipe %q: %w", ref.RecipeID, store.ErrRecipeNotFound)
			}
			recipes[i] = *recipe
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	list := shoppingstate.Generate(req.ListName, h.now(), recipes, h.pantries.For(uid).Items())
	return &frontendapi.GenerateShoppingListResponse{
		List: h.lists.For(uid).Add(list),
	}, nil
}
