// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package favorite

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/curioswitch/larder/common/larderdb"
	frontendapi "github.com/curioswitch/larder/frontend/api/go"
	"github.com/curioswitch/larder/frontend/server/internal/auth"
)

var errMissingRecipe = errors.New("favorite: recipeId and categoryName are required")

type Store interface {
	Add(ctx context.Context, uid string, recipeID string, categoryName string) (string, error)
	Remove(ctx context.Context, uid string, recipeID string, categoryName string) (int, error)
	IsFavorite(ctx context.Context, uid string, recipeID string, categoryName string) (bool, error)
	List(ctx context.Context, uid string) ([]larderdb.FavoriteRecipe, error)
}

func NewHandler(store Store) *Handler {
	return &Handler{
		store: store,
	}
}

type Handler struct {
	store Store
}

func checkRecipe(recipeID string, categoryName string) error {
	if recipeID == "" || categoryName == "" {
		return connect.NewError(connect.CodeInvalidArgument, errMissingRecipe)
	}
	return nil
}

// AddFavorite adds a favorite row. Adding the same recipe twice adds two rows.
func (h *Handler) AddFavorite(ctx context.Context, req *frontendapi.AddFavoriteRequest) (*frontendapi.AddFavoriteResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkRecipe(req.RecipeID, req.CategoryName); err != nil {
		return nil, err
	}
	id, err := h.store.Add(ctx, uid, req.RecipeID, req.CategoryName)
	if err != nil {
		return nil, fmt.Errorf("favorite: adding favorite: %w", err)
	}
	return &frontendapi.AddFavoriteResponse{
		FavoriteID: id,
	}, nil
}

func (h *Handler) RemoveFavorite(ctx context.Context, req *frontendapi.RemoveFavoriteRequest) (*frontendapi.RemoveFavoriteResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkRecipe(req.RecipeID, req.CategoryName); err != nil {
		return nil, err
	}
	removed, err := h.store.Remove(ctx, uid, req.RecipeID, req.CategoryName)
	if err != nil {
		return nil, fmt.Errorf("favorite: removing favorite: %w", err)
	}
	return &frontendapi.RemoveFavoriteResponse{
		Removed: removed,
	}, nil
}

func (h *Handler) IsFavorite(ctx context.Context, req *frontendapi.IsFavoriteRequest) (*frontendapi.IsFavoriteResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	favorite, err := h.store.IsFavorite(ctx, uid, req.RecipeID, req.CategoryName)
	if err != nil {
		return nil, fmt.Errorf("favorite: checking favorite: %w", err)
	}
	return &frontendapi.IsFavoriteResponse{
		IsFavorite: favorite,
	}, nil
}

func (h *Handler) ListFavorites(ctx context.Context, _ *frontendapi.ListFavoritesRequest) (*frontendapi.ListFavoritesResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	favorites, err := h.store.List(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("favorite: listing favorites: %w", err)
	}
	return &frontendapi.ListFavoritesResponse{
		Favorites: favorites,
	}, nil
}
