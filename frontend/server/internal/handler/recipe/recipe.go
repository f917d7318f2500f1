// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/curioswitch/larder/common/image"
	"github.com/curioswitch/larder/common/larderdb"
	frontendapi "github.com/curioswitch/larder/frontend/api/go"
	"github.com/curioswitch/larder/frontend/server/internal/auth"
	"github.com/curioswitch/larder/frontend/server/internal/store"
	"github.com/curioswitch/larder/frontend/server/internal/upload"
)

type RecipeStore interface {
	NewID(uid string, categoryName string) string
	Create(ctx context.Context, uid string, categoryName string, recipe *larderdb.Recipe) (string, error)
	Update(ctx context.Context, uid string, categoryName string, recipe *larderdb.Recipe) error
	Delete(ctx context.Context, uid string, categoryName string, recipeID string) error
	Get(ctx context.Context, uid string, categoryName string, recipeID string) (*larderdb.Recipe, error)
	List(ctx context.Context, uid string, categoryName string) ([]larderdb.Recipe, error)
}

type FavoriteStore interface {
	IsFavorite(ctx context.Context, uid string, recipeID string, categoryName string) (bool, error)
	Remove(ctx context.Context, uid string, recipeID string, categoryName string) (int, error)
}

type Uploader interface {
	Upload(ctx context.Context, bucket upload.Bucket, key string, data []byte) (string, error)
	URL(ctx context.Context, bucket upload.Bucket, key string, data []byte) string
	Delete(ctx context.Context, bucket upload.Bucket, key string) error
}

func NewHandler(recipes RecipeStore, favorites FavoriteStore, uploader Uploader) *Handler {
	return &Handler{
		recipes:   recipes,
		favorites: favorites,
		uploader:  uploader,
	}
}

type Handler struct {
	recipes   RecipeStore
	favorites FavoriteStore
	uploader  Uploader
}

func (h *Handler) ListRecipes(ctx context.Context, req *frontendapi.ListRecipesRequest) (*frontendapi.ListRecipesResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	recipes, err := h.recipes.List(ctx, uid, req.CategoryName)
	if err != nil {
		return nil, fmt.Errorf("recipe: listing recipes: %w", err)
	}
	return &frontendapi.ListRecipesResponse{
		Recipes: recipes,
	}, nil
}

func (h *Handler) GetRecipe(ctx context.Context, req *frontendapi.GetRecipeRequest) (*frontendapi.GetRecipeResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	recipe, err := h.recipes.Get(ctx, uid, req.CategoryName, req.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("recipe: getting recipe: %w", err)
	}
	if recipe == nil {
		return nil, store.ErrRecipeNotFound
	}
	favorite, err := h.favorites.IsFavorite(ctx, uid, req.RecipeID, req.CategoryName)
	if err != nil {
		return nil, fmt.Errorf("recipe: checking favorite: %w", err)
	}
	return &frontendapi.GetRecipeResponse{
		Recipe:     recipe,
		IsFavorite: favorite,
	}, nil
}

// AddRecipe reserves the recipe ID first so the image can be stored under it
// before the recipe is written.
func (h *Handler) AddRecipe(ctx context.Context, req *frontendapi.AddRecipeRequest) (*frontendapi.AddRecipeResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}

	recipe := req.Recipe
	recipe.RecipeID = h.recipes.NewID(uid, req.CategoryName)
	recipe.Source = larderdb.RecipeSourceUser
	recipe.CreatedAt = time.Time{}
	recipe.Normalize()
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	key := upload.Key(uid, recipe.RecipeID)
	if req.ImageDataURL != "" {
		_, data, err := image.DecodeDataURL(req.ImageDataURL)
		if err != nil {
			return nil, err
		}
		url, err := h.uploader.Upload(ctx, upload.BucketRecipe, key, data)
		if err != nil {
			return nil, fmt.Errorf("recipe: saving image: %w", err)
		}
		recipe.ImageURL = url
	} else {
		placeholder, err := image.Placeholder(recipe.Title)
		if err != nil {
			slog.WarnContext(ctx, "recipe: rendering placeholder", "error", err)
		} else {
			recipe.ImageURL = h.uploader.URL(ctx, upload.BucketRecipe, key, placeholder)
		}
	}

	id, err := h.recipes.Create(ctx, uid, req.CategoryName, &recipe)
	if err != nil {
		if recipe.ImageURL != "" {
			if derr := h.uploader.Delete(ctx, upload.BucketRecipe, key); derr != nil {
				slog.WarnContext(ctx, "recipe: removing orphaned image", "key", key, "error", derr)
			}
		}
		return nil, fmt.Errorf("recipe: creating recipe: %w", err)
	}
	return &frontendapi.AddRecipeResponse{
		RecipeID: id,
		ImageURL: recipe.ImageURL,
	}, nil
}

func (h *Handler) UpdateRecipe(ctx context.Context, req *frontendapi.UpdateRecipeRequest) (*frontendapi.UpdateRecipeResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := h.recipes.Get(ctx, uid, req.CategoryName, req.Recipe.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("recipe: getting recipe: %w", err)
	}
	if existing == nil {
		return nil, store.ErrRecipeNotFound
	}

	recipe := req.Recipe
	recipe.CreatedAt = existing.CreatedAt
	if recipe.Source == "" {
		recipe.Source = existing.Source
	}
	if recipe.ImageURL == "" {
		recipe.ImageURL = existing.ImageURL
	}
	recipe.Normalize()
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	if req.ImageDataURL != "" {
		_, data, err := image.DecodeDataURL(req.ImageDataURL)
		if err != nil {
			return nil, err
		}
		url, err := h.uploader.Upload(ctx, upload.BucketRecipe, upload.Key(uid, recipe.RecipeID), data)
		if err != nil {
			return nil, fmt.Errorf("recipe: saving image: %w", err)
		}
		recipe.ImageURL = url
	}

	if err := h.recipes.Update(ctx, uid, req.CategoryName, &recipe); err != nil {
		return nil, fmt.Errorf("recipe: updating recipe: %w", err)
	}
	return &frontendapi.UpdateRecipeResponse{
		Recipe: &recipe,
	}, nil
}

// DeleteRecipe deletes the recipe, then its favorites, then its image. The
// steps are not atomic and the first failure is returned.
func (h *Handler) DeleteRecipe(ctx context.Context, req *frontendapi.DeleteRecipeRequest) (*frontendapi.DeleteRecipeResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.recipes.Delete(ctx, uid, req.CategoryName, req.RecipeID); err != nil {
		return nil, fmt.Errorf("recipe: deleting recipe: %w", err)
	}
	removed, err := h.favorites.Remove(ctx, uid, req.RecipeID, req.CategoryName)
	if err != nil {
		return nil, fmt.Errorf("recipe: removing favorites: %w", err)
	}
	if err := h.uploader.Delete(ctx, upload.BucketRecipe, upload.Key(uid, req.RecipeID)); err != nil {
		return nil, fmt.Errorf("recipe: deleting image: %w", err)
	}
	return &frontendapi.DeleteRecipeResponse{
		RemovedFavorites: removed,
	}, nil
}
