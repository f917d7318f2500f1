// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package category

import (
	"context"
	"fmt"

	"github.com/curioswitch/larder/common/larderdb"
	frontendapi "github.com/curioswitch/larder/frontend/api/go"
	"github.com/curioswitch/larder/frontend/server/internal/auth"
)

type Store interface {
	Create(ctx context.Context, uid string, category *larderdb.RecipeCategory) (string, error)
	List(ctx context.Context, uid string) ([]larderdb.RecipeCategory, error)
	ReconcileRecipeCounts(ctx context.Context, uid string) error
	Delete(ctx context.Context, uid string, name string) error
}

func NewHandler(store Store) *Handler {
	return &Handler{
		store: store,
	}
}

type Handler struct {
	store Store
}

func (h *Handler) ListCategories(ctx context.Context, _ *frontendapi.ListCategoriesRequest) (*frontendapi.ListCategoriesResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := h.store.List(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("category: listing categories: %w", err)
	}
	return &frontendapi.ListCategoriesResponse{
		Categories: categories,
	}, nil
}

func (h *Handler) CreateCategory(ctx context.Context, req *frontendapi.CreateCategoryRequest) (*frontendapi.CreateCategoryResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	name, err := h.store.Create(ctx, uid, &larderdb.RecipeCategory{
		CategoryName: req.CategoryName,
		Description:  req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("category: creating category: %w", err)
	}
	return &frontendapi.CreateCategoryResponse{
		CategoryName: name,
	}, nil
}

func (h *Handler) ReconcileRecipeCounts(ctx context.Context, _ *frontendapi.ReconcileRecipeCountsRequest) (*frontendapi.ReconcileRecipeCountsResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.store.ReconcileRecipeCounts(ctx, uid); err != nil {
		return nil, fmt.Errorf("category: reconciling recipe counts: %w", err)
	}
	categories, err := h.store.List(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("category: listing categories: %w", err)
	}
	return &frontendapi.ReconcileRecipeCountsResponse{
		Categories: categories,
	}, nil
}

func (h *Handler) DeleteCategory(ctx context.Context, req *frontendapi.DeleteCategoryRequest) (*frontendapi.DeleteCategoryResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if req.CategoryName == "" {
		return nil, fmt.Errorf("%w: categoryName is required", larderdb.ErrInvalidCategory)
	}
	if err := h.store.Delete(ctx, uid, req.CategoryName); err != nil {
		return nil, fmt.Errorf("category: deleting category: %w", err)
	}
	return &frontendapi.DeleteCategoryResponse{}, nil
}
