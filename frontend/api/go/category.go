// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package frontendapi

import "github.com/curioswitch/larder/common/larderdb"

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []larderdb.RecipeCategory `json:"categories"`
}

type CreateCategoryRequest struct {
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
}

type CreateCategoryResponse struct {
	CategoryName string `json:"categoryName"`
}

type ReconcileRecipeCountsRequest struct{}

type ReconcileRecipeCountsResponse struct {
	// Categories are the categories with their recounted recipe counts.
	Categories []larderdb.RecipeCategory `json:"categories"`
}

type DeleteCategoryRequest struct {
	CategoryName string `json:"categoryName"`
}

type DeleteCategoryResponse struct{}
