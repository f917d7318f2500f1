// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package frontendapi

import "github.com/curioswitch/larder/common/larderdb"

type ListRecipesRequest struct {
	CategoryName string `json:"categoryName"`
}

type ListRecipesResponse struct {
	Recipes []larderdb.Recipe `json:"recipes"`
}

type GetRecipeRequest struct {
	CategoryName string `json:"categoryName"`
	RecipeID     string `json:"recipeId"`
}

type GetRecipeResponse struct {
	Recipe     *larderdb.Recipe `json:"recipe"`
	IsFavorite bool             `json:"isFavorite"`
}

type AddRecipeRequest struct {
	CategoryName string          `json:"categoryName"`
	Recipe       larderdb.Recipe `json:"recipe"`

	// ImageDataURL is the main image as a data URL, e.g.
	// data:image/png;base64,... A placeholder is generated when empty.
	ImageDataURL string `json:"imageDataUrl"`
}

type AddRecipeResponse struct {
	RecipeID string `json:"recipeId"`
	ImageURL string `json:"imageUrl"`
}

type UpdateRecipeRequest struct {
	CategoryName string          `json:"categoryName"`
	Recipe       larderdb.Recipe `json:"recipe"`

	// ImageDataURL replaces the main image when set.
	ImageDataURL string `json:"imageDataUrl"`
}

type UpdateRecipeResponse struct {
	Recipe *larderdb.Recipe `json:"recipe"`
}

type DeleteRecipeRequest struct {
	CategoryName string `json:"categoryName"`
	RecipeID     string `json:"recipeId"`
}

type DeleteRecipeResponse struct {
	// RemovedFavorites is the number of favorites removed with the recipe.
	RemovedFavorites int `json:"removedFavorites"`
}
