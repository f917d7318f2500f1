// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package frontendapi

import "github.com/curioswitch/larder/common/larderdb"

type GetRandomRecipesRequest struct{}

type GetRandomRecipesResponse struct {
	Recipes []larderdb.Recipe `json:"recipes"`
}

type SearchRecipesRequest struct {
	Query string `json:"query"`
}

type SearchRecipesResponse struct {
	Recipes []larderdb.Recipe `json:"recipes"`
}

type GetDiscoveredRecipeRequest struct {
	RecipeID string `json:"recipeId"`
}

type GetDiscoveredRecipeResponse struct {
	Recipe *larderdb.Recipe `json:"recipe"`
}

// SaveDiscoveredRecipeRequest copies a discovered recipe into a category.
type SaveDiscoveredRecipeRequest struct {
	RecipeID     string `json:"recipeId"`
	CategoryName string `json:"categoryName"`
}

type SaveDiscoveredRecipeResponse struct {
	RecipeID string `json:"recipeId"`
}
