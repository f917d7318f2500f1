// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package frontendapi

import "github.com/curioswitch/larder/common/larderdb"

type AddFavoriteRequest struct {
	RecipeID     string `json:"recipeId"`
	CategoryName string `json:"categoryName"`
}

type AddFavoriteResponse struct {
	FavoriteID string `json:"favoriteId"`
}

type RemoveFavoriteRequest struct {
	RecipeID     string `json:"recipeId"`
	CategoryName string `json:"categoryName"`
}

type RemoveFavoriteResponse struct {
	Removed int `json:"removed"`
}

type IsFavoriteRequest struct {
	RecipeID     string `json:"recipeId"`
	CategoryName string `json:"categoryName"`
}

type IsFavoriteResponse struct {
	IsFavorite bool `json:"isFavorite"`
}

type ListFavoritesRequest struct{}

type ListFavoritesResponse struct {
	Favorites []larderdb.FavoriteRecipe `json:"favorites"`
}
