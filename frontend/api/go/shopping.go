// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package frontendapi

import "github.com/curioswitch/larder/common/larderdb"

type CreateShoppingListRequest struct {
	ListName string `json:"listName"`
}

type CreateShoppingListResponse struct {
	List larderdb.ShoppingList `json:"list"`
}

type ListShoppingListsRequest struct{}

type ListShoppingListsResponse struct {
	Lists []larderdb.ShoppingList `json:"lists"`
}

type AddShoppingItemRequest struct {
	ListID   string  `json:"listId"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type AddShoppingItemResponse struct {
	List larderdb.ShoppingList `json:"list"`
}

type RemoveShoppingItemRequest struct {
	ListID string `json:"listId"`
	ItemID string `json:"itemId"`
}

type RemoveShoppingItemResponse struct {
	List larderdb.ShoppingList `json:"list"`
}

type ToggleShoppingItemRequest struct {
	ListID string `json:"listId"`
	ItemID string `json:"itemId"`
}

type ToggleShoppingItemResponse struct {
	List larderdb.ShoppingList `json:"list"`
}

type DeleteShoppingListRequest struct {
	ListID string `json:"listId"`
}

type DeleteShoppingListResponse struct{}

// RecipeRef identifies a saved recipe.
type RecipeRef struct {
	CategoryName string `json:"categoryName"`
	RecipeID     string `json:"recipeId"`
}

// GenerateShoppingListRequest builds a list from the ingredients of saved
// recipes, skipping what is already in the pantry.
type GenerateShoppingListRequest struct {
	ListName string      `json:"listName"`
	Recipes  []RecipeRef `json:"recipes"`
}

type GenerateShoppingListResponse struct {
	List larderdb.ShoppingList `json:"list"`
}
