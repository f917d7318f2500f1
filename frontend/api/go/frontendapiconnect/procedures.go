// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package frontendapiconnect names the procedures of the FrontendService.
package frontendapiconnect

// FrontendServiceName is the fully-qualified name of the FrontendService.
const FrontendServiceName = "larder.frontend.v1.FrontendService"

// Procedures are the HTTP paths of the FrontendService methods.
const (
	FrontendServiceListCategoriesProcedure        = "/larder.frontend.v1.FrontendService/ListCategories"
	FrontendServiceCreateCategoryProcedure        = "/larder.frontend.v1.FrontendService/CreateCategory"
	FrontendServiceReconcileRecipeCountsProcedure = "/larder.frontend.v1.FrontendService/ReconcileRecipeCounts"
	FrontendServiceDeleteCategoryProcedure        = "/larder.frontend.v1.FrontendService/DeleteCategory"
	FrontendServiceListRecipesProcedure           = "/larder.frontend.v1.FrontendService/ListRecipes"
	FrontendServiceGetRecipeProcedure             = "/larder.frontend.v1.FrontendService/GetRecipe"
	FrontendServiceAddRecipeProcedure             = "/larder.frontend.v1.FrontendService/AddRecipe"
	FrontendServiceUpdateRecipeProcedure          = "/larder.frontend.v1.FrontendService/UpdateRecipe"
	FrontendServiceDeleteRecipeProcedure          = "/larder.frontend.v1.FrontendService/DeleteRecipe"
	FrontendServiceAddFavoriteProcedure           = "/larder.frontend.v1.FrontendService/AddFavorite"
	FrontendServiceRemoveFavoriteProcedure        = "/larder.frontend.v1.FrontendService/RemoveFavorite"
	FrontendServiceIsFavoriteProcedure            = "/larder.frontend.v1.FrontendService/IsFavorite"
	FrontendServiceListFavoritesProcedure         = "/larder.frontend.v1.FrontendService/ListFavorites"
	FrontendServiceLoadPantryItemProcedure        = "/larder.frontend.v1.FrontendService/LoadPantryItem"
	FrontendServiceUpdatePantryDraftProcedure     = "/larder.frontend.v1.FrontendService/UpdatePantryDraft"
	FrontendServiceSavePantryItemProcedure        = "/larder.frontend.v1.FrontendService/SavePantryItem"
	FrontendServiceRemovePantryItemProcedure      = "/larder.frontend.v1.FrontendService/RemovePantryItem"
	FrontendServiceListPantryItemsProcedure       = "/larder.frontend.v1.FrontendService/ListPantryItems"
	FrontendServiceTogglePantryFavoriteProcedure  = "/larder.frontend.v1.FrontendService/TogglePantryFavorite"
	FrontendServiceUploadPantryImageProcedure     = "/larder.frontend.v1.FrontendService/UploadPantryImage"
	FrontendServiceWatchPantryItemsProcedure      = "/larder.frontend.v1.FrontendService/WatchPantryItems"
	FrontendServiceCreateShoppingListProcedure    = "/larder.frontend.v1.FrontendService/CreateShoppingList"
	FrontendServiceListShoppingListsProcedure     = "/larder.frontend.v1.FrontendService/ListShoppingLists"
	FrontendServiceAddShoppingItemProcedure       = "/larder.frontend.v1.FrontendService/AddShoppingItem"
	FrontendServiceRemoveShoppingItemProcedure    = "/larder.frontend.v1.FrontendService/RemoveShoppingItem"
	FrontendServiceToggleShoppingItemProcedure    = "/larder.frontend.v1.FrontendService/ToggleShoppingItem"
	FrontendServiceDeleteShoppingListProcedure    = "/larder.frontend.v1.FrontendService/DeleteShoppingList"
	FrontendServiceGenerateShoppingListProcedure  = "/larder.frontend.v1.FrontendService/GenerateShoppingList"
	FrontendServiceGetRandomRecipesProcedure      = "/larder.frontend.v1.FrontendService/GetRandomRecipes"
	FrontendServiceSearchRecipesProcedure         = "/larder.frontend.v1.FrontendService/SearchRecipes"
	FrontendServiceGetDiscoveredRecipeProcedure   = "/larder.frontend.v1.FrontendService/GetDiscoveredRecipe"
	FrontendServiceSaveDiscoveredRecipeProcedure  = "/larder.frontend.v1.FrontendService/SaveDiscoveredRecipe"
	FrontendServiceRegisterProfileProcedure       = "/larder.frontend.v1.FrontendService/RegisterProfile"
	FrontendServiceGetProfileProcedure            = "/larder.frontend.v1.FrontendService/GetProfile"
	FrontendServiceUpdateProfileProcedure         = "/larder.frontend.v1.FrontendService/UpdateProfile"
	FrontendServiceUpdatePreferencesProcedure     = "/larder.frontend.v1.FrontendService/UpdatePreferences"
	FrontendServiceDeleteAccountProcedure         = "/larder.frontend.v1.FrontendService/DeleteAccount"
)
