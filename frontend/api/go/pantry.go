// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package frontendapi

import "github.com/curioswitch/larder/common/larderdb"

type LoadPantryItemRequest struct {
	// ItemID is the item to edit, empty to start a new item.
	ItemID string `json:"itemId"`
}

type LoadPantryItemResponse struct {
	Draft larderdb.PantryItem `json:"draft"`
}

// UpdatePantryDraftRequest changes the fields of the draft that are set.
type UpdatePantryDraftRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ExpiryDate  *int64  `json:"expiryDate,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	Category    *string `json:"category,omitempty"`
	Location    *string `json:"location,omitempty"`
	Favorite    *bool   `json:"favorite,omitempty"`
}

type UpdatePantryDraftResponse struct {
	Draft larderdb.PantryItem `json:"draft"`
}

type SavePantryItemRequest struct{}

type SavePantryItemResponse struct {
	Item larderdb.PantryItem `json:"item"`
}

type RemovePantryItemRequest struct {
	ItemID string `json:"itemId"`
}

type RemovePantryItemResponse struct{}

// ListPantryItemsRequest filters the pantry. Empty filters match every item.
type ListPantryItemsRequest struct {
	Location string `json:"location"`
	Query    string `json:"query"`

	// ExpiringWithinDays only returns items expiring in the given number of
	// days when positive.
	ExpiringWithinDays int `json:"expiringWithinDays"`
}

type ListPantryItemsResponse struct {
	Items []larderdb.PantryItem `json:"items"`
}

type TogglePantryFavoriteRequest struct {
	ItemID string `json:"itemId"`
}

type TogglePantryFavoriteResponse struct {
	Favorite bool `json:"favorite"`
}

// UploadPantryImageRequest sets the image of the draft.
type UploadPantryImageRequest struct {
	ImageDataURL string `json:"imageDataUrl"`
}

type UploadPantryImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

type WatchPantryItemsRequest struct{}

type WatchPantryItemsResponse struct {
	Items []larderdb.PantryItem `json:"items"`
}
