// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package pantry

import (
	"context"
	"fmt"
	"time"

	"github.com/curioswitch/larder/common/image"
	"github.com/curioswitch/larder/common/larderdb"
	frontendapi "github.com/curioswitch/larder/frontend/api/go"
	"github.com/curioswitch/larder/frontend/server/internal/auth"
	pantrystate "github.com/curioswitch/larder/frontend/server/internal/pantry"
	"github.com/curioswitch/larder/frontend/server/internal/upload"
)

// maxExpiringWithinDays caps the expiry window so it fits a time.Duration.
const maxExpiringWithinDays = 36500

type Uploader interface {
	Upload(ctx context.Context, bucket upload.Bucket, key string, data []byte) (string, error)
}

func NewHandler(pantries *pantrystate.Registry, uploader Uploader) *Handler {
	return &Handler{
		pantries: pantries,
		uploader: uploader,
		now:      time.Now,
	}
}

type Handler struct {
	pantries *pantrystate.Registry
	uploader Uploader
	now      func() time.Time
}

func (h *Handler) state(ctx context.Context) (*pantrystate.State, string, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, "", err
	}
	return h.pantries.For(uid), uid, nil
}

func (h *Handler) LoadPantryItem(ctx context.Context, req *frontendapi.LoadPantryItemRequest) (*frontendapi.LoadPantryItemResponse, error) {
	st, _, err := h.state(ctx)
	if err != nil {
		return nil, err
	}
	draft, err := st.Load(req.ItemID)
	if err != nil {
		return nil, err
	}
	return &frontendapi.LoadPantryItemResponse{
		Draft: draft,
	}, nil
}

func (h *Handler) UpdatePantryDraft(ctx context.Context, req *frontendapi.UpdatePantryDraftRequest) (*frontendapi.UpdatePantryDraftResponse, error) {
	st, _, err := h.state(ctx)
	if err != nil {
		return nil, err
	}

	// Parse first so an invalid request changes nothing.
	var location larderdb.Location
	if req.Location != nil {
		location, err = larderdb.ParseLocation(*req.Location)
		if err != nil {
			return nil, err
		}
	}

	if req.Title != nil {
		st.UpdateTitle(*req.Title)
	}
	if req.Description != nil {
		st.UpdateDescription(*req.Description)
	}
	if req.ExpiryDate != nil {
		st.UpdateExpiryDate(*req.ExpiryDate)
	}
	if req.Quantity != nil {
		st.UpdateQuantity(*req.Quantity)
	}
	if req.Category != nil {
		st.UpdateCategory(*req.Category)
	}
	if req.Location != nil {
		st.UpdateLocation(location)
	}
	if req.Favorite != nil {
		st.UpdateFavorite(*req.Favorite)
	}
	return &frontendapi.UpdatePantryDraftResponse{
		Draft: st.Draft(),
	}, nil
}

func (h *Handler) SavePantryItem(ctx context.Context, _ *frontendapi.SavePantryItemRequest) (*frontendapi.SavePantryItemResponse, error) {
	st, _, err := h.state(ctx)
	if err != nil {
		return nil, err
	}
	return &frontendapi.SavePantryItemResponse{
		Item: st.SaveCurrentItem(),
	}, nil
}

func (h *Handler) RemovePantryItem(ctx context.Context, req *frontendapi.RemovePantryItemRequest) (*frontendapi.RemovePantryItemResponse, error) {
	st, _, err := h.state(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Remove(req.ItemID); err != nil {
		return nil, err
	}
	return &frontendapi.RemovePantryItemResponse{}, nil
}

func (h *Handler) ListPantryItems(ctx context.Context, req *frontendapi.ListPantryItemsRequest) (*frontendapi.ListPantryItemsResponse, error) {
	st, _, err := h.state(ctx)
	if err != nil {
		return nil, err
	}

	items := st.Items()
	if req.Location != "" {
		location, err := larderdb.ParseLocation(req.Location)
		if err != nil {
			return nil, err
		}
		items = intersect(items, st.ItemsAt(location))
	}
	if req.Query != "" {
		items = intersect(items, st.Search(req.Query))
	}
	if req.ExpiringWithinDays > 0 {
		days := min(req.ExpiringWithinDays, maxExpiringWithinDays)
		// Keep the soonest-first order of the expiry query.
		items = intersect(st.ExpiringWithin(h.now(), time.Duration(days)*24*time.Hour), items)
	}
	return &frontendapi.ListPantryItemsResponse{
		Items: items,
	}, nil
}

// intersect returns the items of a that are also in b, in the order of a.
func intersect(a []larderdb.PantryItem, b []larderdb.PantryItem) []larderdb.PantryItem {
	ids := make(map[string]struct{}, len(b))
	for _, item := range b {
		ids[item.ID] = struct{}{}
	}
	res := []larderdb.PantryItem{}
	for _, item := range a {
		if _, ok := ids[item.ID]; ok {
			res = append(res, item)
		}
	}
	return res
}

func (h *Handler) TogglePantryFavorite(ctx context.Context, req *frontendapi.TogglePantryFavoriteRequest) (*frontendapi.TogglePantryFavoriteResponse, error) {
	st, _, err := h.state(ctx)
	if err != nil {
		return nil, err
	}
	favorite, err := st.ToggleFavorite(req.ItemID)
	if err != nil {
		return nil, err
	}
	return &frontendapi.TogglePantryFavoriteResponse{
		Favorite: favorite,
	}, nil
}

// UploadPantryImage stores the image under the ID of the draft and sets it as
// the draft's image.
func (h *Handler) UploadPantryImage(ctx context.Context, req *frontendapi.UploadPantryImageRequest) (*frontendapi.UploadPantryImageResponse, error) {
	st, uid, err := h.state(ctx)
	if err != nil {
		return nil, err
	}
	_, data, err := image.DecodeDataURL(req.ImageDataURL)
	if err != nil {
		return nil, err
	}

	key := st.Editing()
	if key == "" {
		key = st.Draft().ID
	}
	url, err := h.uploader.Upload(ctx, upload.BucketPantry, upload.Key(uid, key), data)
	if err != nil {
		return nil, fmt.Errorf("pantry: saving image: %w", err)
	}
	st.UpdateImageURL(url)
	return &frontendapi.UploadPantryImageResponse{
		ImageURL: url,
	}, nil
}

// WatchPantryItems streams the pantry, starting with its current contents,
// until the client disconnects.
func (h *Handler) WatchPantryItems(ctx context.Context, _ *frontendapi.WatchPantryItemsRequest, send func(*frontendapi.WatchPantryItemsResponse) error) error {
	st, _, err := h.state(ctx)
	if err != nil {
		return err
	}
	for items := range st.Subscribe(ctx) {
		if err := send(&frontendapi.WatchPantryItemsResponse{Items: items}); err != nil {
			return fmt.Errorf("pantry: sending items: %w", err)
		}
	}
	return nil
}
