// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package profile

import (
	"context"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/curioswitch/larder/common/image"
	"github.com/curioswitch/larder/common/larderdb"
	frontendapi "github.com/curioswitch/larder/frontend/api/go"
	"github.com/curioswitch/larder/frontend/server/internal/auth"
	pantrystate "github.com/curioswitch/larder/frontend/server/internal/pantry"
	shoppingstate "github.com/curioswitch/larder/frontend/server/internal/shopping"
	"github.com/curioswitch/larder/frontend/server/internal/store"
	"github.com/curioswitch/larder/frontend/server/internal/upload"
)

type Store interface {
	Create(ctx context.Context, profile *larderdb.UserProfile) error
	Get(ctx context.Context, uid string) (*larderdb.UserProfile, error)
	Update(ctx context.Context, uid string, displayName string, photoURL string) error
	UpdatePreferences(ctx context.Context, uid string, prefs larderdb.Preferences, completeOnboarding bool) error
	Delete(ctx context.Context, uid string) error
}

type Uploader interface {
	Upload(ctx context.Context, bucket upload.Bucket, key string, data []byte) (string, error)
	Delete(ctx context.Context, bucket upload.Bucket, key string) error
}

// Users is the subset of the Firebase auth client used to manage accounts.
type Users interface {
	UpdateUser(ctx context.Context, uid string, user *fbauth.UserToUpdate) (*fbauth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
}

func NewHandler(
	profiles Store,
	uploader Uploader,
	users Users,
	pantries *pantrystate.Registry,
	lists *shoppingstate.Registry,
) *Handler {
	return &Handler{
		profiles: profiles,
		uploader: uploader,
		users:    users,
		pantries: pantries,
		lists:    lists,
	}
}

type Handler struct {
	profiles Store
	uploader Uploader
	users    Users
	pantries *pantrystate.Registry
	lists    *shoppingstate.Registry
}

// RegisterProfile creates the profile of the signed in user from their auth
// identity. Registering again returns the existing profile unchanged.
func (h *Handler) RegisterProfile(ctx context.Context, req *frontendapi.RegisterProfileRequest) (*frontendapi.RegisterProfileResponse, error) {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, auth.ErrUnauthenticated
	}

	existing, err := h.profiles.Get(ctx, id.UID)
	if err != nil {
		return nil, fmt.Errorf("profile: getting profile: %w", err)
	}
	if existing != nil {
		return &frontendapi.RegisterProfileResponse{
			Profile: *existing,
		}, nil
	}

	p := &larderdb.UserProfile{
		ID:           id.UID,
		Email:        id.Email,
		DisplayName:  req.DisplayName,
		AuthProvider: id.Provider,
	}
	if err := h.profiles.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("profile: creating profile: %w", err)
	}

	created, err := h.profiles.Get(ctx, id.UID)
	if err != nil {
		return nil, fmt.Errorf("profile: getting profile: %w", err)
	}
	if created == nil {
		return nil, store.ErrProfileNotFound
	}
	return &frontendapi.RegisterProfileResponse{
		Profile: *created,
	}, nil
}

func (h *Handler) GetProfile(ctx context.Context, _ *frontendapi.GetProfileRequest) (*frontendapi.GetProfileResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	p, err := h.profiles.Get(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("profile: getting profile: %w", err)
	}
	return &frontendapi.GetProfileResponse{
		Profile: p,
	}, nil
}

// UpdateProfile stores a new photo if given, then updates the auth record,
// then the profile document. A failure partway leaves earlier steps applied.
func (h *Handler) UpdateProfile(ctx context.Context, req *frontendapi.UpdateProfileRequest) (*frontendapi.UpdateProfileResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := h.profiles.Get(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("profile: getting profile: %w", err)
	}
	if existing == nil {
		return nil, store.ErrProfileNotFound
	}

	photoURL := existing.PhotoURL
	if req.PhotoDataURL != "" {
		_, data, err := image.DecodeDataURL(req.PhotoDataURL)
		if err != nil {
			return nil, err
		}
		photoURL, err = h.uploader.Upload(ctx, upload.BucketProfile, uid, data)
		if err != nil {
			return nil, fmt.Errorf("profile: saving photo: %w", err)
		}
	}

	update := (&fbauth.UserToUpdate{}).DisplayName(req.DisplayName)
	if photoURL != "" {
		update = update.PhotoURL(photoURL)
	}
	if _, err := h.users.UpdateUser(ctx, uid, update); err != nil {
		return nil, fmt.Errorf("profile: updating auth user: %w", err)
	}

	if err := h.profiles.Update(ctx, uid, req.DisplayName, photoURL); err != nil {
		return nil, fmt.Errorf("profile: updating profile: %w", err)
	}

	updated := *existing
	updated.DisplayName = req.DisplayName
	updated.PhotoURL = photoURL
	return &frontendapi.UpdateProfileResponse{
		Profile: &updated,
	}, nil
}

func (h *Handler) UpdatePreferences(ctx context.Context, req *frontendapi.UpdatePreferencesRequest) (*frontendapi.UpdatePreferencesResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.profiles.UpdatePreferences(ctx, uid, req.Preferences, req.CompleteOnboarding); err != nil {
		return nil, fmt.Errorf("profile: updating preferences: %w", err)
	}
	return &frontendapi.UpdatePreferencesResponse{}, nil
}

// DeleteAccount deletes the profile document, then the profile photo, then the
// auth record, stopping at the first failure. In-memory pantry and shopping
// state of the user is dropped once all of them succeed.
func (h *Handler) DeleteAccount(ctx context.Context, _ *frontendapi.DeleteAccountRequest) (*frontendapi.DeleteAccountResponse, error) {
	uid, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.profiles.Delete(ctx, uid); err != nil {
		return nil, fmt.Errorf("profile: deleting profile: %w", err)
	}
	if err := h.uploader.Delete(ctx, upload.BucketProfile, uid); err != nil {
		return nil, fmt.Errorf("profile: deleting photo: %w", err)
	}
	if err := h.users.DeleteUser(ctx, uid); err != nil {
		return nil, fmt.Errorf("profile: deleting auth user: %w", err)
	}

	h.pantries.Drop(uid)
	h.lists.Drop(uid)
	return &frontendapi.DeleteAccountResponse{}, nil
}
