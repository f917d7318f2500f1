// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/larder/common/image"
	"github.com/curioswitch/larder/common/larderdb"
	frontendapi "github.com/curioswitch/larder/frontend/api/go"
	"github.com/curioswitch/larder/frontend/server/internal/auth"
	pantrystate "github.com/curioswitch/larder/frontend/server/internal/pantry"
	shoppingstate "github.com/curioswitch/larder/frontend/server/internal/shopping"
	"github.com/curioswitch/larder/frontend/server/internal/store"
	"github.com/curioswitch/larder/frontend/server/internal/upload"
)

var registeredAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

type fakeStore struct {
	profiles map[string]larderdb.UserProfile
	creates  int
}

func (f *fakeStore) Create(_ context.Context, p *larderdb.UserProfile) error {
	if err := p.Preferences.Validate(); err != nil {
		return err
	}
	f.creates++
	stored := *p
	stored.CreatedAt = registeredAt
	f.profiles[p.ID] = stored
	return nil
}

func (f *fakeStore) Get(_ context.Context, uid string) (*larderdb.UserProfile, error) {
	p, ok := f.profiles[uid]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeStore) Update(_ context.Context, uid string, displayName string, photoURL string) error {
	p, ok := f.profiles[uid]
	if !ok {
		return store.ErrProfileNotFound
	}
	p.DisplayName = displayName
	p.PhotoURL = photoURL
	f.profiles[uid] = p
	return nil
}

func (f *fakeStore) UpdatePreferences(_ context.Context, uid string, prefs larderdb.Preferences, completeOnboarding bool) error {
	if err := prefs.Validate(); err != nil {
		return err
	}
	p, ok := f.profiles[uid]
	if !ok {
		return store.ErrProfileNotFound
	}
	p.Preferences = prefs
	if completeOnboarding {
		p.Onboarded = true
	}
	f.profiles[uid] = p
	return nil
}

func (f *fakeStore) Delete(_ context.Context, uid string) error {
	delete(f.profiles, uid)
	return nil
}

type fakeUploader struct {
	uploaded []string
	deleted  []string
}

func (f *fakeUploader) Upload(_ context.Context, bucket upload.Bucket, key string, _ []byte) (string, error) {
	f.uploaded = append(f.uploaded, string(bucket)+"/"+key)
	return "https://images.example.com/" + string(bucket) + "/" + key, nil
}

func (f *fakeUploader) Delete(_ context.Context, bucket upload.Bucket, key string) error {
	f.deleted = append(f.deleted, string(bucket)+"/"+key)
	return nil
}

type fakeUsers struct {
	updated   []string
	deleted   []string
	deleteErr error
}

func (f *fakeUsers) UpdateUser(_ context.Context, uid string, _ *fbauth.UserToUpdate) (*fbauth.UserRecord, error) {
	f.updated = append(f.updated, uid)
	return &fbauth.UserRecord{}, nil
}

func (f *fakeUsers) DeleteUser(_ context.Context, uid string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, uid)
	return nil
}

type fixture struct {
	h        *Handler
	profiles *fakeStore
	uploader *fakeUploader
	users    *fakeUsers
	pantries *pantrystate.Registry
	lists    *shoppingstate.Registry
}

func newFixture() *fixture {
	f := &fixture{
		profiles: &fakeStore{profiles: map[string]larderdb.UserProfile{}},
		uploader: &fakeUploader{},
		users:    &fakeUsers{},
		pantries: pantrystate.NewRegistry(),
		lists:    shoppingstate.NewRegistry(),
	}
	f.h = NewHandler(f.profiles, f.uploader, f.users, f.pantries, f.lists)
	return f
}

func signedIn(t *testing.T) context.Context {
	t.Helper()
	return auth.WithIdentity(t.Context(), auth.Identity{
		UID:      "u1",
		Email:    "cook@example.com",
		Provider: "google.com",
	})
}

func TestRegisterProfile(t *testing.T) {
	f := newFixture()

	_, err := f.h.RegisterProfile(t.Context(), &frontendapi.RegisterProfileRequest{DisplayName: "Cook"})
	require.ErrorIs(t, err, auth.ErrUnauthenticated)

	ctx := signedIn(t)
	res, err := f.h.RegisterProfile(ctx, &frontendapi.RegisterProfileRequest{DisplayName: "Cook"})
	require.NoError(t, err)
	require.Equal(t, "u1", res.Profile.ID)
	require.Equal(t, "cook@example.com", res.Profile.Email)
	require.Equal(t, "google.com", res.Profile.AuthProvider)
	require.Equal(t, "Cook", res.Profile.DisplayName)
	require.Equal(t, registeredAt, res.Profile.CreatedAt)
	require.False(t, res.Profile.Onboarded)

	again, err := f.h.RegisterProfile(ctx, &frontendapi.RegisterProfileRequest{DisplayName: "Other"})
	require.NoError(t, err)
	require.Equal(t, "Cook", again.Profile.DisplayName)
	require.Equal(t, 1, f.profiles.creates)

	got, err := f.h.GetProfile(ctx, &frontendapi.GetProfileRequest{})
	require.NoError(t, err)
	require.Equal(t, "Cook", got.Profile.DisplayName)
}

func TestGetProfileMissing(t *testing.T) {
	f := newFixture()
	res, err := f.h.GetProfile(signedIn(t), &frontendapi.GetProfileRequest{})
	require.NoError(t, err)
	require.Nil(t, res.Profile)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture()
	ctx := signedIn(t)

	_, err := f.h.UpdateProfile(ctx, &frontendapi.UpdateProfileRequest{DisplayName: "Chef"})
	require.ErrorIs(t, err, store.ErrProfileNotFound)

	_, err = f.h.RegisterProfile(ctx, &frontendapi.RegisterProfileRequest{DisplayName: "Cook"})
	require.NoError(t, err)

	res, err := f.h.UpdateProfile(ctx, &frontendapi.UpdateProfileRequest{DisplayName: "Chef"})
	require.NoError(t, err)
	require.Equal(t, "Chef", res.Profile.DisplayName)
	require.Empty(t, res.Profile.PhotoURL)
	require.Empty(t, f.uploader.uploaded)
	require.Equal(t, []string{"u1"}, f.users.updated)

	photo, err := image.Placeholder("Chef")
	require.NoError(t, err)
	res, err = f.h.UpdateProfile(ctx, &frontendapi.UpdateProfileRequest{
		DisplayName:  "Chef",
		PhotoDataURL: image.ToDataURL(photo),
	})
	require.NoError(t, err)
	require.Equal(t, "https://images.example.com/profile/u1", res.Profile.PhotoURL)
	require.Equal(t, []string{"profile/u1"}, f.uploader.uploaded)
	require.Equal(t, "https://images.example.com/profile/u1", f.profiles.profiles["u1"].PhotoURL)

	_, err = f.h.UpdateProfile(ctx, &frontendapi.UpdateProfileRequest{
		DisplayName:  "Chef",
		PhotoDataURL: "not a data url",
	})
	require.ErrorIs(t, err, image.ErrInvalidDataURL)
}

func TestUpdatePreferences(t *testing.T) {
	f := newFixture()
	ctx := signedIn(t)
	_, err := f.h.RegisterProfile(ctx, &frontendapi.RegisterProfileRequest{DisplayName: "Cook"})
	require.NoError(t, err)

	prefs := larderdb.Preferences{
		Dietary: larderdb.DietaryPreferences{Vegetarian: true},
		Notifications: larderdb.NotificationPreferences{
			ExpiryReminders:    true,
			ReminderDaysBefore: 3,
		},
	}
	_, err = f.h.UpdatePreferences(ctx, &frontendapi.UpdatePreferencesRequest{Preferences: prefs, CompleteOnboarding: true})
	require.NoError(t, err)
	stored := f.profiles.profiles["u1"]
	require.True(t, stored.Onboarded)
	require.True(t, stored.Preferences.Dietary.Vegetarian)

	prefs.Notifications.ReminderDaysBefore = 90
	_, err = f.h.UpdatePreferences(ctx, &frontendapi.UpdatePreferencesRequest{Preferences: prefs})
	require.ErrorIs(t, err, larderdb.ErrInvalidPreferences)
}

func TestDeleteAccount(t *testing.T) {
	f := newFixture()
	ctx := signedIn(t)
	_, err := f.h.RegisterProfile(ctx, &frontendapi.RegisterProfileRequest{DisplayName: "Cook"})
	require.NoError(t, err)

	st := f.pantries.For("u1")
	st.UpdateTitle("Milk")
	st.SaveCurrentItem()
	_, err = f.lists.For("u1").Create("Weekly", registeredAt)
	require.NoError(t, err)

	f.users.deleteErr = errors.New("auth down")
	_, err = f.h.DeleteAccount(ctx, &frontendapi.DeleteAccountRequest{})
	require.ErrorIs(t, err, f.users.deleteErr)
	require.NotContains(t, f.profiles.profiles, "u1")
	require.Len(t, f.pantries.For("u1").Items(), 1)

	f.users.deleteErr = nil
	_, err = f.h.DeleteAccount(ctx, &frontendapi.DeleteAccountRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{"u1"}, f.users.deleted)
	require.Equal(t, []string{"profile/u1", "profile/u1"}, f.uploader.deleted)
	require.Empty(t, f.pantries.For("u1").Items())
	require.Empty(t, f.lists.For("u1").All())
}
